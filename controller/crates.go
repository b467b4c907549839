package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// CratesController is a web controller
type CratesController struct{}

// CratesHandler is a web handler
func CratesHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := CratesController{}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "HEAD", "GET"})
		return
	case "HEAD", "GET":
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// Read handles GET
func (ctl *CratesController) Read(c *models.Context) {
	output, hit, err := models.CachedCrates()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
