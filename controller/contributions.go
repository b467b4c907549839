package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// ContributionsController is a web controller
type ContributionsController struct{}

// ContributionsHandler is a web handler
func ContributionsHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := ContributionsController{}

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
func (ctl *ContributionsController) Read(c *models.Context) {
	output, hit, err := models.CachedContributions()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
