package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// LeetCodeController is a web controller
type LeetCodeController struct{}

// LeetCodeHandler is a web handler
func LeetCodeHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := LeetCodeController{}

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
func (ctl *LeetCodeController) Read(c *models.Context) {
	output, hit, err := models.CachedLeetCodeStats()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
