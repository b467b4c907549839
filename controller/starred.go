package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// StarredController is a web controller
type StarredController struct{}

// StarredHandler is a web handler
func StarredHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := StarredController{}

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
func (ctl *StarredController) Read(c *models.Context) {
	output, hit, err := models.CachedStarredRepos()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
