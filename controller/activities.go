package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// ActivitiesController is a web controller
type ActivitiesController struct{}

// ActivitiesHandler is a web handler
func ActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := ActivitiesController{}

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
func (ctl *ActivitiesController) Read(c *models.Context) {
	output, hit, err := models.CachedActivities()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
