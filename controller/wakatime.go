package controller

import (
	"net/http"

	"github.com/folio-cc/folio/models"
)

// WakaTimeController is a web controller
type WakaTimeController struct{}

// WakaTimeHandler is a web handler
func WakaTimeHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := WakaTimeController{}

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
func (ctl *WakaTimeController) Read(c *models.Context) {
	output, hit, err := models.CachedWakaTimeStats()
	if err != nil {
		c.RespondWithErrorMessage(err.Error(), http.StatusBadGateway)
		return
	}

	c.SetCacheStatus(hit)
	c.RespondWithJSON(output, http.StatusOK)
}
