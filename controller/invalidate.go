package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/folio-cc/folio/models"
)

// InvalidationController is a web controller
type InvalidationController struct{}

// InvalidationResponse reports what an invalidation did. Partial failure is
// not an overall failure: Success stays true and Failed carries the tally.
type InvalidationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Deleted int      `json:"deleted"`
	Failed  int      `json:"failed"`
	Keys    []string `json:"keys"`
}

// InvalidationErrorResponse names the valid targets alongside the error
type InvalidationErrorResponse struct {
	Error     string   `json:"error"`
	Available []string `json:"available"`
}

// InvalidationHandler is a web handler
func InvalidationHandler(w http.ResponseWriter, r *http.Request) {
	c := models.MakeContext(r, w)
	ctl := InvalidationController{}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "GET"})
		return
	case "GET":
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// Read handles GET
func (ctl *InvalidationController) Read(c *models.Context) {
	target := c.Request.URL.Query().Get("target")

	if _, ok := models.TargetKeys(target); !ok {
		output, err := json.Marshal(InvalidationErrorResponse{
			Error:     fmt.Sprintf("unknown invalidation target: %q", target),
			Available: models.ValidTargets(),
		})
		if err != nil {
			http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
			return
		}
		c.RespondWithJSON(output, http.StatusBadRequest)
		return
	}

	deleted, failed, keys := models.PurgeTarget(target)

	c.RespondWithData(InvalidationResponse{
		Success: true,
		Message: fmt.Sprintf("invalidated cache target %q", target),
		Deleted: deleted,
		Failed:  failed,
		Keys:    keys,
	})
}
