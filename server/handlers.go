package server

import (
	"net/http"

	"github.com/folio-cc/folio/controller"
)

var (
	apiHandlers = map[string]func(http.ResponseWriter, *http.Request){
		"/api/github/contributions": controller.ContributionsHandler,
		"/api/github/starred":       controller.StarredHandler,

		"/api/crates/packages": controller.CratesHandler,

		"/api/strava/activities": controller.ActivitiesHandler,

		"/api/wakatime/stats": controller.WakaTimeHandler,

		"/api/leetcode/stats": controller.LeetCodeHandler,

		"/api/cache/invalidate": controller.InvalidationHandler,

		"/api/version": controller.VersionHandler,
	}
)
