package models

import (
	"encoding/json"

	"github.com/golang/glog"

	c "github.com/folio-cc/folio/cache"
	conf "github.com/folio-cc/folio/config"
)

// CacheFetch is the cache-aside read path shared by every data endpoint.
// On a hit the stored bytes are returned verbatim. On a miss (which includes
// any store read failure) the fetch routine runs, its result is serialised,
// written back best-effort with the TTL, and returned. A fetch error
// propagates untouched and nothing is written.
//
// Concurrent misses for the same cold key are not de-duplicated: both
// requests call upstream and the second write wins. The entries are
// idempotent so this only costs an extra upstream call.
func CacheFetch(
	key string,
	timeToLive int32,
	fetch func() (interface{}, error),
) ([]byte, bool, error) {

	if value, ok := c.Get(key); ok {
		return value, true, nil
	}

	data, err := fetch()
	if err != nil {
		return nil, false, err
	}

	value, err := json.Marshal(data)
	if err != nil {
		return nil, false, err
	}

	c.Set(key, value, timeToLive)

	return value, false, nil
}

// The cached fetchers below bind each resource to its key, its configured
// TTL and its fetch routine. Controllers serve their output; the cron warm
// jobs call them for the side effect.

// CachedContributions returns the GitHub contribution calendar
func CachedContributions() ([]byte, bool, error) {
	return CacheFetch(mcContributionsKey, configTTL(conf.TTLGitHubContributions),
		func() (interface{}, error) { return GetContributions() })
}

// CachedStarredRepos returns the starred GitHub repositories
func CachedStarredRepos() ([]byte, bool, error) {
	return CacheFetch(mcStarredKey, configTTL(conf.TTLGitHubStarred),
		func() (interface{}, error) { return GetStarredRepos() })
}

// CachedCrates returns the published crates.io packages
func CachedCrates() ([]byte, bool, error) {
	return CacheFetch(mcCratesKey, configTTL(conf.TTLCratesPackages),
		func() (interface{}, error) { return GetCrates() })
}

// CachedActivities returns the recent Strava activities
func CachedActivities() ([]byte, bool, error) {
	return CacheFetch(mcActivitiesKey, configTTL(conf.TTLStravaActivities),
		func() (interface{}, error) { return GetActivities() })
}

// CachedWakaTimeStats returns the WakaTime coding stats
func CachedWakaTimeStats() ([]byte, bool, error) {
	return CacheFetch(mcWakaTimeKey, configTTL(conf.TTLWakaTimeStats),
		func() (interface{}, error) { return GetWakaTimeStats() })
}

// CachedLeetCodeStats returns the LeetCode solve counts
func CachedLeetCodeStats() ([]byte, bool, error) {
	return CacheFetch(mcLeetCodeKey, configTTL(conf.TTLLeetCodeStats),
		func() (interface{}, error) { return GetLeetCodeStats() })
}

func configTTL(key string) int32 {
	return int32(conf.ConfigInt64s[key])
}

func warm(name string, fn func() ([]byte, bool, error)) {
	_, hit, err := fn()
	if err != nil {
		glog.Errorf("warm %s: %+v", name, err)
		return
	}
	if glog.V(2) {
		glog.Infof("warmed %s (hit=%t)", name, hit)
	}
}

// WarmGitHubCaches pre-fetches the GitHub resources so interactive requests
// rarely pay for a cold upstream call. Used by cron.
func WarmGitHubCaches() {
	warm(mcContributionsKey, CachedContributions)
	warm(mcStarredKey, CachedStarredRepos)
}

// WarmCratesCache pre-fetches the crates.io packages. Used by cron.
func WarmCratesCache() {
	warm(mcCratesKey, CachedCrates)
}

// WarmStravaCache pre-fetches the Strava activities. Used by cron.
func WarmStravaCache() {
	warm(mcActivitiesKey, CachedActivities)
}

// WarmWakaTimeCache pre-fetches the WakaTime stats. Used by cron.
func WarmWakaTimeCache() {
	warm(mcWakaTimeKey, CachedWakaTimeStats)
}

// WarmLeetCodeCache pre-fetches the LeetCode stats. Used by cron.
func WarmLeetCodeCache() {
	warm(mcLeetCodeKey, CachedLeetCodeStats)
}
