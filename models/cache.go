package models

import (
	"sort"

	c "github.com/folio-cc/folio/cache"
)

// This file contains the cache key registry and the invalidation helpers.
// Anything that isn't specifically about which keys exist should go in the
// cache package.

// Cache keys are namespaced "<service>:<resource>". A key holds the whole
// serialised record list for its resource; entries are only ever written
// whole and expire via their TTL.
const (
	mcContributionsKey = "github:contributions"
	mcStarredKey       = "github:starred"
	mcCratesKey        = "crates:packages"
	mcActivitiesKey    = "strava:activities"
	mcWakaTimeKey      = "wakatime:stats"
	mcLeetCodeKey      = "leetcode:stats"

	// Not owned by any invalidation target: deleting it would only force a
	// fall back to the configured refresh token, but there is no reason for
	// an operator to ever want that.
	mcStravaTokenKey = "strava:refresh_token"
)

// invalidationTargets maps each target name accepted by the invalidation
// endpoint to the cache keys it owns. "all" is handled in TargetKeys as the
// union of everything here.
var invalidationTargets = map[string][]string{
	"github":   {mcContributionsKey, mcStarredKey},
	"strava":   {mcActivitiesKey},
	"wakatime": {mcWakaTimeKey},
	"leetcode": {mcLeetCodeKey},

	// The packages endpoint serves crates.io data these days; the target
	// name predates the move from npm and is kept so existing tooling and
	// bookmarks continue to work.
	"npm": {mcCratesKey},
}

// ValidTargets returns every accepted invalidation target name, sorted, with
// "all" last. This is what the error response enumerates.
func ValidTargets() []string {
	targets := make([]string, 0, len(invalidationTargets)+1)
	for target := range invalidationTargets {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	return append(targets, "all")
}

// TargetKeys resolves a target name to the cache keys it owns. For "all" the
// union of every per-service key set is returned with no key appearing
// twice. ok is false for unknown targets.
func TargetKeys(target string) (keys []string, ok bool) {
	if target == "all" {
		seen := map[string]bool{}
		for _, targetKeys := range invalidationTargets {
			for _, key := range targetKeys {
				if seen[key] {
					continue
				}
				seen[key] = true
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		return keys, true
	}

	keys, ok = invalidationTargets[target]
	return keys, ok
}

// PurgeTarget deletes every key owned by the target. Deletion is
// best-effort per key: some keys may be deleted while others fail, and the
// counts report exactly that. The keys attempted are returned for the
// response body.
func PurgeTarget(target string) (deleted int, failed int, keys []string) {
	keys, ok := TargetKeys(target)
	if !ok {
		return 0, 0, nil
	}

	for _, key := range keys {
		if err := c.Delete(key); err != nil {
			failed++
			continue
		}
		deleted++
	}

	return deleted, failed, keys
}
