package config

import (
	"github.com/golang/glog"

	"github.com/microcosm-cc/goconfig"
)

// ConfigFilePath is the path to the config file
const ConfigFilePath string = "/etc/folio/api.conf"

// APISection is the [api] section of the config file
const APISection string = "api"

// Config file keys
const (
	Environment = "environment"

	ListenPort = "listen_port"

	MemcachedHost = "memcached_host"
	MemcachedPort = "memcached_port"

	GitHubToken    = "github_token"
	GitHubUsername = "github_username"

	CratesUserID = "crates_user_id"

	StravaClientID     = "strava_client_id"
	StravaClientSecret = "strava_client_secret"
	StravaRefreshToken = "strava_refresh_token"

	WakaTimeAPIKey = "wakatime_api_key"

	LeetCodeUsername = "leetcode_username"

	// Per-resource cache TTLs in seconds
	TTLGitHubContributions = "ttl_github_contributions"
	TTLGitHubStarred       = "ttl_github_starred"
	TTLCratesPackages      = "ttl_crates_packages"
	TTLStravaActivities    = "ttl_strava_activities"
	TTLWakaTimeStats       = "ttl_wakatime_stats"
	TTLLeetCodeStats       = "ttl_leetcode_stats"
)

var configRequiredStrings = []string{
	Environment,
	GitHubToken,
	GitHubUsername,
	LeetCodeUsername,
	MemcachedHost,
	StravaClientID,
	StravaClientSecret,
	StravaRefreshToken,
	WakaTimeAPIKey,
}

var configRequiredInt64s = []string{
	CratesUserID,
	ListenPort,
	MemcachedPort,
	TTLCratesPackages,
	TTLGitHubContributions,
	TTLGitHubStarred,
	TTLLeetCodeStats,
	TTLStravaActivities,
	TTLWakaTimeStats,
}

// ConfigStrings contains the string values for the given config keys
var ConfigStrings = map[string]string{}

// ConfigInt64s contains the int64 values for the given config keys
var ConfigInt64s = map[string]int64{}

// Load reads the config file and populates the package maps. It must be
// called before anything reads from them; main.go does this before wiring up
// the cache and server. Loading is explicit rather than in init() so that
// tests can populate the maps directly.
func Load() error {
	c, err := goconfig.ReadConfigFile(ConfigFilePath)
	if err != nil {
		return err
	}

	for _, key := range configRequiredStrings {
		s, err := c.GetString(APISection, key)
		if err != nil {
			return err
		}
		ConfigStrings[key] = s
	}

	for _, key := range configRequiredInt64s {
		ii, err := c.GetInt64(APISection, key)
		if err != nil {
			return err
		}
		ConfigInt64s[key] = ii
	}

	return nil
}

// MustLoad is Load for main.go, where a bad config is fatal.
func MustLoad() {
	if err := Load(); err != nil {
		glog.Fatal(err)
	}
}
