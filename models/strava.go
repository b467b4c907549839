package models

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	c "github.com/folio-cc/folio/cache"
	conf "github.com/folio-cc/folio/config"
	e "github.com/folio-cc/folio/errors"
)

// Overridable so tests can point at a local server
var (
	stravaAPIURL   = "https://www.strava.com/api/v3"
	stravaTokenURL = "https://www.strava.com/api/v3/oauth/token"
)

// ActivityType describes one recorded activity
type ActivityType struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Distance     float64 `json:"distance"`
	MovingTime   int64   `json:"movingTime"`
	StartDate    string  `json:"startDate"`
	AverageSpeed float64 `json:"averageSpeed"`
}

// stravaAccessToken exchanges a refresh token for an access token. The
// refresh token is read from the cache, falling back to the configured one
// when nothing is stored (first run, expired entry, or store outage).
//
// Strava rotates refresh tokens on every exchange, so the replacement is
// persisted back best-effort. If that write is lost the next request repeats
// the exchange with the old token, which Strava may or may not still honour.
// Two concurrent refreshes race and the last write wins; both get a working
// access token either way.
func stravaAccessToken() (string, error) {
	refreshToken, ok := c.GetString(mcStravaTokenKey)
	if !ok {
		refreshToken = conf.ConfigStrings[conf.StravaRefreshToken]
	}

	oauth2Config := &oauth2.Config{
		ClientID:     conf.ConfigStrings[conf.StravaClientID],
		ClientSecret: conf.ConfigStrings[conf.StravaClientSecret],
		Endpoint: oauth2.Endpoint{
			TokenURL: stravaTokenURL,
		},
	}

	token, err := oauth2Config.TokenSource(
		context.Background(),
		&oauth2.Token{RefreshToken: refreshToken},
	).Token()
	if err != nil {
		return "", e.New("models.stravaAccessToken", e.UpstreamUnavailable, err.Error())
	}

	if token.RefreshToken != "" && token.RefreshToken != refreshToken {
		// 0 = no expiry; the token is replaced on the next rotation
		c.SetString(mcStravaTokenKey, token.RefreshToken, 0)
	}

	return token.AccessToken, nil
}

// GetActivities fetches the recent activities for the authorised athlete.
// The API is paged by page number; we pull page after page until one comes
// back empty.
func GetActivities() ([]ActivityType, error) {

	accessToken, err := stravaAccessToken()
	if err != nil {
		return nil, err
	}

	activities := []ActivityType{}
	seen := map[int64]bool{}

	for page := 1; ; page++ {
		u, err := url.Parse(stravaAPIURL + "/athlete/activities")
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Add("page", strconv.Itoa(page))
		q.Add("per_page", "100")
		u.RawQuery = q.Encode()

		req, err := http.NewRequest("GET", u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, e.New("models.GetActivities", e.UpstreamUnavailable, err.Error())
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, e.New(
				"models.GetActivities",
				e.UpstreamUnavailable,
				fmt.Sprintf("strava responded with status %d", resp.StatusCode),
			)
		}

		var body []struct {
			ID           int64   `json:"id"`
			Name         string  `json:"name"`
			Type         string  `json:"type"`
			Distance     float64 `json:"distance"`
			MovingTime   int64   `json:"moving_time"`
			StartDate    string  `json:"start_date"`
			AverageSpeed float64 `json:"average_speed"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, e.New("models.GetActivities", e.MalformedResponse, err.Error())
		}

		if len(body) == 0 {
			break
		}

		for _, activity := range body {
			if seen[activity.ID] {
				continue
			}
			seen[activity.ID] = true

			activities = append(activities, ActivityType{
				ID:           activity.ID,
				Name:         activity.Name,
				Type:         activity.Type,
				Distance:     activity.Distance,
				MovingTime:   activity.MovingTime,
				StartDate:    activity.StartDate,
				AverageSpeed: activity.AverageSpeed,
			})
		}
	}

	SortActivitiesByStartDate(activities)

	return activities, nil
}

// SortActivitiesByStartDate orders activities newest first. Ties are broken
// by case-insensitive name ascending so the order is total. Start dates are
// RFC 3339 strings and sort correctly as strings.
func SortActivitiesByStartDate(activities []ActivityType) {
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].StartDate != activities[j].StartDate {
			return activities[i].StartDate > activities[j].StartDate
		}
		return strings.ToLower(activities[i].Name) <
			strings.ToLower(activities[j].Name)
	})
}
