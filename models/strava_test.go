package models

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio-cc/folio/cache"
	conf "github.com/folio-cc/folio/config"
)

func TestStravaAccessTokenRotation(t *testing.T) {
	var refreshTokensSeen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing token request: %+v", err)
			return
		}
		refreshTokensSeen = append(refreshTokensSeen, r.FormValue("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token":"access-` + r.FormValue("refresh_token") + `",
			"token_type":"Bearer",
			"expires_in":3600,
			"refresh_token":"rotated-token"
		}`))
	}))
	defer ts.Close()

	defer func(url string) { stravaTokenURL = url }(stravaTokenURL)
	stravaTokenURL = ts.URL
	conf.ConfigStrings[conf.StravaClientID] = "client-id"
	conf.ConfigStrings[conf.StravaClientSecret] = "client-secret"
	conf.ConfigStrings[conf.StravaRefreshToken] = "configured-token"

	store := newFakeStore()
	cache.InitCacheStore(store)

	// No token stored: the configured refresh token is the fallback
	accessToken, err := stravaAccessToken()
	if err != nil {
		t.Fatalf("stravaAccessToken() err = %+v", err)
	}
	if accessToken != "access-configured-token" {
		t.Errorf("accessToken = %s, want access-configured-token", accessToken)
	}

	// The rotated refresh token was persisted, so the next exchange uses it
	accessToken, err = stravaAccessToken()
	if err != nil {
		t.Fatalf("stravaAccessToken() err = %+v", err)
	}
	if accessToken != "access-rotated-token" {
		t.Errorf("accessToken = %s, want access-rotated-token", accessToken)
	}

	if len(refreshTokensSeen) != 2 ||
		refreshTokensSeen[0] != "configured-token" ||
		refreshTokensSeen[1] != "rotated-token" {
		t.Errorf("refresh tokens sent = %v, want configured then rotated", refreshTokensSeen)
	}
}

func TestStravaAccessTokenStoreDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.FormValue("refresh_token") != "configured-token" {
			t.Errorf(
				"refresh_token = %s, want the configured fallback",
				r.FormValue("refresh_token"),
			)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"a","token_type":"Bearer","expires_in":3600,"refresh_token":"r"}`))
	}))
	defer ts.Close()

	defer func(url string) { stravaTokenURL = url }(stravaTokenURL)
	stravaTokenURL = ts.URL
	conf.ConfigStrings[conf.StravaClientID] = "client-id"
	conf.ConfigStrings[conf.StravaClientSecret] = "client-secret"
	conf.ConfigStrings[conf.StravaRefreshToken] = "configured-token"

	store := newFakeStore()
	store.failGet = true
	store.failSet = true
	cache.InitCacheStore(store)

	// A store outage falls back to the configured token; the failed persist
	// of the rotation is silent
	if _, err := stravaAccessToken(); err != nil {
		t.Fatalf("stravaAccessToken() err = %+v", err)
	}
}

func TestSortActivitiesByStartDate(t *testing.T) {
	activities := []ActivityType{
		{Name: "Morning Ride", StartDate: "2026-08-01T07:00:00Z"},
		{Name: "evening run", StartDate: "2026-08-02T19:00:00Z"},
		{Name: "Afternoon Swim", StartDate: "2026-08-02T19:00:00Z"},
	}

	SortActivitiesByStartDate(activities)

	want := []string{"Afternoon Swim", "evening run", "Morning Ride"}
	for i := range want {
		if activities[i].Name != want[i] {
			t.Errorf("activities[%d] = %s, want %s", i, activities[i].Name, want[i])
		}
	}
}

func TestGetActivitiesPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600,"refresh_token":"next"}`))
	})
	mux.HandleFunc("/athlete/activities", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access" {
			t.Errorf("Authorization = %s, want the exchanged token", r.Header.Get("Authorization"))
		}

		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`[
				{"id":1,"name":"Morning Ride","type":"Ride","distance":20000,"moving_time":3600,"start_date":"2026-08-01T07:00:00Z","average_speed":5.5},
				{"id":2,"name":"Lunch Run","type":"Run","distance":5000,"moving_time":1500,"start_date":"2026-08-02T12:00:00Z","average_speed":3.3}
			]`))
		case "2":
			// id 2 repeats across the page boundary and must be dropped
			w.Write([]byte(`[
				{"id":2,"name":"Lunch Run","type":"Run","distance":5000,"moving_time":1500,"start_date":"2026-08-02T12:00:00Z","average_speed":3.3},
				{"id":3,"name":"Evening Swim","type":"Swim","distance":1000,"moving_time":1800,"start_date":"2026-08-03T19:00:00Z","average_speed":0.55}
			]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	defer func(api, token string) {
		stravaAPIURL = api
		stravaTokenURL = token
	}(stravaAPIURL, stravaTokenURL)
	stravaAPIURL = ts.URL
	stravaTokenURL = ts.URL + "/oauth/token"
	conf.ConfigStrings[conf.StravaClientID] = "client-id"
	conf.ConfigStrings[conf.StravaClientSecret] = "client-secret"
	conf.ConfigStrings[conf.StravaRefreshToken] = "configured-token"

	cache.InitCacheStore(newFakeStore())

	activities, err := GetActivities()
	if err != nil {
		t.Fatalf("GetActivities() err = %+v", err)
	}

	// Three unique activities, newest first
	wantIDs := []int64{3, 2, 1}
	if len(activities) != len(wantIDs) {
		t.Fatalf("GetActivities() = %+v, want %d activities", activities, len(wantIDs))
	}
	for i := range wantIDs {
		if activities[i].ID != wantIDs[i] {
			t.Errorf("activities[%d].ID = %d, want %d", i, activities[i].ID, wantIDs[i])
		}
	}
}
