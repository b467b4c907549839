package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	conf "github.com/folio-cc/folio/config"
	e "github.com/folio-cc/folio/errors"
)

// Overridable so tests can point at a local server
var wakatimeAPIURL = "https://wakatime.com/api/v1"

// LanguageType describes coding time spent in one language
type LanguageType struct {
	Name         string  `json:"name"`
	Percent      float64 `json:"percent"`
	TotalSeconds float64 `json:"totalSeconds"`
	Text         string  `json:"text"`
}

// WakaTimeStatsType describes the last-7-days coding summary
type WakaTimeStatsType struct {
	TotalSeconds       float64        `json:"totalSeconds"`
	HumanReadableTotal string         `json:"humanReadableTotal"`
	DailyAverage       float64        `json:"dailyAverage"`
	Range              string         `json:"range"`
	Languages          []LanguageType `json:"languages"`
}

// GetWakaTimeStats fetches the coding stats for the configured account in a
// single call.
func GetWakaTimeStats() (WakaTimeStatsType, error) {

	req, err := http.NewRequest(
		"GET",
		wakatimeAPIURL+"/users/current/stats/last_7_days",
		nil,
	)
	if err != nil {
		return WakaTimeStatsType{}, err
	}

	apiKey := conf.ConfigStrings[conf.WakaTimeAPIKey]
	req.Header.Set(
		"Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(apiKey)),
	)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return WakaTimeStatsType{},
			e.New("models.GetWakaTimeStats", e.UpstreamUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WakaTimeStatsType{}, e.New(
			"models.GetWakaTimeStats",
			e.UpstreamUnavailable,
			fmt.Sprintf("wakatime responded with status %d", resp.StatusCode),
		)
	}

	var body struct {
		Data struct {
			TotalSeconds       float64 `json:"total_seconds"`
			HumanReadableTotal string  `json:"human_readable_total"`
			DailyAverage       float64 `json:"daily_average"`
			Range              string  `json:"range"`
			Languages          []struct {
				Name         string  `json:"name"`
				Percent      float64 `json:"percent"`
				TotalSeconds float64 `json:"total_seconds"`
				Text         string  `json:"text"`
			} `json:"languages"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return WakaTimeStatsType{},
			e.New("models.GetWakaTimeStats", e.MalformedResponse, err.Error())
	}

	m := WakaTimeStatsType{
		TotalSeconds:       body.Data.TotalSeconds,
		HumanReadableTotal: body.Data.HumanReadableTotal,
		DailyAverage:       body.Data.DailyAverage,
		Range:              body.Data.Range,
		Languages:          []LanguageType{},
	}
	for _, language := range body.Data.Languages {
		m.Languages = append(m.Languages, LanguageType{
			Name:         language.Name,
			Percent:      language.Percent,
			TotalSeconds: language.TotalSeconds,
			Text:         language.Text,
		})
	}

	SortLanguagesByPercent(m.Languages)

	return m, nil
}

// SortLanguagesByPercent orders languages by share of coding time
// descending. Ties are broken by case-insensitive name ascending so the
// order is total.
func SortLanguagesByPercent(languages []LanguageType) {
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Percent != languages[j].Percent {
			return languages[i].Percent > languages[j].Percent
		}
		return strings.ToLower(languages[i].Name) <
			strings.ToLower(languages[j].Name)
	})
}
