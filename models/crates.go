package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	conf "github.com/folio-cc/folio/config"
	e "github.com/folio-cc/folio/errors"
)

// Overridable so tests can point at a local server
var cratesAPIURL = "https://crates.io/api/v1"

// crates.io rejects requests without a meaningful User-Agent
const cratesUserAgent = "folio (github.com/folio-cc/folio)"

// CrateType describes a published package
type CrateType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Downloads   int64  `json:"downloads"`
	MaxVersion  string `json:"maxVersion"`
	Repository  string `json:"repository,omitempty"`
}

// GetCrates fetches every crate published by the configured user. The API is
// paged by page number; we pull page after page until one comes back empty.
func GetCrates() ([]CrateType, error) {

	crates := []CrateType{}
	seen := map[string]bool{}

	for page := 1; ; page++ {
		u, err := url.Parse(cratesAPIURL + "/crates")
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Add("user_id", strconv.FormatInt(conf.ConfigInt64s[conf.CratesUserID], 10))
		q.Add("page", strconv.Itoa(page))
		q.Add("per_page", "100")
		u.RawQuery = q.Encode()

		req, err := http.NewRequest("GET", u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", cratesUserAgent)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, e.New("models.GetCrates", e.UpstreamUnavailable, err.Error())
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, e.New(
				"models.GetCrates",
				e.UpstreamUnavailable,
				fmt.Sprintf("crates.io responded with status %d", resp.StatusCode),
			)
		}

		var body struct {
			Crates []struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Downloads   int64  `json:"downloads"`
				MaxVersion  string `json:"max_version"`
				Repository  string `json:"repository"`
			} `json:"crates"`
		}
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, e.New("models.GetCrates", e.MalformedResponse, err.Error())
		}

		if len(body.Crates) == 0 {
			break
		}

		for _, crate := range body.Crates {
			dupeKey := strings.ToLower(crate.Name)
			if seen[dupeKey] {
				continue
			}
			seen[dupeKey] = true

			crates = append(crates, CrateType{
				Name:        crate.Name,
				Description: crate.Description,
				Downloads:   crate.Downloads,
				MaxVersion:  crate.MaxVersion,
				Repository:  crate.Repository,
			})
		}
	}

	SortCratesByDownloads(crates)

	return crates, nil
}

// SortCratesByDownloads orders crates by download count descending. Ties are
// broken by case-insensitive name ascending so the order is total.
func SortCratesByDownloads(crates []CrateType) {
	sort.Slice(crates, func(i, j int) bool {
		if crates[i].Downloads != crates[j].Downloads {
			return crates[i].Downloads > crates[j].Downloads
		}
		return strings.ToLower(crates[i].Name) < strings.ToLower(crates[j].Name)
	})
}
