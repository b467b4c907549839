package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	conf "github.com/folio-cc/folio/config"
	e "github.com/folio-cc/folio/errors"
)

// Overridable so tests can point at a local server
var leetcodeGraphQLURL = "https://leetcode.com/graphql"

// LeetCodeStatType describes solve counts for one difficulty band
type LeetCodeStatType struct {
	Difficulty  string `json:"difficulty"`
	Solved      int64  `json:"solved"`
	Submissions int64  `json:"submissions"`
}

// The API's row order is not guaranteed; present the bands in their
// canonical order regardless.
var difficultyRank = map[string]int{
	"All":    0,
	"Easy":   1,
	"Medium": 2,
	"Hard":   3,
}

// GetLeetCodeStats fetches the solve counts for the configured user in a
// single GraphQL call.
func GetLeetCodeStats() ([]LeetCodeStatType, error) {
	const query = `query ($username: String!) {
  matchedUser(username: $username) {
    submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
        submissions
      }
    }
  }
}`

	body, err := json.Marshal(map[string]interface{}{
		"query": query,
		"variables": map[string]interface{}{
			"username": conf.ConfigStrings[conf.LeetCodeUsername],
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", leetcodeGraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, e.New("models.GetLeetCodeStats", e.UpstreamUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.New(
			"models.GetLeetCodeStats",
			e.UpstreamUnavailable,
			fmt.Sprintf("leetcode responded with status %d", resp.StatusCode),
		)
	}

	var envelope struct {
		Data struct {
			MatchedUser struct {
				SubmitStatsGlobal struct {
					AcSubmissionNum []struct {
						Difficulty  string `json:"difficulty"`
						Count       int64  `json:"count"`
						Submissions int64  `json:"submissions"`
					} `json:"acSubmissionNum"`
				} `json:"submitStatsGlobal"`
			} `json:"matchedUser"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, e.New("models.GetLeetCodeStats", e.MalformedResponse, err.Error())
	}

	stats := []LeetCodeStatType{}
	for _, row := range envelope.Data.MatchedUser.SubmitStatsGlobal.AcSubmissionNum {
		stats = append(stats, LeetCodeStatType{
			Difficulty:  row.Difficulty,
			Solved:      row.Count,
			Submissions: row.Submissions,
		})
	}

	SortLeetCodeStats(stats)

	return stats, nil
}

// SortLeetCodeStats orders bands All, Easy, Medium, Hard; anything the API
// adds later sorts after those by case-insensitive name.
func SortLeetCodeStats(stats []LeetCodeStatType) {
	sort.Slice(stats, func(i, j int) bool {
		ri, iKnown := difficultyRank[stats[i].Difficulty]
		rj, jKnown := difficultyRank[stats[j].Difficulty]
		if !iKnown {
			ri = len(difficultyRank)
		}
		if !jKnown {
			rj = len(difficultyRank)
		}
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(stats[i].Difficulty) <
			strings.ToLower(stats[j].Difficulty)
	})
}
