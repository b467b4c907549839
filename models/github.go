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
var githubGraphQLURL = "https://api.github.com/graphql"

// RepoType describes a starred repository
type RepoType struct {
	FullName    string `json:"fullName"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int64  `json:"stars"`
	Language    string `json:"language,omitempty"`
}

// ContributionDayType describes one day of the contribution calendar
type ContributionDayType struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ContributionsType describes the contribution calendar
type ContributionsType struct {
	Total int64                 `json:"total"`
	Days  []ContributionDayType `json:"days"`
}

type githubGraphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// githubGraphQL posts a single GraphQL query and unmarshals the data portion
// of the response into result.
func githubGraphQL(
	query string,
	variables map[string]interface{},
	result interface{},
) error {

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", githubGraphQLURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "bearer "+conf.ConfigStrings[conf.GitHubToken])
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return e.New("models.githubGraphQL", e.UpstreamUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return e.New(
			"models.githubGraphQL",
			e.UpstreamUnavailable,
			fmt.Sprintf("github responded with status %d", resp.StatusCode),
		)
	}

	var envelope githubGraphQLEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return e.New("models.githubGraphQL", e.MalformedResponse, err.Error())
	}
	if len(envelope.Errors) > 0 {
		return e.New(
			"models.githubGraphQL",
			e.UpstreamUnavailable,
			envelope.Errors[0].Message,
		)
	}

	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return e.New("models.githubGraphQL", e.MalformedResponse, err.Error())
	}

	return nil
}

// GetContributions fetches the contribution calendar for the configured user
// in a single call and flattens it into day records, oldest first.
func GetContributions() (ContributionsType, error) {
	const query = `query ($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

	var data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int64 `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int64  `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}

	err := githubGraphQL(
		query,
		map[string]interface{}{
			"login": conf.ConfigStrings[conf.GitHubUsername],
		},
		&data,
	)
	if err != nil {
		return ContributionsType{}, err
	}

	calendar := data.User.ContributionsCollection.ContributionCalendar

	m := ContributionsType{
		Total: calendar.TotalContributions,
		Days:  []ContributionDayType{},
	}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			m.Days = append(m.Days, ContributionDayType{
				Date:  day.Date,
				Count: day.ContributionCount,
			})
		}
	}

	// ISO dates sort correctly as strings
	sort.Slice(m.Days, func(i, j int) bool {
		return m.Days[i].Date < m.Days[j].Date
	})

	return m, nil
}

// GetStarredRepos fetches every starred repository for the configured user,
// following the GraphQL cursor until the API reports no further pages.
func GetStarredRepos() ([]RepoType, error) {
	const query = `query ($login: String!, $cursor: String) {
  user(login: $login) {
    starredRepositories(first: 100, after: $cursor) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        nameWithOwner
        description
        url
        stargazerCount
        primaryLanguage {
          name
        }
      }
    }
  }
}`

	repos := []RepoType{}
	seen := map[string]bool{}

	var cursor *string
	for {
		var data struct {
			User struct {
				StarredRepositories struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Nodes []struct {
						NameWithOwner   string `json:"nameWithOwner"`
						Description     string `json:"description"`
						URL             string `json:"url"`
						StargazerCount  int64  `json:"stargazerCount"`
						PrimaryLanguage *struct {
							Name string `json:"name"`
						} `json:"primaryLanguage"`
					} `json:"nodes"`
				} `json:"starredRepositories"`
			} `json:"user"`
		}

		err := githubGraphQL(
			query,
			map[string]interface{}{
				"login":  conf.ConfigStrings[conf.GitHubUsername],
				"cursor": cursor,
			},
			&data,
		)
		if err != nil {
			return nil, err
		}

		page := data.User.StarredRepositories
		for _, node := range page.Nodes {
			// A repo can show up on two pages if the list shifts between
			// requests; the lowercased full name is the natural key.
			dupeKey := strings.ToLower(node.NameWithOwner)
			if seen[dupeKey] {
				continue
			}
			seen[dupeKey] = true

			repo := RepoType{
				FullName:    node.NameWithOwner,
				Description: node.Description,
				URL:         node.URL,
				Stars:       node.StargazerCount,
			}
			if node.PrimaryLanguage != nil {
				repo.Language = node.PrimaryLanguage.Name
			}
			repos = append(repos, repo)
		}

		if !page.PageInfo.HasNextPage {
			break
		}
		endCursor := page.PageInfo.EndCursor
		cursor = &endCursor
	}

	SortReposByStars(repos)

	return repos, nil
}

// SortReposByStars orders repositories by stargazers descending. Ties are
// broken by case-insensitive full name ascending so the order is total.
func SortReposByStars(repos []RepoType) {
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Stars != repos[j].Stars {
			return repos[i].Stars > repos[j].Stars
		}
		return strings.ToLower(repos[i].FullName) <
			strings.ToLower(repos[j].FullName)
	})
}
