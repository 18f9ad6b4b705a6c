package github

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/vukan322/ghrecap/internal/core"
	"github.com/vukan322/ghrecap/internal/providers"
)

const (
	nightOwlEstimate = 0.24

	nightOwlWarning = "GitHub's API does not expose the hour-of-day distribution of contributions; the night owl rate is an estimate."
	starsWarning    = "Stars are the total across sampled repositories, not stars gained this year."
)

const yearRecapQuery = `
query Recap($login: String!, $from: DateTime!, $to: DateTime!, $mergedQuery: String!) {
  user(login: $login) {
    login
    name
    avatarUrl
    createdAt
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalPullRequestContributions
      totalIssueContributions
      totalPullRequestReviewContributions
      contributionCalendar {
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
    repositories(first: 50, ownerAffiliations: OWNER, orderBy: { field: STARGAZERS, direction: DESC }) {
      nodes {
        name
        description
        stargazerCount
        primaryLanguage { name }
        languages(first: 8, orderBy: { field: SIZE, direction: DESC }) {
          edges { size node { name } }
        }
      }
    }
  }
  merged: search(query: $mergedQuery, type: ISSUE) {
    issueCount
  }
}`

const profileQuery = `
query GetUser($login: String!) {
  user(login: $login) {
    login
    name
    avatarUrl
    createdAt
    repositories(first: 50, ownerAffiliations: OWNER, orderBy: { field: STARGAZERS, direction: DESC }) {
      nodes {
        name
        description
        stargazerCount
        primaryLanguage { name }
        languages(first: 8, orderBy: { field: SIZE, direction: DESC }) {
          edges { size node { name } }
        }
      }
    }
  }
}`

const mergedSearchQuery = `
query MergedPRs($mergedQuery: String!) {
  merged: search(query: $mergedQuery, type: ISSUE) {
    issueCount
  }
}`

const yearContribQuery = `
query YearContrib($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    contributionsCollection(from: $from, to: $to) {
      totalCommitContributions
      totalPullRequestContributions
      totalIssueContributions
      totalPullRequestReviewContributions
      contributionCalendar {
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

type gqlRepo struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	StargazerCount int    `json:"stargazerCount"`
	PrimaryLanguage *struct {
		Name string `json:"name"`
	} `json:"primaryLanguage"`
	Languages struct {
		Edges []struct {
			Size int64 `json:"size"`
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
}

type gqlContributions struct {
	TotalCommitContributions            int `json:"totalCommitContributions"`
	TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
	TotalIssueContributions             int `json:"totalIssueContributions"`
	TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
	ContributionCalendar                struct {
		Weeks []struct {
			ContributionDays []struct {
				Date              string `json:"date"`
				ContributionCount int    `json:"contributionCount"`
			} `json:"contributionDays"`
		} `json:"weeks"`
	} `json:"contributionCalendar"`
}

type gqlUserHeader struct {
	Login        string    `json:"login"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	Repositories struct {
		Nodes []gqlRepo `json:"nodes"`
	} `json:"repositories"`
}

// GraphQLProvider builds a statistics record from the GraphQL API, either
// for a single calendar year or, for the all-time sentinel year, by fanning
// out one contribution query per year since account creation.
type GraphQLProvider struct {
	client *Client
	now    func() time.Time
	log    *logrus.Entry
}

func NewGraphQLProvider(client *Client) *GraphQLProvider {
	return &GraphQLProvider{
		client: client,
		now:    time.Now,
		log:    logrus.WithField("provider", "github-graphql"),
	}
}

func (p *GraphQLProvider) Name() string {
	return "graphql"
}

func (p *GraphQLProvider) Fetch(ctx context.Context, username string, year int) (providers.Result, error) {
	if year == core.AllTimeYear {
		return p.fetchAllTime(ctx, username)
	}
	return p.fetchYear(ctx, username, year)
}

func (p *GraphQLProvider) fetchYear(ctx context.Context, username string, year int) (providers.Result, error) {
	p.log.WithFields(logrus.Fields{"user": username, "year": year}).Info("fetching GraphQL year recap")

	var data struct {
		User *struct {
			gqlUserHeader
			ContributionsCollection gqlContributions `json:"contributionsCollection"`
		} `json:"user"`
		Merged struct {
			IssueCount int `json:"issueCount"`
		} `json:"merged"`
	}

	err := p.client.graphQL(ctx, yearRecapQuery, map[string]any{
		"login":       username,
		"from":        fmt.Sprintf("%d-01-01T00:00:00Z", year),
		"to":          fmt.Sprintf("%d-12-31T23:59:59Z", year),
		"mergedQuery": fmt.Sprintf("is:pr is:merged author:%s merged:%d-01-01..%d-12-31", username, year, year),
	}, &data)
	if err != nil {
		return providers.Result{}, err
	}
	if data.User == nil {
		return providers.Result{}, ErrUserNotFound
	}

	days := flattenDays(data.User.ContributionsCollection)
	activeDays, maxStreakDays := core.ComputeActiveDaysAndStreak(days)

	repos := data.User.Repositories.Nodes
	contrib := data.User.ContributionsCollection

	stats := core.YearStats{
		Year:        year,
		Handle:      data.User.Login,
		DisplayName: pickName(data.User.Name, data.User.Login),

		Commits:      contrib.TotalCommitContributions,
		PullRequests: contrib.TotalPullRequestContributions,
		MergedPRs:    data.Merged.IssueCount,
		Issues:       contrib.TotalIssueContributions,
		Reviews:      contrib.TotalPullRequestReviewContributions,
		StarsGained:  sumStars(repos),

		ActiveDays:    activeDays,
		MaxStreakDays: maxStreakDays,
		NightOwlRate:  nightOwlEstimate,
		WeekendRate:   core.ComputeWeekendRate(days),

		TopLanguages:  languageShares(repos),
		HighlightRepo: highlightRepo(repos),
		Calendar:      core.BuildCalendar(days),
		Profile:       profileOf(data.User.gqlUserHeader),
	}

	return providers.Result{
		Stats:    stats,
		Warnings: []string{nightOwlWarning, starsWarning},
	}, nil
}

func (p *GraphQLProvider) fetchAllTime(ctx context.Context, username string) (providers.Result, error) {
	p.log.WithField("user", username).Info("fetching GraphQL all-time recap")

	var userData struct {
		User *gqlUserHeader `json:"user"`
	}
	if err := p.client.graphQL(ctx, profileQuery, map[string]any{"login": username}, &userData); err != nil {
		return providers.Result{}, err
	}
	if userData.User == nil {
		return providers.Result{}, ErrUserNotFound
	}

	var mergedData struct {
		Merged struct {
			IssueCount int `json:"issueCount"`
		} `json:"merged"`
	}
	err := p.client.graphQL(ctx, mergedSearchQuery, map[string]any{
		"mergedQuery": "is:pr is:merged author:" + username,
	}, &mergedData)
	if err != nil {
		return providers.Result{}, err
	}

	createdYear := userData.User.CreatedAt.Year()
	currentYear := p.now().Year()

	var totals gqlContributions
	var allDays []core.RawDay
	var skipped *multierror.Error

	for year := createdYear; year <= currentYear; year++ {
		var yearData struct {
			User *struct {
				ContributionsCollection gqlContributions `json:"contributionsCollection"`
			} `json:"user"`
		}

		err := p.client.graphQL(ctx, yearContribQuery, map[string]any{
			"login": username,
			"from":  fmt.Sprintf("%d-01-01T00:00:00Z", year),
			"to":    fmt.Sprintf("%d-12-31T23:59:59Z", year),
		}, &yearData)
		if err != nil {
			// One bad year must not sink the whole aggregation.
			p.log.WithField("year", year).Warnf("skipping year: %v", err)
			skipped = multierror.Append(skipped, fmt.Errorf("year %d: %w", year, err))
			continue
		}
		if yearData.User == nil {
			continue
		}

		contrib := yearData.User.ContributionsCollection
		totals.TotalCommitContributions += contrib.TotalCommitContributions
		totals.TotalPullRequestContributions += contrib.TotalPullRequestContributions
		totals.TotalIssueContributions += contrib.TotalIssueContributions
		totals.TotalPullRequestReviewContributions += contrib.TotalPullRequestReviewContributions
		allDays = append(allDays, flattenDays(contrib)...)
	}

	warnings := []string{nightOwlWarning, starsWarning}
	if skipped != nil {
		p.log.Errorf("all-time aggregation incomplete: %v", skipped)
		warnings = append(warnings, fmt.Sprintf("%d year(s) could not be fetched and are missing from the all-time totals.", len(skipped.Errors)))
	}

	activeDays, maxStreakDays := core.ComputeActiveDaysAndStreak(allDays)
	repos := userData.User.Repositories.Nodes

	stats := core.YearStats{
		Year:        core.AllTimeYear,
		Handle:      userData.User.Login,
		DisplayName: pickName(userData.User.Name, userData.User.Login),

		Commits:      totals.TotalCommitContributions,
		PullRequests: totals.TotalPullRequestContributions,
		MergedPRs:    mergedData.Merged.IssueCount,
		Issues:       totals.TotalIssueContributions,
		Reviews:      totals.TotalPullRequestReviewContributions,
		StarsGained:  sumStars(repos),

		ActiveDays:    activeDays,
		MaxStreakDays: maxStreakDays,
		NightOwlRate:  nightOwlEstimate,
		WeekendRate:   core.ComputeWeekendRate(allDays),

		TopLanguages:  languageShares(repos),
		HighlightRepo: highlightRepo(repos),
		Calendar:      core.BuildCalendar(allDays),
		Profile:       profileOf(*userData.User),
	}

	return providers.Result{Stats: stats, Warnings: warnings}, nil
}

func flattenDays(contrib gqlContributions) []core.RawDay {
	var days []core.RawDay
	for _, week := range contrib.ContributionCalendar.Weeks {
		for _, d := range week.ContributionDays {
			days = append(days, core.RawDay{Date: d.Date, Count: d.ContributionCount})
		}
	}
	return days
}

// languageShares prefers per-repository byte sizes; repositories without
// byte-level language data fall back to a count of their primary language.
func languageShares(repos []gqlRepo) []core.LanguageShare {
	bySize := make(map[string]float64)
	byCount := make(map[string]float64)

	for _, r := range repos {
		if len(r.Languages.Edges) > 0 {
			for _, e := range r.Languages.Edges {
				bySize[e.Node.Name] += float64(e.Size)
			}
		} else if r.PrimaryLanguage != nil && r.PrimaryLanguage.Name != "" {
			byCount[r.PrimaryLanguage.Name]++
		}
	}

	if len(bySize) > 0 {
		return core.RankShares(bySize)
	}
	return core.RankShares(byCount)
}

// highlightRepo trusts the upstream star-descending ordering.
func highlightRepo(repos []gqlRepo) core.RepoHighlight {
	if len(repos) == 0 {
		return core.RepoHighlight{Name: "-"}
	}
	return core.RepoHighlight{
		Name:        repos[0].Name,
		Description: repos[0].Description,
		StarsGained: repos[0].StargazerCount,
	}
}

func sumStars(repos []gqlRepo) int {
	var total int
	for _, r := range repos {
		total += r.StargazerCount
	}
	return total
}

func profileOf(u gqlUserHeader) *core.Profile {
	return &core.Profile{
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		CreatedYear: u.CreatedAt.Year(),
	}
}
