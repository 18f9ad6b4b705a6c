package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vukan322/ghrecap/internal/core"
	"github.com/vukan322/ghrecap/internal/providers"
)

const restWarning = "REST mode only provides a repository and language overview; yearly contributions (commits, PRs, issues, reviews, streaks) are unavailable."

// RestProvider builds a statistics record from the public REST API. It works
// without a token but cannot derive any year-scoped metric, so all temporal
// fields stay zero.
type RestProvider struct {
	client *Client
	log    *logrus.Entry
}

func NewRestProvider(client *Client) *RestProvider {
	return &RestProvider{
		client: client,
		log:    logrus.WithField("provider", "github-rest"),
	}
}

func (p *RestProvider) Name() string {
	return "rest"
}

type restUser struct {
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type restRepo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
}

func (p *RestProvider) Fetch(ctx context.Context, username string, year int) (providers.Result, error) {
	p.log.WithField("user", username).Info("fetching REST overview")

	var user restUser
	if err := p.client.restJSON(ctx, "/users/"+url.PathEscape(username), &user); err != nil {
		return providers.Result{}, fmt.Errorf("github: fetch user: %w", err)
	}

	var repos []restRepo
	reposPath := fmt.Sprintf("/users/%s/repos?per_page=100&sort=updated", url.PathEscape(username))
	if err := p.client.restJSON(ctx, reposPath, &repos); err != nil {
		return providers.Result{}, fmt.Errorf("github: fetch repos: %w", err)
	}

	var starsSum int
	best := -1
	langCounts := make(map[string]float64)

	for i, r := range repos {
		starsSum += r.StargazersCount
		if best < 0 || r.StargazersCount > repos[best].StargazersCount {
			best = i
		}
		if r.Language != "" {
			langCounts[r.Language]++
		}
	}

	highlight := core.RepoHighlight{Name: "-"}
	if best >= 0 {
		highlight = core.RepoHighlight{
			Name:        repos[best].Name,
			Description: repos[best].Description,
			StarsGained: repos[best].StargazersCount,
		}
	}

	stats := core.YearStats{
		Year:          year,
		Handle:        user.Login,
		DisplayName:   pickName(user.Name, user.Login),
		StarsGained:   starsSum,
		TopLanguages:  core.RankShares(langCounts),
		HighlightRepo: highlight,
		Profile: &core.Profile{
			AvatarURL:   user.AvatarURL,
			CreatedAt:   user.CreatedAt.Format(time.RFC3339),
			CreatedYear: user.CreatedAt.Year(),
		},
	}

	return providers.Result{Stats: stats, Warnings: []string{restWarning}}, nil
}

func pickName(name, login string) string {
	if name != "" {
		return name
	}
	return login
}
