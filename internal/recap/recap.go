package recap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vukan322/ghrecap/internal/config"
	"github.com/vukan322/ghrecap/internal/core"
	"github.com/vukan322/ghrecap/internal/providers"
	"github.com/vukan322/ghrecap/internal/providers/github"
)

const (
	serverTokenNote = "A server-side token is configured: yearly contributions are available without supplying your own token."
	tokenHintNote   = "Configure a GITHUB_TOKEN (or supply one per request) to avoid the public API rate limit."
)

// firstComparableYear is the year GitHub launched; there is nothing to
// compare a 2008 recap against.
const firstComparableYear = 2008

type Request struct {
	Username          string
	Year              int
	Token             string
	IncludeComparison bool
}

type Meta struct {
	Source   string   `json:"source"`
	Warnings []string `json:"warnings"`
}

type Response struct {
	Stats      core.YearStats       `json:"stats"`
	Comparison *core.YearComparison `json:"comparison"`
	Meta       Meta                 `json:"meta"`
}

// Service picks the fetch strategy per request: GraphQL whenever a token is
// available, otherwise REST behind a short-lived cache.
type Service struct {
	serverToken string
	cache       *ttlCache
	rest        providers.Provider
	newGraphQL  func(token string) providers.Provider
	log         *logrus.Entry
}

func NewService(cfg *config.Config) *Service {
	restClient := github.NewClient("")
	restClient.SetEndpoints(cfg.GitHub.RestURL, cfg.GitHub.GraphQLURL)

	return &Service{
		serverToken: strings.TrimSpace(cfg.GitHub.Token),
		cache:       newTTLCache(cfg.CacheTTL(), time.Now),
		rest:        github.NewRestProvider(restClient),
		newGraphQL: func(token string) providers.Provider {
			client := github.NewClient(token)
			client.SetEndpoints(cfg.GitHub.RestURL, cfg.GitHub.GraphQLURL)
			return github.NewGraphQLProvider(client)
		},
		log: logrus.WithField("component", "recap"),
	}
}

// GetRecap fetches statistics for one account, optionally with a
// year-over-year comparison. Errors from the API client propagate unchanged;
// a failed previous-year fetch only degrades the comparison.
func (s *Service) GetRecap(ctx context.Context, req Request) (*Response, error) {
	token := strings.TrimSpace(req.Token)
	usedServerToken := false
	if token == "" && s.serverToken != "" {
		token = s.serverToken
		usedServerToken = true
	}

	if token != "" {
		return s.getViaGraphQL(ctx, req, token, usedServerToken)
	}
	return s.getViaREST(ctx, req)
}

func (s *Service) getViaGraphQL(ctx context.Context, req Request, token string, usedServerToken bool) (*Response, error) {
	provider := s.newGraphQL(token)

	res, err := provider.Fetch(ctx, req.Username, req.Year)
	if err != nil {
		return nil, err
	}

	warnings := res.Warnings
	if usedServerToken {
		warnings = append([]string{serverTokenNote}, warnings...)
	}

	return &Response{
		Stats:      res.Stats,
		Comparison: s.maybeCompare(ctx, provider, req, res.Stats),
		Meta:       Meta{Source: provider.Name(), Warnings: warnings},
	}, nil
}

func (s *Service) getViaREST(ctx context.Context, req Request) (*Response, error) {
	key := fmt.Sprintf("rest:%s:%d", req.Username, req.Year)

	var stats core.YearStats
	var warnings []string

	if entry, ok := s.cache.get(key); ok {
		stats = entry.stats
		warnings = append([]string(nil), entry.warnings...)
	} else {
		res, err := s.rest.Fetch(ctx, req.Username, req.Year)
		if err != nil {
			return nil, err
		}
		stats = res.Stats
		warnings = append(res.Warnings, tokenHintNote)
		s.cache.set(key, stats, warnings)
	}

	return &Response{
		Stats:      stats,
		Comparison: s.maybeCompare(ctx, s.rest, req, stats),
		Meta:       Meta{Source: s.rest.Name(), Warnings: warnings},
	}, nil
}

// maybeCompare fetches the previous year with the same strategy. The
// all-time sentinel and the first GitHub year are never compared, and any
// failure degrades to a comparison without a previous record.
func (s *Service) maybeCompare(ctx context.Context, provider providers.Provider, req Request, current core.YearStats) *core.YearComparison {
	if !req.IncludeComparison || req.Year <= firstComparableYear {
		return nil
	}

	prev, err := provider.Fetch(ctx, req.Username, req.Year-1)
	if err != nil {
		s.log.WithField("year", req.Year-1).Warnf("previous-year fetch failed: %v", err)
		comparison := core.BuildComparison(current, nil)
		return &comparison
	}

	comparison := core.BuildComparison(current, &prev.Stats)
	return &comparison
}
