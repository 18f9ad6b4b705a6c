package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL    = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultUserAgent  = "ghrecap/0.1"
)

// Client performs authenticated REST and GraphQL calls against the GitHub
// API and classifies failures into RateLimitError or UpstreamError.
type Client struct {
	client     *http.Client
	baseURL    string
	graphqlURL string
	token      string
	now        func() time.Time
	log        *logrus.Entry
}

func NewClient(token string) *Client {
	return &Client{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		graphqlURL: defaultGraphQLURL,
		token:      token,
		now:        time.Now,
		log:        logrus.WithField("client", "github"),
	}
}

// SetEndpoints overrides the API endpoints, e.g. for a GitHub Enterprise
// host or a test server. Empty strings keep the current values.
func (c *Client) SetEndpoints(restURL, graphqlURL string) {
	if restURL != "" {
		c.baseURL = restURL
	}
	if graphqlURL != "" {
		c.graphqlURL = graphqlURL
	}
}

func (c *Client) restJSON(ctx context.Context, path string, out any) error {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyRESTFailure(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) classifyRESTFailure(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(body))

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		msg = parsed.Message
	}

	c.log.WithField("status", resp.StatusCode).Errorf("REST request failed: %s", msg)

	remaining, remErr := strconv.Atoi(resp.Header.Get("x-ratelimit-remaining"))
	if remErr == nil && remaining <= 0 {
		var retryAfter time.Duration
		if reset, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64); err == nil {
			if d := time.Unix(reset, 0).Sub(c.now()); d > 0 {
				retryAfter = d
			}
		}
		return &RateLimitError{
			Message:    "GitHub API rate limit hit: retry later or supply a token (authenticated requests have a higher quota)",
			RetryAfter: retryAfter,
		}
	}

	if msg == "" {
		msg = fmt.Sprintf("GitHub REST request failed (%d)", resp.StatusCode)
	}
	return &UpstreamError{Status: resp.StatusCode, Message: msg}
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *Client) graphQL(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("new graphql request: %w", err)
	}
	c.applyHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do graphql request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	decodeErr := json.NewDecoder(resp.Body).Decode(&envelope)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok || len(envelope.Errors) > 0 {
		msg := fmt.Sprintf("GitHub GraphQL request failed (%d)", resp.StatusCode)
		if len(envelope.Errors) > 0 {
			msg = envelope.Errors[0].Message
		}
		c.log.WithField("status", resp.StatusCode).Errorf("GraphQL request failed: %s", msg)

		if strings.Contains(strings.ToLower(msg), "rate limit") {
			return &RateLimitError{
				Message: "GitHub API rate limit hit: retry later or use a token with a higher quota",
			}
		}
		return &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode graphql response: %w", decodeErr)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode graphql data: %w", err)
		}
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", defaultUserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
