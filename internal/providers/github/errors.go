package github

import (
	"errors"
	"fmt"
	"time"
)

// ErrUserNotFound is returned when GraphQL resolves the login to a null user.
var ErrUserNotFound = errors.New("github: user not found or inaccessible")

// RateLimitError reports an exhausted GitHub API quota. RetryAfter is zero
// when the API gave no reset hint (GraphQL errors carry none).
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// UpstreamError is any other non-success GitHub response, carrying the
// upstream's own message when one could be parsed.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("github: request failed with status %d", e.Status)
}
