package providers

import (
	"context"

	"github.com/vukan322/ghrecap/internal/core"
)

// Result is a fetched statistics record plus any advisory warnings the
// strategy wants surfaced to the caller.
type Result struct {
	Stats    core.YearStats
	Warnings []string
}

// Provider is one strategy for turning a username and year into a canonical
// statistics record. Name doubles as the source label in response metadata.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, username string, year int) (Result, error)
}
