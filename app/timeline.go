package app

import (
	"context"

	"github.com/CrestNiraj12/openfeed/domain"
)

// PageFetcher retrieves one page of a remote timeline.
// Implemented by infrastructure (e.g. the Mastodon home timeline).
type PageFetcher interface {
	// Fetch returns the page described by d, newest first.
	// Failures should be reported as *domain.FetchError; the fetch must stop
	// and return ctx.Err() once ctx is cancelled.
	Fetch(ctx context.Context, d domain.Directive) ([]domain.Item, error)
}

// PageFetcherFunc adapts a function to PageFetcher.
type PageFetcherFunc func(ctx context.Context, d domain.Directive) ([]domain.Item, error)

func (f PageFetcherFunc) Fetch(ctx context.Context, d domain.Directive) ([]domain.Item, error) {
	return f(ctx, d)
}
