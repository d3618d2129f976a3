package cache

import (
	"context"
	"time"
)

const defaultTTL = 5 * time.Minute

// Revalidator drops every cached representation stored under a view path.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// PageCache stores rendered view bodies keyed by path and normalized query string.
//
// Get returns the generation the caller must hand back to Set. A body computed
// under an older generation is never served after Revalidate bumped it.
type PageCache interface {
	Revalidator
	Get(ctx context.Context, path, query string) (body []byte, generation int64, ok bool)
	Set(ctx context.Context, path, query string, generation int64, body []byte)
}
