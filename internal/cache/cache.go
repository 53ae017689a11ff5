package cache

import "context"

// ViewCache stores rendered read responses under the logical path they belong to.
// A path can hold several variants (e.g. different query strings); Invalidate drops
// all of them.
type ViewCache interface {
	Get(ctx context.Context, path, variant string) ([]byte, bool, error)
	Set(ctx context.Context, path, variant string, body []byte) error
	Invalidate(ctx context.Context, paths ...string) error
}

// Noop is used when no cache backend is configured.
type Noop struct{}

func (Noop) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, string, []byte) error         { return nil }
func (Noop) Invalidate(context.Context, ...string) error               { return nil }
