package cache

import (
	"context"
	"time"

	"github.com/matzehuels/sankey/pkg/graph"
)

// LayoutStore keeps layout documents addressable by ID, so that a client
// can compute a layout once and hit-test or re-render it later.
type LayoutStore interface {
	SaveLayout(ctx context.Context, l graph.Layout) error
	// LoadLayout returns ErrNotFound for unknown or expired IDs.
	LoadLayout(ctx context.Context, id string) (graph.Layout, error)
}

// NewLayoutStore returns the native store of c when it has one and
// otherwise keeps JSON documents in c under "doc:<id>" keys.
func NewLayoutStore(c Cache, ttl time.Duration) LayoutStore {
	if s, ok := c.(LayoutStore); ok {
		return s
	}
	return &cacheStore{cache: c, ttl: ttl}
}

type cacheStore struct {
	cache Cache
	ttl   time.Duration
}

func (s *cacheStore) SaveLayout(ctx context.Context, l graph.Layout) error {
	data, err := graph.MarshalLayout(l)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, "doc:"+l.ID, data, s.ttl)
}

func (s *cacheStore) LoadLayout(ctx context.Context, id string) (graph.Layout, error) {
	data, ok, err := s.cache.Get(ctx, "doc:"+id)
	if err != nil {
		return graph.Layout{}, err
	}
	if !ok {
		return graph.Layout{}, ErrNotFound
	}
	return graph.UnmarshalLayout(data)
}
