package cache

import "github.com/matzehuels/sankey/pkg/flow"

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments or
// tenants can share one Redis or Mongo backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging/")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// InputHash is not prefixed; it identifies content, not a cache slot.
func (k *ScopedKeyer) InputHash(edges []flow.Edge) string {
	return k.inner.InputHash(edges)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
