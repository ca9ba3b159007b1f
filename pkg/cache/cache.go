// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. Backends:
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: JSON entry files under the XDG cache dir (CLI default)
//   - [RedisCache]: shared cache for API servers
//   - [MongoCache]: shared cache that also keeps layout documents
//
// [Open] picks a backend from a URL. Keys come from a [Keyer], which
// hashes the input edges and every option that changes the output.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/sankey/pkg/errors"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Cache is a byte store with optional expiry. Get reports a miss with
// ok == false and a nil error; errors mean the backend failed.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open connects to the cache backend named by rawURL:
//
//	""  or "none"             NullCache
//	file:///path/to/dir       FileCache
//	redis://host:6379/0       RedisCache
//	mongodb://host:27017/db   MongoCache
func Open(ctx context.Context, rawURL string) (Cache, error) {
	switch {
	case rawURL == "" || rawURL == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(rawURL, "file://"):
		c, err := NewFileCache(strings.TrimPrefix(rawURL, "file://"))
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(rawURL, "redis://"), strings.HasPrefix(rawURL, "rediss://"):
		c, err := NewRedisCache(ctx, rawURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "open redis cache")
		}
		return c, nil
	case strings.HasPrefix(rawURL, "mongodb://"), strings.HasPrefix(rawURL, "mongodb+srv://"):
		c, err := NewMongoCache(ctx, rawURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCacheUnavailable, err, "open mongo cache")
		}
		return c, nil
	}
	return nil, errors.ValidateURL(rawURL, "file", "redis", "rediss", "mongodb", "mongodb+srv")
}

// keyType returns the namespace of a key for observability events.
func keyType(key string) string {
	key = key[strings.LastIndex(key, "/")+1:]
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
