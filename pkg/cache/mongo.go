package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/observability"
)

const (
	defaultMongoDB        = "sankey"
	mongoEntryCollection  = "cache"
	mongoLayoutCollection = "layouts"
)

// MongoCache stores cache entries in one collection with a TTL index and
// layout documents in another as native BSON.
type MongoCache struct {
	client  *mongo.Client
	entries *mongo.Collection
	layouts *mongo.Collection
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to rawURL. The database is taken from the URL
// path and defaults to "sankey".
func NewMongoCache(ctx context.Context, rawURL string) (*MongoCache, error) {
	db := defaultMongoDB
	if u, err := url.Parse(rawURL); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			db = name
		}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(rawURL))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = RetryWithBackoff(ctx, func() error {
		return Retryable(client.Ping(ctx, nil))
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: mongo: %v", ErrUnavailable, err)
	}

	c := &MongoCache{
		client:  client,
		entries: client.Database(db).Collection(mongoEntryCollection),
		layouts: client.Database(db).Collection(mongoLayoutCollection),
	}
	// Documents are removed once expires_at has passed.
	_, err = c.entries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return c, nil
}

// Get retrieves a value. Expired entries the TTL monitor has not removed
// yet count as misses.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.entries.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find: %w", err)
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return e.Data, true, nil
}

// Set upserts a value.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	_, err := c.entries.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	if _, err := c.entries.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

// SaveLayout stores a layout document under its ID.
func (c *MongoCache) SaveLayout(ctx context.Context, l graph.Layout) error {
	_, err := c.layouts.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo save layout: %w", err)
	}
	return nil
}

// LoadLayout fetches a layout document by ID.
func (c *MongoCache) LoadLayout(ctx context.Context, id string) (graph.Layout, error) {
	var l graph.Layout
	err := c.layouts.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Layout{}, ErrNotFound
	}
	if err != nil {
		return graph.Layout{}, fmt.Errorf("mongo load layout: %w", err)
	}
	return l, nil
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

var (
	_ Cache       = (*MongoCache)(nil)
	_ LayoutStore = (*MongoCache)(nil)
)
