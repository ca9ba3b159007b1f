package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

// Backends are exercised only when a server is configured:
//
//	SANKEY_TEST_REDIS_URL=redis://localhost:6379/15
//	SANKEY_TEST_MONGO_URL=mongodb://localhost:27017/sankey_test

func backend(t *testing.T, env string) Cache {
	t.Helper()
	u := os.Getenv(env)
	if u == "" {
		t.Skipf("%s not set", env)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, err := Open(ctx, u)
	if err != nil {
		t.Fatalf("Open(%s): %v", u, err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func exerciseCache(t *testing.T, c Cache) {
	ctx := context.Background()
	key := "test:" + t.Name()
	_ = c.Delete(ctx, key)

	if _, ok, err := c.Get(ctx, key); ok || err != nil {
		t.Fatalf("Get before Set = %v, %v", ok, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok || string(data) != "payload" {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("entry survived Delete")
	}
}

func TestRedisCache_Integration(t *testing.T) {
	c := backend(t, "SANKEY_TEST_REDIS_URL")
	if _, ok := c.(*RedisCache); !ok {
		t.Fatalf("Open returned %T", c)
	}
	exerciseCache(t, c)
}

func TestMongoCache_Integration(t *testing.T) {
	c := backend(t, "SANKEY_TEST_MONGO_URL")
	mc, ok := c.(*MongoCache)
	if !ok {
		t.Fatalf("Open returned %T", c)
	}
	exerciseCache(t, c)

	ctx := context.Background()
	doc := graph.FromLayout(layout.Build([]flow.Edge{
		{From: "a", To: "b", Weight: 2},
		{From: "b", To: "a", Weight: 1},
	}, geom.NewRect(200, 100, 10)))

	store := NewLayoutStore(mc, time.Hour)
	if store != LayoutStore(mc) {
		t.Error("NewLayoutStore should use the native mongo store")
	}
	if err := store.SaveLayout(ctx, doc); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}
	got, err := store.LoadLayout(ctx, doc.ID)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if got.ID != doc.ID || len(got.Bands) != 2 || len(got.Cycles) != 1 {
		t.Errorf("LoadLayout = %+v", got)
	}
}
