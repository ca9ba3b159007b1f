package cache

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	"github.com/matzehuels/sankey/pkg/geom"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/observability"
	"github.com/matzehuels/sankey/pkg/render/sankey/layout"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "layout:x"); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}

	if err := c.Set(ctx, "layout:x", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "layout:x")
	if err != nil || !ok || string(data) != "value" {
		t.Fatalf("Get = %q, %v, %v", data, ok, err)
	}

	if err := c.Delete(ctx, "layout:x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "layout:x"); ok {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "layout:x"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "forever"); !ok {
		t.Error("entry without ttl missing")
	}
}

func TestFileCache_Corrupt(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("corrupt entry = %v, %v; want miss", ok, err)
	}
}

func TestFileCache_StatsAndClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("12345"), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, size, err := c.Stats()
	if err != nil || n != 3 || size == 0 {
		t.Errorf("Stats() = %d, %d, %v", n, size, err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, _, _ := c.Stats(); n != 0 {
		t.Errorf("entries after Clear = %d", n)
	}
}

func TestFileCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Set(ctx, "shared", []byte("same value"), time.Minute); err != nil {
				t.Errorf("Set: %v", err)
			}
			if data, ok, err := c.Get(ctx, "shared"); err != nil || (ok && string(data) != "same value") {
				t.Errorf("Get = %q, %v, %v", data, ok, err)
			}
		}()
	}
	wg.Wait()
}

type recordingHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set []string
}

func (h *recordingHooks) OnCacheHit(_ context.Context, k string) {
	h.mu.Lock()
	h.hits = append(h.hits, k)
	h.mu.Unlock()
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, k string) {
	h.mu.Lock()
	h.misses = append(h.misses, k)
	h.mu.Unlock()
}

func (h *recordingHooks) OnCacheSet(_ context.Context, k string, _ int) {
	h.mu.Lock()
	h.set = append(h.set, k)
	h.mu.Unlock()
}

func TestFileCache_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_, _, _ = c.Get(ctx, "layout:abc")
	_ = c.Set(ctx, "artifact:def", []byte("x"), 0)
	_, _, _ = c.Get(ctx, "artifact:def")

	if len(hooks.misses) != 1 || hooks.misses[0] != "layout" {
		t.Errorf("misses = %v", hooks.misses)
	}
	if len(hooks.set) != 1 || hooks.set[0] != "artifact" {
		t.Errorf("sets = %v", hooks.set)
	}
	if len(hooks.hits) != 1 || hooks.hits[0] != "artifact" {
		t.Errorf("hits = %v", hooks.hits)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, u := range []string{"", "none"} {
		c, err := Open(ctx, u)
		if err != nil {
			t.Fatalf("Open(%q): %v", u, err)
		}
		if _, ok := c.(*NullCache); !ok {
			t.Errorf("Open(%q) = %T, want *NullCache", u, c)
		}
	}

	dir := t.TempDir()
	c, err := Open(ctx, "file://"+dir)
	if err != nil {
		t.Fatalf("Open(file): %v", err)
	}
	if fc, ok := c.(*FileCache); !ok || fc.Dir() != dir {
		t.Errorf("Open(file) = %#v", c)
	}

	if _, err := Open(ctx, "memcached://localhost"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Open(memcached) error = %v", err)
	}
	if _, err := Open(ctx, "redis://:bad port"); err == nil {
		t.Error("Open with a malformed redis URL should fail")
	}
}

func TestLayoutStore(t *testing.T) {
	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	store := NewLayoutStore(fc, time.Hour)

	doc := graph.FromLayout(layout.Build([]flow.Edge{
		{From: "a", To: "b", Weight: 2},
	}, geom.NewRect(200, 100, 10)))

	if err := store.SaveLayout(ctx, doc); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}
	got, err := store.LoadLayout(ctx, doc.ID)
	if err != nil {
		t.Fatalf("LoadLayout: %v", err)
	}
	if got.ID != doc.ID || len(got.Bands) != 1 {
		t.Errorf("LoadLayout = %+v", got)
	}

	if _, err := store.LoadLayout(ctx, "missing"); err != ErrNotFound {
		t.Errorf("LoadLayout(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := NewLayoutStore(NewNullCache(), 0).LoadLayout(ctx, doc.ID); err != ErrNotFound {
		t.Errorf("null store error = %v", err)
	}
}
