package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/config"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/graph"
	"github.com/matzehuels/sankey/pkg/observability"
)

var budget = []graph.Edge{
	{From: "salary", To: "budget", Weight: 3000},
	{From: "bonus", To: "budget", Weight: 500},
	{From: "budget", To: "rent", Weight: 1200},
	{From: "budget", To: "food", Weight: 600},
	{From: "budget", To: "savings", Weight: 1700},
	{From: "budget", To: "", Weight: 10},
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Edges:   budget,
		Formats: []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.EdgeCount != 6 || res.Stats.DroppedEdges != 1 {
		t.Errorf("edges = %d, dropped = %d", res.Stats.EdgeCount, res.Stats.DroppedEdges)
	}
	if res.Stats.NodeCount != 6 || res.Stats.ColumnCount != 3 {
		t.Errorf("nodes = %d, columns = %d", res.Stats.NodeCount, res.Stats.ColumnCount)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", res.CacheInfo)
	}

	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<?xml")) {
		t.Errorf("svg artifact = %.40q", res.Artifacts[FormatSVG])
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph") {
		t.Errorf("dot artifact = %q", res.Artifacts[FormatDOT])
	}
	doc, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(doc.Bands) != 5 || doc.EdgeCount != 6 {
		t.Errorf("json bands = %d, edge_count = %d", len(doc.Bands), doc.EdgeCount)
	}
}

func TestExecuteCaches(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Edges: budget, Formats: []string{FormatSVG, FormatPNG}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// The restored layout must hit-test like the computed one.
	b := first.Layout.Bands[2]
	x, y := (b.X+b.X2)/2, (b.Y+b.Y2)/2+b.Height/4
	i1, _, ok1 := first.Layout.HitTest(x, y)
	i2, _, ok2 := second.Layout.HitTest(x, y)
	if !ok1 || !ok2 || i1 != i2 {
		t.Errorf("HitTest = (%d, %v) vs (%d, %v)", i1, ok1, i2, ok2)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh run CacheInfo = %+v", third.CacheInfo)
	}
}

func TestExecuteSettingsChangeKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Edges: budget}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Edges: budget, Diagram: config.Diagram{Orientation: "vertical"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("vertical layout served from the horizontal cache entry")
	}
	if res.Document.Orientation != "vertical" {
		t.Errorf("Orientation = %q", res.Document.Orientation)
	}
}

func TestExecuteHoverBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	band := 2

	plain, err := r.Execute(ctx, Options{Edges: budget, Static: true})
	if err != nil {
		t.Fatal(err)
	}
	hovered, err := r.Execute(ctx, Options{Edges: budget, Static: true, HoverBand: &band})
	if err != nil {
		t.Fatal(err)
	}
	if hovered.CacheInfo.RenderHit {
		t.Error("highlighted render came from cache")
	}
	if bytes.Equal(plain.Artifacts[FormatSVG], hovered.Artifacts[FormatSVG]) {
		t.Error("highlight did not change the svg")
	}
	if !strings.Contains(string(hovered.Artifacts[FormatSVG]), "highlight") {
		t.Error("svg has no highlighted band")
	}
}

func TestExecuteInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flows.json")
	doc := `{"edges": [{"from": "a", "to": "b", "weight": 5}], "config": {"width": 400, "height": 200}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Input:   path,
		Diagram: config.Diagram{Height: 300},
		Formats: []string{FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}
	f := res.Document.Frame
	if f.Right+f.Left != 400 || f.Bottom+f.Top != 300 {
		t.Errorf("frame = %+v; want 400 wide from the document and 300 high from options", f)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"NoInput", Options{}, errors.ErrCodeInvalidInput},
		{"MissingFile", Options{Input: "does-not-exist.json"}, errors.ErrCodeFileNotFound},
		{"BadFormat", Options{Edges: budget, Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"BadConfig", Options{Edges: budget, Diagram: config.Diagram{ColorMode: "rainbow"}}, errors.ErrCodeInvalidColorMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteEmpty(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Edges:   []graph.Edge{{From: "a", To: "a", Weight: 0}},
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("empty layout should render: %v", err)
	}
	if res.Stats.NodeCount != 0 || res.Stats.DroppedEdges != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
}

type recordingPipelineHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingPipelineHooks) record(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *recordingPipelineHooks) OnReadComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.record("read")
}

func (h *recordingPipelineHooks) OnLayoutComplete(_ context.Context, _, _ int, _ time.Duration, _ error) {
	h.record("layout")
}

func (h *recordingPipelineHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.record("render")
}

func TestExecuteHooks(t *testing.T) {
	hooks := &recordingPipelineHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Edges: budget}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	got := strings.Join(hooks.events, ",")
	if got != "read,layout,render,read" {
		t.Errorf("events = %s", got)
	}
}
