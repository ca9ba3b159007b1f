package sink

import (
	"bytes"
	"testing"

	"github.com/matzehuels/sankey/pkg/graph"
)

func TestRenderJSON(t *testing.T) {
	l := testLayout()

	data, err := RenderJSON(l, WithJSONID("diagram-1"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	doc, err := graph.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if doc.ID != "diagram-1" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.EdgeCount != 3 || len(doc.Bands) != 2 {
		t.Errorf("edges = %d, bands = %d; want 3, 2", doc.EdgeCount, len(doc.Bands))
	}
	if doc.Bands[1].Index != 2 {
		t.Errorf("second band index = %d, want 2", doc.Bands[1].Index)
	}

	again, _ := RenderJSON(l, WithJSONID("diagram-1"))
	if !bytes.Equal(data, again) {
		t.Error("output with a fixed ID is not deterministic")
	}
}

func TestRenderJSON_Compact(t *testing.T) {
	data, err := RenderJSON(testLayout(), WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n  ")) {
		t.Error("compact output is indented")
	}
	if _, err := graph.UnmarshalLayout(data); err != nil {
		t.Errorf("compact output does not parse: %v", err)
	}
}
