package transform

import (
	"reflect"
	"testing"

	"github.com/matzehuels/sankey/pkg/flow"
)

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		edges []flow.Edge
		want  [][]string
	}{
		{"acyclic", chain("a", "b", "c"), nil},
		{"triangle", chain("a", "b", "c", "a"), [][]string{{"a", "b", "c"}}},
		{"self loop", []flow.Edge{{From: "a", To: "a", Weight: 1}}, [][]string{{"a"}}},
		{
			name:  "two components",
			edges: append(chain("x", "y", "x"), chain("a", "b", "a")...),
			want:  [][]string{{"x", "y"}, {"a", "b"}},
		},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCycles(flow.Build(tt.edges))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindCycles() = %v, want %v", got, tt.want)
			}
		})
	}
}
