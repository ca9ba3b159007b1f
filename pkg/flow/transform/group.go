package transform

import "github.com/matzehuels/sankey/pkg/flow"

// GroupByLevel clusters node IDs by level. Within a column, IDs keep the
// iteration order of levels.
func GroupByLevel(levels *flow.LevelMap) flow.Columns {
	cols := make(flow.Columns)
	for _, id := range levels.IDs() {
		l := levels.Level(id)
		cols[l] = append(cols[l], id)
	}
	return cols
}
