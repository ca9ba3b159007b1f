package flow_test

import (
	"fmt"

	"github.com/matzehuels/sankey/pkg/flow"
)

func ExampleBuild() {
	g := flow.Build([]flow.Edge{
		{From: "coal", To: "power", Weight: 40},
		{From: "gas", To: "power", Weight: 25},
		{From: "power", To: "homes", Weight: 50},
		{From: "power", To: "loss", Weight: 0}, // no flow, ignored
	})

	fmt.Println("Nodes:", g.NodeIDs())
	n, _ := g.Node("power")
	fmt.Println("power in/out/value:", n.Incoming, n.Outgoing, n.Value)
	// Output:
	// Nodes: [coal power gas homes]
	// power in/out/value: 65 50 65
}
