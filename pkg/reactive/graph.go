package reactive

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
)

// GraphNode describes one live node in a Graph snapshot.
type GraphNode struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	State string `json:"state"`
}

// GraphEdge points from a source to a node that read it.
type GraphEdge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is a snapshot of a runtime's dependency graph.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Graph returns a snapshot of every live node and dependency edge, ordered by
// creation.
func (rt *Runtime) Graph() Graph {
	var g Graph
	for _, id := range slices.Sorted(maps.Keys(rt.nodes)) {
		n := rt.nodes[id]
		g.Nodes = append(g.Nodes, GraphNode{
			ID:    n.id,
			Name:  n.name,
			Kind:  n.kind.String(),
			State: n.state.String(),
		})
		for _, src := range n.sources {
			g.Edges = append(g.Edges, GraphEdge{From: src.id, To: n.id})
		}
	}
	return g
}

// ToDOT returns a Graphviz DOT digraph of the snapshot. Signals are drawn as
// ellipses, memos as boxes and effects as rounded boxes.
func (g Graph) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Reactive {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n\n")

	for _, n := range g.Nodes {
		shape, style := "box", "filled"
		switch n.Kind {
		case "signal":
			shape = "ellipse"
		case "effect":
			style = "\"filled,rounded\""
		}
		fill := "white"
		if n.State != "clean" {
			fill = "lightgrey"
		}
		fmt.Fprintf(&buf, "  n%d [label=%q, shape=%s, style=%s, fillcolor=%s];\n", n.ID, n.Name, shape, style, fill)
	}
	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}
