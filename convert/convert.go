// Package convert turns a RangeTree's DFA into the equivalent NFA
// value-graph, ready for the flattener to reduce to a single composite
// edge.
package convert

import (
	"digitrange/dfa"
	"digitrange/graph"
	"digitrange/rangetree"
)

// ToGraph visits t's DFA in edge order and builds the equivalent NFA: one
// graph edge per DFA edge, plus epsilon edges (or optional-edge promotion)
// at every node that can terminate. Node ids are assigned in visitation
// order, INITIAL=0, TERMINAL=1. Returns an empty graph
// (Initial and Terminal only, no edges) if t is empty.
//
// The DFA's own terminal leaf (terminal, no further edges — a single
// interned node shared by every path that ends there) is not given its own
// NFA image: it *is* the value-graph's TERMINAL, so any DFA edge landing on
// it becomes a digit-mask edge straight to g.Terminal instead of an extra
// hop followed by an epsilon.
func ToGraph(t rangetree.RangeTree) *graph.Graph {
	g := graph.New()
	if t.IsEmpty() {
		return g
	}

	images := map[*dfa.Node]graph.Node{}
	visit(g, t.Node(), g.Initial, images)
	return g
}

// visit records n's NFA image, wires its edges in ascending-mask order, and
// recurses into each target the first time it is discovered. Interned DFA
// sub-trees shared between branches resolve to the same image through the
// map, so the DFA's structural sharing carries straight into the NFA. Once
// the edges are in place the terminal epsilon (or optional promotion) is
// added last.
func visit(g *graph.Graph, n *dfa.Node, image graph.Node, images map[*dfa.Node]graph.Node) {
	images[n] = image

	for _, group := range n.EdgeGroups() {
		if isPureTerminalLeaf(group.Target) {
			images[group.Target] = g.Terminal
			g.AddEdge(image, g.Terminal, graph.SimpleEdge{Mask: group.Mask})
			continue
		}
		target, seen := images[group.Target]
		if !seen {
			target = g.AddNode()
		}
		g.AddEdge(image, target, graph.SimpleEdge{Mask: group.Mask})
		if !seen {
			visit(g, group.Target, target, images)
		}
	}

	if n.IsTerminal() {
		addTerminalEdge(g, image)
	}
}

func isPureTerminalLeaf(n *dfa.Node) bool {
	return n.IsTerminal() && n.EdgeCount() == 0
}

// addTerminalEdge records that image can terminate: an epsilon edge to
// TERMINAL, unless a digit-mask edge already occupies (image, TERMINAL), in
// which case that edge is promoted to optional instead, since the
// value-graph stores at most one edge per ordered node pair.
func addTerminalEdge(g *graph.Graph, image graph.Node) {
	if existing, ok := g.Edge(image, g.Terminal); ok {
		existing.Optional = true
		g.AddEdge(image, g.Terminal, existing)
		return
	}
	g.AddEdge(image, g.Terminal, graph.SimpleEdge{Epsilon: true})
}
