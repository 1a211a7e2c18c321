// Package graph implements the NFA value-graph: a directed, loop-free graph
// with a fixed INITIAL source and TERMINAL sink, at most one edge per
// ordered node pair, and a recursive composite-edge expression type that
// the flattener (package flatten) reduces the graph down to.
package graph

import "sort"

// Node is an NFA node: distinct from dfa.Node, identified by a numeric id
// assigned in construction order. A fresh Graph always assigns id 0 to
// Initial and id 1 to Terminal.
type Node struct {
	id int
}

// ID returns the node's numeric identifier.
func (n Node) ID() int {
	return n.id
}

// SimpleEdge is one NFA transition: either a non-zero digit mask (optionally
// marked Optional, meaning the transition may be skipped), or Epsilon.
type SimpleEdge struct {
	Mask     uint16
	Optional bool
	Epsilon  bool
}

// OutEdge pairs a destination with the SimpleEdge reaching it.
type OutEdge struct {
	To   Node
	Edge SimpleEdge
}

// Graph is a mutable NFA under construction. Once built it is treated as an
// immutable input to the flattener and must not be modified further.
type Graph struct {
	Initial  Node
	Terminal Node

	nodeCount int
	adj       map[int]map[int]SimpleEdge
}

// New returns a graph containing only Initial (id 0) and Terminal (id 1).
func New() *Graph {
	g := &Graph{adj: map[int]map[int]SimpleEdge{}}
	g.Initial = g.AddNode()
	g.Terminal = g.AddNode()
	return g
}

// AddNode allocates a fresh node with the next sequential id.
func (g *Graph) AddNode() Node {
	id := g.nodeCount
	g.nodeCount++
	g.adj[id] = map[int]SimpleEdge{}
	return Node{id: id}
}

// NodeCount returns the number of nodes allocated so far, including Initial
// and Terminal.
func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// AddEdge records the edge from -> to, overwriting any existing edge on that
// ordered pair. The value-graph stores at most one edge per pair; callers
// needing the "digit edge becomes optional" merge read the existing edge via
// Edge first.
func (g *Graph) AddEdge(from, to Node, e SimpleEdge) {
	g.adj[from.id][to.id] = e
}

// Edge returns the edge from -> to, if any.
func (g *Graph) Edge(from, to Node) (SimpleEdge, bool) {
	e, ok := g.adj[from.id][to.id]
	return e, ok
}

// OutEdges returns from's outgoing edges ordered by destination id
// ascending, giving deterministic visitation order throughout the package.
func (g *Graph) OutEdges(from Node) []OutEdge {
	m := g.adj[from.id]
	out := make([]OutEdge, 0, len(m))
	for to, e := range m {
		out = append(out, OutEdge{To: Node{id: to}, Edge: e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To.id < out[j].To.id })
	return out
}

// OutDegree returns the number of outgoing edges from n.
func (g *Graph) OutDegree(n Node) int {
	return len(g.adj[n.id])
}
