// Package flatten reduces an acyclic, single-source single-sink NFA
// value-graph (digitrange/graph) into one composite Edge expression.
package flatten

import (
	"fmt"

	"digitrange/graph"
	"digitrange/internal/sparse"
)

// maxPathLengths computes, for every node reachable from start, the length
// of the longest path from start to it. The graph must be acyclic; a cycle
// is reported as an error rather than looping forever.
func maxPathLengths(g *graph.Graph, start graph.Node) (map[int]int, error) {
	lengths := map[int]int{start.ID(): 0}
	order, err := topologicalOrder(g, start)
	if err != nil {
		return nil, err
	}
	for _, n := range order {
		base, ok := lengths[n.ID()]
		if !ok {
			continue
		}
		for _, oe := range g.OutEdges(n) {
			if l := base + 1; l > lengths[oe.To.ID()] {
				lengths[oe.To.ID()] = l
			}
		}
	}
	return lengths, nil
}

// topologicalOrder returns every node reachable from start in an order
// consistent with edge direction (Kahn's algorithm restricted to the
// reachable subgraph), or an error if a cycle is detected.
func topologicalOrder(g *graph.Graph, start graph.Node) ([]graph.Node, error) {
	capacity := uint32(g.NodeCount())
	reachable := sparse.NewIDSet(capacity)
	indegree := make([]int, capacity)

	var collect func(n graph.Node)
	collect = func(n graph.Node) {
		id := uint32(n.ID())
		if reachable.Contains(id) {
			return
		}
		reachable.Insert(id)
		for _, oe := range g.OutEdges(n) {
			indegree[oe.To.ID()]++
			collect(oe.To)
		}
	}
	collect(start)

	queue := []graph.Node{start}
	var order []graph.Node
	visited := sparse.NewIDSet(capacity)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		id := uint32(n.ID())
		if visited.Contains(id) {
			continue
		}
		visited.Insert(id)
		order = append(order, n)
		for _, oe := range g.OutEdges(n) {
			indegree[oe.To.ID()]--
			if indegree[oe.To.ID()] == 0 {
				queue = append(queue, oe.To)
			}
		}
	}
	if len(order) != reachable.Size() {
		return nil, fmt.Errorf("%w: graph is not acyclic (reached %d of %d nodes)", ErrInternalInconsistency, len(order), reachable.Size())
	}
	return order, nil
}
