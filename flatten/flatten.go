package flatten

import (
	"container/heap"
	"fmt"
	"sort"

	"digitrange/graph"
)

// Flatten reduces g (an acyclic, single-source single-sink NFA value-graph)
// to a single composite Edge expression equivalent in language. g must have
// been produced by digitrange/convert or satisfy the same shape: directed,
// loop-free, exactly one source (g.Initial) and one sink (g.Terminal).
func Flatten(g *graph.Graph) (graph.Edge, error) {
	order, err := nodeOrder(g)
	if err != nil {
		return graph.Edge{}, err
	}

	result := graph.NewEpsilon()
	current := g.Initial
	for current.ID() != g.Terminal.ID() {
		edge, target, err := subVisit(g, current, order)
		if err != nil {
			return graph.Edge{}, err
		}
		result = concatSkippingEpsilon(result, edge)
		current = target
	}
	return result, nil
}

// nodeOrder ranks every node reachable from g.Initial by
// (max_path_length, node_id): lower rank pops first from the path-follower
// queue, guaranteeing that if several followers converge on the same node
// they are adjacent when popped. The order has the property that if a
// ranks below b, no path visits b before a.
func nodeOrder(g *graph.Graph) (map[int]int, error) {
	lengths, err := maxPathLengths(g, g.Initial)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(lengths))
	for id := range lengths {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if lengths[ids[i]] != lengths[ids[j]] {
			return lengths[ids[i]] < lengths[ids[j]]
		}
		return ids[i] < ids[j]
	})
	rank := make(map[int]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	return rank, nil
}

// pathFollower is a pair (accumulated expression, target node) representing
// partial progress along one branch of the sub-graph being collapsed.
type pathFollower struct {
	target graph.Node
	edge   graph.Edge
}

type followerQueue struct {
	items []pathFollower
	rank  map[int]int
}

func (q *followerQueue) Len() int { return len(q.items) }
func (q *followerQueue) Less(i, j int) bool {
	return q.rank[q.items[i].target.ID()] < q.rank[q.items[j].target.ID()]
}
func (q *followerQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *followerQueue) Push(x any)    { q.items = append(q.items, x.(pathFollower)) }
func (q *followerQueue) Pop() any {
	n := len(q.items)
	last := q.items[n-1]
	q.items = q.items[:n-1]
	return last
}

// subVisit collapses the sub-graph rooted at start into a single
// pathFollower: seed one follower per outgoing edge of start, repeatedly
// pop the least (by node order), drain any other followers sharing its
// target into a disjunction, and, unless the queue has drained dry,
// recurse one level further from that target, concatenate, and push the
// result back in as a new follower.
func subVisit(g *graph.Graph, start graph.Node, order map[int]int) (graph.Edge, graph.Node, error) {
	out := g.OutEdges(start)
	if start.ID() == g.Terminal.ID() {
		if len(out) != 0 {
			return graph.Edge{}, graph.Node{}, fmt.Errorf("%w: TERMINAL has outDegree %d, want 0", ErrInternalInconsistency, len(out))
		}
		return graph.NewEpsilon(), start, nil
	}
	if len(out) == 0 {
		return graph.Edge{}, graph.Node{}, fmt.Errorf("%w: node %d has no outgoing edges and is not TERMINAL", ErrInternalInconsistency, start.ID())
	}

	q := &followerQueue{rank: order}
	for _, oe := range out {
		heap.Push(q, pathFollower{target: oe.To, edge: leafFor(oe.Edge)})
	}

	for {
		popped := heap.Pop(q).(pathFollower)
		group := []graph.Edge{popped.edge}
		for q.Len() > 0 && q.items[0].target.ID() == popped.target.ID() {
			group = append(group, heap.Pop(q).(pathFollower).edge)
		}
		collapsed := graph.NewDisjunction(group...)

		if q.Len() == 0 {
			return collapsed, popped.target, nil
		}

		nextEdge, nextTarget, err := subVisit(g, popped.target, order)
		if err != nil {
			return graph.Edge{}, graph.Node{}, err
		}
		heap.Push(q, pathFollower{target: nextTarget, edge: concatSkippingEpsilon(collapsed, nextEdge)})
	}
}

func leafFor(e graph.SimpleEdge) graph.Edge {
	if e.Epsilon {
		return graph.NewEpsilon()
	}
	leaf := graph.NewLeaf(e.Mask)
	if e.Optional {
		return graph.NewOptional(leaf)
	}
	return leaf
}

func concatSkippingEpsilon(a, b graph.Edge) graph.Edge {
	switch {
	case a.IsEpsilon():
		return b
	case b.IsEpsilon():
		return a
	default:
		return graph.NewConcat(a, b)
	}
}
