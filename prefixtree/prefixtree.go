// Package prefixtree implements PrefixTree: a RangeTree with added
// invariants (no interior termination, no trailing run of ALL edges) and
// its own union/intersect/minimal operations, all expressed in terms of
// the underlying RangeTree set-algebra engine.
package prefixtree

import (
	"errors"

	"digitrange/dfa"
	"digitrange/rangetree"
)

// ErrNonDisjointInputs is returned by Minimal when include and exclude
// overlap; Minimal's result is undefined for overlapping inputs.
var ErrNonDisjointInputs = errors.New("prefixtree: include and exclude must be disjoint")

// PreconditionError wraps ErrNonDisjointInputs with the operation that was
// called.
type PreconditionError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return "prefixtree: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error, so errors.Is(err, ErrNonDisjointInputs)
// sees through the wrapper.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// PrefixTree wraps a RangeTree satisfying the prefix invariants. The zero
// value is the empty PrefixTree (matches nothing).
type PrefixTree struct {
	tree rangetree.RangeTree
}

func leaf() *dfa.Node {
	var edges [dfa.Digits]*dfa.Node
	return dfa.New(true, edges)
}

// Empty returns the PrefixTree matching no sequence.
func Empty() PrefixTree {
	return PrefixTree{}
}

// Identity returns the PrefixTree matching the empty sequence only (and,
// by prefix semantics, any continuation of it — i.e. everything).
func Identity() PrefixTree {
	return PrefixTree{tree: rangetree.FromNode(leaf())}
}

// IsEmpty reports whether the PrefixTree matches nothing.
func (p PrefixTree) IsEmpty() bool {
	return p.tree.IsEmpty()
}

// RangeTree exposes the underlying RangeTree, for callers (e.g. factor,
// convert) that need to walk the DFA directly.
func (p PrefixTree) RangeTree() rangetree.RangeTree {
	return p.tree
}

// From builds the PrefixTree of r: every path is trimmed to its earliest
// termination point, and any trailing run of ALL edges collapses into an
// earlier termination. Both transforms are applied in one memoized
// bottom-up pass over r's DAG: every node is visited once and its children
// are already-finished PrefixTree nodes by the time it's processed, so the
// collapse reaches its fixed point without a separate extend-merge-strip
// iteration.
func From(r rangetree.RangeTree) PrefixTree {
	memo := map[*dfa.Node]*dfa.Node{}
	return PrefixTree{tree: rangetree.FromNode(trim(r.Node(), memo))}
}

func trim(n *dfa.Node, memo map[*dfa.Node]*dfa.Node) *dfa.Node {
	if n == nil {
		return nil
	}
	if v, ok := memo[n]; ok {
		return v
	}
	if n.IsTerminal() {
		// Early termination in the source RangeTree means this prefix is
		// already complete; whatever lies beyond is discarded.
		memo[n] = leaf()
		return memo[n]
	}

	var edges [dfa.Digits]*dfa.Node
	for _, g := range n.EdgeGroups() {
		child := trim(g.Target, memo)
		for d := 0; d < dfa.Digits; d++ {
			if g.Mask&(1<<uint(d)) != 0 {
				edges[d] = child
			}
		}
	}
	// A full fan-out where every digit lands on immediate termination is a
	// trailing ALL edge; it collapses into termination one level up. The
	// check runs on the trimmed output, not the input's edge groups: distinct
	// source branches can converge on the leaf only after trimming.
	if fullFanOutToLeaf(edges) {
		memo[n] = edges[0]
		return edges[0]
	}
	result := dfa.New(false, edges)
	memo[n] = result
	return result
}

func fullFanOutToLeaf(edges [dfa.Digits]*dfa.Node) bool {
	for d := 0; d < dfa.Digits; d++ {
		if edges[d] == nil || !edges[d].IsTerminal() || edges[d].EdgeCount() != 0 {
			return false
		}
	}
	return true
}

// RetainFrom filters r to the portion reachable under a path p accepts:
// rangetree.Filter with p as the prefix operand.
func (p PrefixTree) RetainFrom(r rangetree.RangeTree) rangetree.RangeTree {
	return rangetree.Filter(p.tree, r)
}

// Union keeps the more general of two overlapping prefixes: the formula
// is intersect_rt(p1,p2) ∪ (p1 ∖ retainFrom(p2,p1)) ∪ (p2 ∖ retainFrom(p1,p2)).
// The intersection term keeps prefixes common to both inputs, which the two
// asymmetric subtractions would otherwise both remove.
func Union(p1, p2 PrefixTree) PrefixTree {
	inter := rangetree.Intersect(p1.tree, p2.tree)
	onlyP1 := rangetree.Subtract(p1.tree, rangetree.Filter(p2.tree, p1.tree))
	onlyP2 := rangetree.Subtract(p2.tree, rangetree.Filter(p1.tree, p2.tree))
	return PrefixTree{tree: rangetree.Union(rangetree.Union(inter, onlyP1), onlyP2)}
}

// Intersect keeps the more specific of two overlapping prefixes:
// retainFrom(p2,p1) ∪ retainFrom(p1,p2).
func Intersect(p1, p2 PrefixTree) PrefixTree {
	a := rangetree.Filter(p2.tree, p1.tree)
	b := rangetree.Filter(p1.tree, p2.tree)
	return PrefixTree{tree: rangetree.Union(a, b)}
}

// Minimal returns the shortest prefixes that cover every sequence in
// include and no sequence in exclude, never shorter than minLen. Returns
// ErrNonDisjointInputs if include and exclude overlap.
func Minimal(include, exclude rangetree.RangeTree, minLen int) (PrefixTree, error) {
	if !rangetree.Intersect(include, exclude).IsEmpty() {
		return PrefixTree{}, &PreconditionError{Op: "Minimal", Err: ErrNonDisjointInputs}
	}
	root := minimalNode(include.Node(), exclude.Node(), 0, minLen)
	return PrefixTree{tree: rangetree.FromNode(root)}, nil
}

// minimalNode walks include and exclude's original (non-prefix-collapsed)
// DFAs in lockstep. It stops generalizing — emitting a leaf — as soon as
// the accumulated depth satisfies minLen and no excluded sequence shares
// the path so far; otherwise it must keep descending along every digit
// include actually uses.
func minimalNode(incl, excl *dfa.Node, depth, minLen int) *dfa.Node {
	if incl == nil {
		return nil
	}
	if excl == nil && depth >= minLen {
		return leaf()
	}

	var edges [dfa.Digits]*dfa.Node
	any := false
	for d := 0; d < dfa.Digits; d++ {
		ic := edgeOf(incl, d)
		if ic == nil {
			continue
		}
		child := minimalNode(ic, edgeOf(excl, d), depth+1, minLen)
		if child != nil {
			edges[d] = child
			any = true
		}
	}
	if !any {
		// include has nothing further down this path; there is nothing
		// left to descend into, so the shortest available prefix is here.
		return leaf()
	}
	return dfa.New(false, edges)
}

func edgeOf(n *dfa.Node, d int) *dfa.Node {
	if n == nil {
		return nil
	}
	child, ok := n.Edge(d)
	if !ok {
		return nil
	}
	return child
}
