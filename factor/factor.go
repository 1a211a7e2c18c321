// Package factor splits a multi-length RangeTree into an ordered list of
// simpler sub-trees whose union recovers the original language, so that a
// downstream regex printer can render each one on its own.
package factor

import (
	"fmt"
	"sort"

	"digitrange/dfa"
	"digitrange/rangespec"
	"digitrange/rangetree"
)

// Strategy selects how the merge step decides whether a candidate edge can
// be folded into an earlier factor.
type Strategy int

const (
	// RequireEqualEdges only merges a candidate edge into an existing
	// factor edge when the two cover exactly the same digits.
	RequireEqualEdges Strategy = iota
	// AllowEdgeSplitting merges whenever the existing factor edge's digits
	// are a subset of the candidate edge's; any candidate digits beyond
	// that subset are added to the factor as a new, separate branch.
	AllowEdgeSplitting
)

// String renders the strategy's constant-style name.
func (s Strategy) String() string {
	switch s {
	case RequireEqualEdges:
		return "REQUIRE_EQUAL_EDGES"
	case AllowEdgeSplitting:
		return "ALLOW_EDGE_SPLITTING"
	default:
		return "UNKNOWN_STRATEGY"
	}
}

// Factorize splits t into an ordered list of RangeTrees whose union equals
// t's language: the naive per-length split, longest first, with as much of
// each shorter factor folded into the longer ones ahead of it as strategy
// allows. No returned factor is empty. Returns an error for a strategy other
// than RequireEqualEdges or AllowEdgeSplitting.
func Factorize(t rangetree.RangeTree, strategy Strategy) ([]rangetree.RangeTree, error) {
	if strategy != RequireEqualEdges && strategy != AllowEdgeSplitting {
		return nil, fmt.Errorf("factor: unknown strategy %d", int(strategy))
	}
	if t.IsEmpty() {
		return nil, nil
	}
	specs, err := t.AsRangeSpecifications()
	if err != nil {
		return nil, err
	}

	byLength := map[int][]rangespec.RangeSpecification{}
	for _, s := range specs {
		byLength[len(s.Masks())] = append(byLength[len(s.Masks())], s)
	}
	lengths := make([]int, 0, len(byLength))
	for l := range byLength {
		lengths = append(lengths, l)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))

	factors := make([]*dfa.Node, len(lengths))
	for i, l := range lengths {
		tree, err := rangetree.From(byLength[l])
		if err != nil {
			return nil, err
		}
		factors[i] = tree.Node()
	}

	for i := 1; i < len(factors); i++ {
		candidate := factors[i]
		for j := 0; j < i && candidate != nil; j++ {
			merged, remainder := mergeNode(factors[j], candidate, strategy)
			factors[j] = merged
			candidate = remainder
		}
		factors[i] = candidate
	}

	out := make([]rangetree.RangeTree, 0, len(factors))
	for _, f := range factors {
		if f != nil {
			out = append(out, rangetree.FromNode(f))
		}
	}
	return out, nil
}
