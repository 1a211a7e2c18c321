package digitrange

import (
	"digitrange/digitseq"
	"digitrange/factor"
	"digitrange/rangespec"
	"digitrange/rangetree"
)

// Set is a built digit-sequence range, the top-level handle most callers
// want: a parsed, minimal, interned RangeTree plus its canonical
// specification-text representation. Safe to share across goroutines once
// built.
type Set struct {
	tree rangetree.RangeTree
}

// Build parses each pattern (canonical RangeSpecification text, e.g.
// "12[3-5]xx") and returns the Set matching their union.
//
// Example:
//
//	set, err := digitrange.Build("12[3-5]xx", "77")
func Build(patterns ...string) (*Set, error) {
	specs := make([]rangespec.RangeSpecification, 0, len(patterns))
	for _, p := range patterns {
		spec, err := rangespec.Parse(p)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	tree, err := rangetree.From(specs)
	if err != nil {
		return nil, err
	}
	return &Set{tree: tree}, nil
}

// MustBuild is like Build but panics on error. Intended for patterns known
// to be valid at compile time.
func MustBuild(patterns ...string) *Set {
	s, err := Build(patterns...)
	if err != nil {
		panic("digitrange: Build: " + err.Error())
	}
	return s
}

// BuildFromRangeSet builds a Set matching exactly the sequences covered by
// the given (possibly multi-length) digit-sequence intervals, via the
// canonical block-decomposition algorithm.
func BuildFromRangeSet(intervals []digitseq.Interval) (*Set, error) {
	tree, err := rangetree.FromRangeSet(intervals)
	if err != nil {
		return nil, err
	}
	return &Set{tree: tree}, nil
}

// fromTree wraps an already-built RangeTree as a Set, used by Union,
// Intersect and Subtract below.
func fromTree(t rangetree.RangeTree) *Set {
	return &Set{tree: t}
}

// Tree exposes the underlying RangeTree for callers that need the
// lower-level package API (prefixtree filtering, direct factorisation).
func (s *Set) Tree() rangetree.RangeTree {
	return s.tree
}

// IsEmpty reports whether the set matches no sequence at all.
func (s *Set) IsEmpty() bool {
	return s.tree.IsEmpty()
}

// Contains reports whether d is in the set.
func (s *Set) Contains(d digitseq.DigitSequence) bool {
	return s.tree.Contains(d)
}

// Size returns the total number of distinct digit sequences in the set.
func (s *Set) Size() uint64 {
	return s.tree.Size()
}

// Union returns the set matching s's language union other's.
func (s *Set) Union(other *Set) *Set {
	return fromTree(rangetree.Union(s.tree, other.tree))
}

// Intersect returns the set matching s's language intersected with other's.
func (s *Set) Intersect(other *Set) *Set {
	return fromTree(rangetree.Intersect(s.tree, other.tree))
}

// Subtract returns the set matching s's language minus other's.
func (s *Set) Subtract(other *Set) *Set {
	return fromTree(rangetree.Subtract(s.tree, other.tree))
}

// ContainsAll reports whether every sequence in other is also in s.
func (s *Set) ContainsAll(other *Set) bool {
	return other.Subtract(s).IsEmpty()
}

// Specifications returns the sorted, disjoint list of canonical
// RangeSpecification strings whose union is exactly s's language.
func (s *Set) Specifications() ([]string, error) {
	specs, err := s.tree.AsRangeSpecifications()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = spec.String()
	}
	return out, nil
}

// RangeSet returns s's language as a sorted list of disjoint closed
// DigitSequence intervals.
func (s *Set) RangeSet() ([]digitseq.Interval, error) {
	return s.tree.AsRangeSet()
}

// Lengths returns the ascending set of sequence lengths s accepts.
func (s *Set) Lengths() []int {
	return s.tree.Lengths()
}

// Factorize splits s into an ordered list of simpler Sets whose union
// recovers s's language, longest length first, using the given merge
// strategy. Each factor is ready to hand to convert.ToGraph
// and flatten.Flatten individually, which is how downstream regex printing
// keeps per-pattern complexity down.
func (s *Set) Factorize(strategy factor.Strategy) ([]*Set, error) {
	trees, err := factor.Factorize(s.tree, strategy)
	if err != nil {
		return nil, err
	}
	out := make([]*Set, len(trees))
	for i, t := range trees {
		out[i] = fromTree(t)
	}
	return out, nil
}

// String renders s via its canonical specification list, space separated.
func (s *Set) String() string {
	return s.tree.String()
}
