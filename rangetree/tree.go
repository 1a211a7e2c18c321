// Package rangetree implements RangeTree: an interned minimal DFA over
// DigitSequence, built from RangeSpecifications, with the set-algebra
// engine (union/intersect/subtract) that composes two minimal DFAs into a
// new minimal DFA in a single traversal.
package rangetree

import (
	"errors"
	"fmt"
	"sort"

	"digitrange/dfa"
	"digitrange/digitseq"
	"digitrange/rangespec"
)

// ErrEmptyTree is returned by operations that have no defined result on an
// empty tree, such as First and Sample.
var ErrEmptyTree = errors.New("rangetree: operation undefined on an empty tree")

// RangeTree is either empty (matches no sequence, not even the empty one)
// or wraps an interned dfa.Node root. The zero value is the empty tree.
type RangeTree struct {
	root *dfa.Node
}

// terminalLeaf is the canonical TERMINAL node: accepting, zero edges. Every
// chain the package builds bottoms out here, seeding the intern table.
func terminalLeaf() *dfa.Node {
	var edges [dfa.Digits]*dfa.Node
	return dfa.New(true, edges)
}

// FromNode wraps an already-interned dfa.Node as a RangeTree. A nil node
// denotes the empty tree. Panics if n is non-nil but not interned: dfa.New
// is the only exported constructor and it always interns, so a caller can
// only trigger this by holding a *Node from outside package dfa's own
// invariants, a programming error rather than recoverable input.
func FromNode(n *dfa.Node) RangeTree {
	if n != nil && !dfa.IsInterned(n) {
		panic(&PreconditionError{Op: "FromNode", Err: dfa.ErrNotInterned})
	}
	return RangeTree{root: n}
}

// Node exposes the underlying interned root, for the factor/convert
// packages that walk the DFA directly. Returns nil for an empty tree.
func (t RangeTree) Node() *dfa.Node {
	return t.root
}

// IsEmpty reports whether the tree matches no sequence at all.
func (t RangeTree) IsEmpty() bool {
	return t.root == nil
}

// From builds a RangeTree matching the union of the given specifications.
func From(specs []rangespec.RangeSpecification) (RangeTree, error) {
	var root *dfa.Node
	for _, spec := range specs {
		chain := buildChain(spec.Masks())
		root = unionNodes(root, chain)
	}
	return RangeTree{root: root}, nil
}

// FromRangeSet builds a RangeTree matching exactly the sequences in the
// given set of (possibly multi-length, possibly overlapping) intervals,
// via canonical block decomposition.
func FromRangeSet(intervals []digitseq.Interval) (RangeTree, error) {
	specs, err := rangespec.DecomposeRangeSet(intervals)
	if err != nil {
		return RangeTree{}, err
	}
	return From(specs)
}

// buildChain builds the single linear chain of nodes terminating in
// TERMINAL that accepts exactly the sequences masks describes. A chain is
// trivially minimal, and unioning chains preserves minimality, so no
// separate minimisation pass exists anywhere in the package.
func buildChain(masks []rangespec.Mask) *dfa.Node {
	if len(masks) == 0 {
		return terminalLeaf()
	}
	child := buildChain(masks[1:])
	var edges [dfa.Digits]*dfa.Node
	m := masks[0]
	for d := 0; d < dfa.Digits; d++ {
		if m&(1<<uint(d)) != 0 {
			edges[d] = child
		}
	}
	return dfa.New(false, edges)
}

// Contains reports whether d is accepted by the tree.
func (t RangeTree) Contains(d digitseq.DigitSequence) bool {
	n := t.root
	for i := 0; i < d.Length(); i++ {
		if n == nil {
			return false
		}
		child, ok := n.Edge(d.Digit(i))
		if !ok {
			return false
		}
		n = child
	}
	return n != nil && n.IsTerminal()
}

// Lengths returns the ascending, deduplicated set of lengths the tree
// accepts sequences at.
func (t RangeTree) Lengths() []int {
	memo := map[*dfa.Node]uint32{}
	mask := lengthMask(t.root, memo)
	var out []int
	for l := 0; mask != 0; l++ {
		if mask&1 != 0 {
			out = append(out, l)
		}
		mask >>= 1
	}
	return out
}

// lengthMask computes the per-node termination-depth bit-set: bit i set iff
// some path from n terminates after exactly i more digits, bit 0 meaning n
// itself terminates. Memoized over the shared DAG so reconverging branches
// cost one visit each.
func lengthMask(n *dfa.Node, memo map[*dfa.Node]uint32) uint32 {
	if n == nil {
		return 0
	}
	if v, ok := memo[n]; ok {
		return v
	}
	var mask uint32
	if n.IsTerminal() {
		mask = 1
	}
	for _, g := range n.EdgeGroups() {
		mask |= lengthMask(g.Target, memo) << 1
	}
	memo[n] = mask
	return mask
}

// Size returns the total number of distinct digit sequences accepted
// across every length.
func (t RangeTree) Size() uint64 {
	memo := map[*dfa.Node]uint64{}
	return matchCount(t.root, memo)
}

func matchCount(n *dfa.Node, memo map[*dfa.Node]uint64) uint64 {
	if n == nil {
		return 0
	}
	if v, ok := memo[n]; ok {
		return v
	}
	var count uint64
	if n.IsTerminal() {
		count++
	}
	for _, g := range n.EdgeGroups() {
		count += uint64(popcountMask(g.Mask)) * matchCount(g.Target, memo)
	}
	memo[n] = count
	return count
}

func popcountMask(m uint16) int {
	count := 0
	for m != 0 {
		m &= m - 1
		count++
	}
	return count
}

// First returns the smallest accepted DigitSequence, under DigitSequence's
// own (length, then lexicographic) order. Returns ErrEmptyTree if the tree
// is empty. Edges are stored ordered by lowest set bit specifically so
// that, once the shortest accepting depth is known, picking it out is a
// linear descent.
func (t RangeTree) First() (digitseq.DigitSequence, error) {
	if t.IsEmpty() {
		return digitseq.DigitSequence{}, &PreconditionError{Op: "First", Err: ErrEmptyTree}
	}
	memo := map[*dfa.Node]int{}
	remaining, ok := minAcceptDepth(t.root, memo)
	if !ok {
		return digitseq.DigitSequence{}, &PreconditionError{Op: "First", Err: ErrEmptyTree}
	}
	var digits []byte
	n := t.root
	for remaining > 0 {
		advanced := false
		for _, g := range n.EdgeGroups() {
			d, ok := minAcceptDepth(g.Target, memo)
			if ok && d == remaining-1 {
				digits = append(digits, byte('0'+lowestSetBit(g.Mask)))
				n = g.Target
				remaining--
				advanced = true
				break
			}
		}
		if !advanced {
			return digitseq.DigitSequence{}, fmt.Errorf("%w: finding first()", ErrInternalInconsistency)
		}
	}
	return digitseq.New(string(digits))
}

// minAcceptDepth returns the shortest distance from n to a terminal node,
// or false if n accepts nothing.
func minAcceptDepth(n *dfa.Node, memo map[*dfa.Node]int) (int, bool) {
	if n == nil {
		return 0, false
	}
	if v, ok := memo[n]; ok {
		return v, v >= 0
	}
	if n.IsTerminal() {
		memo[n] = 0
		return 0, true
	}
	best := -1
	for _, g := range n.EdgeGroups() {
		if d, ok := minAcceptDepth(g.Target, memo); ok && (best == -1 || d+1 < best) {
			best = d + 1
		}
	}
	memo[n] = best
	return best, best >= 0
}

func lowestSetBit(m uint16) int {
	for d := 0; d < dfa.Digits; d++ {
		if m&(1<<uint(d)) != 0 {
			return d
		}
	}
	return -1
}

// Sample returns the i'th accepted sequence (0-indexed) in the order the
// tree's edges are walked: at each node its own termination first, then its
// edge groups by ascending lowest digit, the digits within a group
// ascending, depth first. This is a bijection between 0..Size()-1 and the
// tree's language; it is not DigitSequence's (length, then lexicographic)
// order.
func (t RangeTree) Sample(i uint64) (digitseq.DigitSequence, error) {
	if t.IsEmpty() {
		return digitseq.DigitSequence{}, &PreconditionError{Op: "Sample", Err: ErrEmptyTree}
	}
	memo := map[*dfa.Node]uint64{}
	size := matchCount(t.root, memo)
	if i >= size {
		return digitseq.DigitSequence{}, &PreconditionError{
			Op:  "Sample",
			Err: fmt.Errorf("sample index %d out of range for size %d", i, size),
		}
	}
	digits, err := sampleNode(t.root, i, memo)
	if err != nil {
		return digitseq.DigitSequence{}, err
	}
	return digitseq.New(digits)
}

func sampleNode(n *dfa.Node, i uint64, memo map[*dfa.Node]uint64) (string, error) {
	if n.IsTerminal() {
		if i == 0 {
			return "", nil
		}
		i--
	}
	for _, g := range n.EdgeGroups() {
		childCount := matchCount(g.Target, memo)
		groupSize := uint64(popcountMask(g.Mask)) * childCount
		if i < groupSize {
			digitOffset := i / childCount
			childIndex := i % childCount
			digit := nthSetBit(g.Mask, int(digitOffset))
			rest, err := sampleNode(g.Target, childIndex, memo)
			if err != nil {
				return "", err
			}
			return string([]byte{byte('0' + digit)}) + rest, nil
		}
		i -= groupSize
	}
	return "", fmt.Errorf("%w: sampling index", ErrInternalInconsistency)
}

func nthSetBit(m uint16, k int) int {
	for d := 0; d < dfa.Digits; d++ {
		if m&(1<<uint(d)) != 0 {
			if k == 0 {
				return d
			}
			k--
		}
	}
	return -1
}

// AsRangeSpecifications decomposes the tree into a sorted, disjoint list of
// RangeSpecifications whose union is exactly the tree's language. Sequences
// of different lengths (reachable via early termination) each contribute
// their own specification.
func (t RangeTree) AsRangeSpecifications() ([]rangespec.RangeSpecification, error) {
	specs, err := specsOf(t.root)
	if err != nil {
		return nil, err
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Min().Less(specs[j].Min())
	})
	return specs, nil
}

func specsOf(n *dfa.Node) ([]rangespec.RangeSpecification, error) {
	if n == nil {
		return nil, nil
	}
	var out []rangespec.RangeSpecification
	if n.IsTerminal() {
		empty, err := rangespec.New(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, empty)
	}
	for _, g := range n.EdgeGroups() {
		m := rangespec.Mask(g.Mask)
		childSpecs, err := specsOf(g.Target)
		if err != nil {
			return nil, err
		}
		for _, cs := range childSpecs {
			prefixed, err := prependMask(m, cs)
			if err != nil {
				return nil, err
			}
			out = append(out, prefixed)
		}
	}
	return out, nil
}

func prependMask(m rangespec.Mask, spec rangespec.RangeSpecification) (rangespec.RangeSpecification, error) {
	masks := append([]rangespec.Mask{m}, spec.Masks()...)
	return rangespec.New(masks)
}

// String renders the tree via its canonical specification list, space
// separated, mostly useful for debugging and tests.
func (t RangeTree) String() string {
	specs, err := t.AsRangeSpecifications()
	if err != nil {
		return fmt.Sprintf("<invalid range tree: %v>", err)
	}
	strs := make([]string, len(specs))
	for i, s := range specs {
		strs[i] = s.String()
	}
	out := ""
	for i, s := range strs {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}

// AsRangeSet returns the tree's language as a sorted list of disjoint
// closed DigitSequence intervals.
func (t RangeTree) AsRangeSet() ([]digitseq.Interval, error) {
	specs, err := t.AsRangeSpecifications()
	if err != nil {
		return nil, err
	}
	var out []digitseq.Interval
	for _, s := range specs {
		out = append(out, s.AsRanges()...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lo.Length() != out[j].Lo.Length() {
			return out[i].Lo.Length() < out[j].Lo.Length()
		}
		return out[i].Lo.Less(out[j].Lo)
	})
	return out, nil
}
