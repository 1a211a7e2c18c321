package flatten

import (
	"testing"

	"digitrange/convert"
	"digitrange/graph"
	"digitrange/rangespec"
	"digitrange/rangetree"
)

func mustTree(t *testing.T, strs ...string) rangetree.RangeTree {
	t.Helper()
	specs := make([]rangespec.RangeSpecification, len(strs))
	for i, s := range strs {
		specs[i] = rangespec.MustParse(s)
	}
	tree, err := rangetree.From(specs)
	if err != nil {
		t.Fatalf("rangetree.From(%v): %v", strs, err)
	}
	return tree
}

func TestFlattenSingleChain(t *testing.T) {
	tree := mustTree(t, "12")
	g := convert.ToGraph(tree)
	edge, err := Flatten(g)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := "concat(mask(0x2), mask(0x4))"
	if got := edge.String(); got != want {
		t.Fatalf("Flatten(%q) = %q, want %q", "12", got, want)
	}
}

// {"12","13","14x"} flattens to concat(1, disjunction({2,3}, concat(4, ALL))).
func TestFlattenReconvergingBranches(t *testing.T) {
	tree := mustTree(t, "12", "13", "14x")
	g := convert.ToGraph(tree)
	edge, err := Flatten(g)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := "concat(mask(0x2), disjunction(mask(0xc), concat(mask(0x10), mask(0x3ff))))"
	if got := edge.String(); got != want {
		t.Fatalf("Flatten = %q, want %q", got, want)
	}
}

func TestFlattenEarlyTerminationYieldsOptional(t *testing.T) {
	tree := mustTree(t, "1", "12")
	g := convert.ToGraph(tree)
	edge, err := Flatten(g)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := "concat(mask(0x2), optional(mask(0x4)))"
	if got := edge.String(); got != want {
		t.Fatalf("Flatten = %q, want %q", got, want)
	}
}

func TestFlattenEmptySequenceMatch(t *testing.T) {
	empty, err := rangespec.New(nil)
	if err != nil {
		t.Fatalf("rangespec.New(nil): %v", err)
	}
	tree, err := rangetree.From([]rangespec.RangeSpecification{empty})
	if err != nil {
		t.Fatalf("rangetree.From: %v", err)
	}
	g := convert.ToGraph(tree)
	edge, err := Flatten(g)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !edge.IsEpsilon() {
		t.Fatalf("Flatten of the empty-sequence-only tree = %v, want epsilon", edge)
	}
}

func TestFlattenRejectsGraphWithDeadEnd(t *testing.T) {
	g := graph.New()
	stray := g.AddNode()
	g.AddEdge(g.Initial, stray, graph.SimpleEdge{Mask: 0x1})
	// stray has no outgoing edges and is not Terminal: a malformed graph.
	if _, err := Flatten(g); err == nil {
		t.Fatal("expected an error flattening a graph with a non-TERMINAL dead end")
	}
}

func TestFlattenDisjointBranchesOfEqualLength(t *testing.T) {
	tree := mustTree(t, "[1-2]3")
	g := convert.ToGraph(tree)
	edge, err := Flatten(g)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	want := "concat(mask(0x6), mask(0x8))"
	if got := edge.String(); got != want {
		t.Fatalf("Flatten = %q, want %q", got, want)
	}
}
