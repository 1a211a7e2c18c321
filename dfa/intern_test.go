package dfa

import (
	"runtime"
	"testing"
)

func TestInternCountNotBelowBaselineAfterGC(t *testing.T) {
	before := internedCount()

	// Build and immediately drop a node with a shape unlikely to already be
	// interned by another test in this package.
	build := func() {
		var leafEdges [Digits]*Node
		leaf := New(true, leafEdges)
		var edges [Digits]*Node
		edges[4] = leaf
		_ = New(false, edges)
	}
	build()

	runtime.GC()
	runtime.GC()

	after := internedCount()
	if after < before {
		t.Fatalf("interned count should not go negative across a GC: before=%d after=%d", before, after)
	}
}

func TestInternIsIdempotentUnderConcurrentBuild(t *testing.T) {
	var leafEdges [Digits]*Node
	leaf := New(true, leafEdges)

	var edges [Digits]*Node
	edges[0] = leaf

	done := make(chan *Node, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- New(false, edges)
		}()
	}
	first := <-done
	for i := 1; i < 8; i++ {
		if n := <-done; n != first {
			t.Fatal("concurrent New calls with identical shape returned different pointers")
		}
	}
}
