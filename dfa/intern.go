package dfa

import (
	"runtime"
	"sync"
	"weak"

	"digitrange/internal/conv"
)

// nodeKey is the full structural identity of a Node: its terminal flag and
// its edge targets. Edge targets are themselves always already-interned
// canonical pointers, so pointer equality of the array elements is exactly
// structural equality of the sub-trees they root. Go allows an array of
// comparable elements as a map key directly, so no hashing is needed.
type nodeKey struct {
	terminal bool
	edges    [Digits]*Node
}

// table is the process-wide canonical map, weakly held: an entry survives
// only as long as something else keeps its Node reachable. Once the Node
// is collected, its cleanup removes the stale entry instead of leaking the
// map slot forever. Nothing bounds how many distinct nodes a caller may
// build over a process lifetime, so a bounded cache would not do here.
var (
	tableMu sync.Mutex
	table   = make(map[nodeKey]weak.Pointer[Node])
)

func intern(terminal bool, edges [Digits]*Node) *Node {
	key := nodeKey{terminal: terminal, edges: edges}

	tableMu.Lock()
	defer tableMu.Unlock()

	if wp, ok := table[key]; ok {
		if n := wp.Value(); n != nil {
			return n
		}
		delete(table, key)
	}

	n := buildNode(terminal, edges)
	table[key] = weak.Make(n)
	runtime.AddCleanup(n, reap, key)
	return n
}

func reap(key nodeKey) {
	tableMu.Lock()
	defer tableMu.Unlock()
	if wp, ok := table[key]; ok && wp.Value() == nil {
		delete(table, key)
	}
}

// buildNode packs the dense [10]*Node edge array into the children/jump
// representation Node actually stores.
func buildNode(terminal bool, edges [Digits]*Node) *Node {
	n := &Node{terminal: terminal}
	seen := make(map[*Node]int, Digits)
	var jump uint64
	for d := 0; d < Digits; d++ {
		child := edges[d]
		if child == nil {
			jump |= uint64(noEdge) << uint(d*4)
			continue
		}
		idx, ok := seen[child]
		if !ok {
			idx = int(conv.IntToUint8(len(n.children)))
			n.children = append(n.children, child)
			seen[child] = idx
		}
		jump |= uint64(idx) << uint(d*4)
	}
	n.jump = jump
	return n
}

// internedCount reports the number of live entries in the canonical table.
// Exposed for tests; not part of the public API surface of the package.
func internedCount() int {
	tableMu.Lock()
	defer tableMu.Unlock()
	return len(table)
}
