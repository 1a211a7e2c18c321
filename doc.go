// Package digitrange implements the digit-sequence range engine that
// powers libphonenumber's metadata tooling: representing arbitrary sets of
// fixed-width decimal digit sequences (phone-number ranges), composing them
// with set-algebra, filtering them by prefix, factoring them to reduce
// downstream regex complexity, and converting them into a compact
// NFA/composite-edge form via a DFA->NFA->flattened-tree pipeline.
//
// The package layout follows the stages of that pipeline:
//
//	digitseq    fixed-length decimal strings with a total order
//	rangespec   per-position bitmask specifications + canonical decomposition
//	dfa         minimal interned DFA node/edge primitives
//	rangetree   the top-level DFA with union/intersect/subtract/contains
//	prefixtree  a DFA shaped for "starts with any of these prefixes"
//	factor      splitting a multi-length tree into simpler sub-trees
//	graph       the NFA value-graph and composite edge expression tree
//	convert     DFA -> NFA conversion
//	flatten     NFA -> single composite edge
//	lengths     the ancillary "4,7-9,11" length-set parser
//
// Basic usage:
//
//	set, err := digitrange.Build("12[3-5]xx", "77")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	set.Contains(digitseq.MustNew("12377"))  // true: matches 12[3-5]xx
//	set.Contains(digitseq.MustNew("12677"))  // false: 6 is outside [3-5]
//	specs, _ := set.Specifications()         // ["12[3-5]xx", "77"]
//
// Building a regex-ready expression tree:
//
//	factors, err := set.Factorize(factor.AllowEdgeSplitting)
//	for _, f := range factors {
//	    g := convert.ToGraph(f.Tree())
//	    edge, err := flatten.Flatten(g)
//	    // edge is handed to a downstream (out-of-scope) regex printer.
//	}
package digitrange
