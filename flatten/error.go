package flatten

import "errors"

// ErrInternalInconsistency is the sentinel wrapped when the NFA being
// flattened does not have the shape Flatten requires — a single source, a
// single sink, no dangling TERMINAL out-edges, no dead end short of
// TERMINAL — which should never happen for a graph produced by
// digitrange/convert.
var ErrInternalInconsistency = errors.New("flatten: internal inconsistency")
