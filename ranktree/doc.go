/*
Package ranktree provides an order-statistics container built as a scapegoat
tree over an implicit slot array.

The tree may be used in two ways:

  - as a sorted set, with Insert, Search and Delete guided by a comparison
    function configured with Config.Compare,
  - as a pure sequence, with InsertAt, Get and DeleteAt addressing items by
    their 0-based in-order position. No ordering on the item type is needed.

Items live in slots 1..N of a growable array; slot 0 is unused and the
children of slot i are 2i and 2i+1. Every occupied slot carries the item count
of its subtree and the aggregated weights of up to MaxDimensions configured
dimensions, so positional access and weighted seeks are O(height).

Balancing follows Galperin and Rivest: the tree is never rotated. If an
insert lands deeper than h_alpha(max_size) = floor(log_{1/alpha}(max_size)),
the lowest ancestor which is too high for its own size is flattened and
rebuilt perfectly balanced. If deletes shrink the tree below
alpha·max_size, the whole tree is rebuilt. Both yield amortized O(log n)
operations.

Because the layout is implicit, the array length grows with 2^height rather
than with the item count. Alpha close to 0.5 keeps trees shallow and arrays
small, at the cost of more frequent rebuilds.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package ranktree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
