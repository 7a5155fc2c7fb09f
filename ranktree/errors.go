package ranktree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("ranktree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("ranktree: index out of bounds")
	// ErrDuplicate signals an ordered insert of an item comparing equal to a
	// stored one.
	ErrDuplicate = errors.New("ranktree: duplicate item")
	// ErrUnordered signals an ordered operation on a tree without Compare.
	ErrUnordered = errors.New("ranktree: tree has no ordering")
	// ErrCorrupted is reported by Check for violated structural invariants.
	ErrCorrupted = errors.New("ranktree: invariant violated")
)
