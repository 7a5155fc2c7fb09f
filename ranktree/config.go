package ranktree

import (
	"fmt"
	"math"
)

// MaxDimensions is the number of weight dimensions a tree can aggregate.
const MaxDimensions = 3

// DefaultAlpha is the balance factor for trees of more than a few hundred
// items. A tree which held at most n items addresses no slot beyond
// 2^(HeightBound(alpha, n)+2). For DefaultAlpha this stays below 4n², for
// alpha 0.75 and n = 1000 it is 2^26.
const DefaultAlpha = 0.6

// Dimension measures an item along one axis. Weights are aggregated over
// subtrees and drive Seek and PrefixSum.
//
// Measure must be a pure function of the item: weights are cached in the tree
// and only refreshed when an item is inserted, replaced or moved.
type Dimension[T any] interface {
	Measure(item T) int
}

// DimensionFunc adapts a plain function to a Dimension.
type DimensionFunc[T any] func(item T) int

// Measure calls f(item).
func (f DimensionFunc[T]) Measure(item T) int {
	return f(item)
}

// Config configures a rank tree.
type Config[T any] struct {
	// Alpha is the balance factor, 0.5 < Alpha < 1.
	Alpha float64
	// Compare orders items for Insert, Search and Delete. It may be nil for
	// trees used as pure sequences.
	Compare func(a, b T) int
	// Dimensions lists at most MaxDimensions weights to aggregate.
	Dimensions []Dimension[T]
}

func (cfg Config[T]) validate() error {
	if !(cfg.Alpha > 0.5 && cfg.Alpha < 1) {
		return fmt.Errorf("%w: alpha %g not in (0.5, 1)", ErrInvalidConfig, cfg.Alpha)
	}
	if len(cfg.Dimensions) > MaxDimensions {
		return fmt.Errorf("%w: %d dimensions, at most %d supported",
			ErrInvalidConfig, len(cfg.Dimensions), MaxDimensions)
	}
	for i, dim := range cfg.Dimensions {
		if dim == nil {
			return fmt.Errorf("%w: dimension %d is nil", ErrInvalidConfig, i)
		}
	}
	return nil
}

// HeightBound returns h_alpha(n) = floor(log_{1/alpha}(n)), the maximum
// height tolerated for a tree with n items.
func HeightBound(alpha float64, n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Floor(math.Log(float64(n)) / math.Log(1/alpha)))
}
