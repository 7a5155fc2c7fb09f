package ranktree

import (
	"cmp"
	"fmt"
	"math/bits"
)

// slot is one cell of the implicit tree array.
type slot[T any] struct {
	item     T
	occupied bool
	count    int                // number of items in the subtree rooted here
	sums     [MaxDimensions]int // aggregated weights of the subtree
}

// Tree is a scapegoat tree over an implicit slot array.
//
// A Tree is not safe for concurrent use.
type Tree[T any] struct {
	cfg     Config[T]
	slots   []slot[T] // slots[0] is unused
	size    int
	maxSize int // high-water mark of size since the last full rebuild
}

// New creates an empty tree with validated configuration.
func New[T any](cfg Config[T]) (*Tree[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[T]{cfg: cfg}, nil
}

// NewOrdered creates an empty sorted-set tree for an ordered item type.
//
// The slot array grows with 2^height, not with the number of items. Sorted
// input drives trees to their height bound, so alpha should not exceed
// DefaultAlpha for trees beyond a few hundred items.
func NewOrdered[T cmp.Ordered](alpha float64) (*Tree[T], error) {
	return New(Config[T]{Alpha: alpha, Compare: cmp.Compare[T]})
}

// NewSequence creates an empty tree to be used as a positional sequence. The
// remarks on alpha for NewOrdered apply.
func NewSequence[T any](alpha float64, dims ...Dimension[T]) (*Tree[T], error) {
	return New(Config[T]{Alpha: alpha, Dimensions: dims})
}

// Config returns a copy of the tree configuration.
func (t *Tree[T]) Config() Config[T] {
	return t.cfg
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// IsEmpty reports whether the tree has no items.
func (t *Tree[T]) IsEmpty() bool {
	return t.Len() == 0
}

// MaxSize returns the high-water mark of Len since the last full rebuild.
func (t *Tree[T]) MaxSize() int {
	return t.maxSize
}

// Insert adds item in sorted position. It requires Config.Compare.
//
// An item comparing equal to a stored one is rejected with ErrDuplicate and
// the tree is left unchanged.
func (t *Tree[T]) Insert(item T) error {
	if t.cfg.Compare == nil {
		return ErrUnordered
	}
	i := 1
	for t.has(i) {
		c := t.cfg.Compare(item, t.slots[i].item)
		switch {
		case c == 0:
			return ErrDuplicate
		case c < 0:
			i = 2 * i
		default:
			i = 2*i + 1
		}
	}
	t.place(i, item)
	return nil
}

// InsertAt inserts item so that it will be found at in-order position pos.
// Items at positions ≥ pos shift up by one.
//
// pos must be in [0, Len()]; otherwise ErrIndexOutOfBounds is returned and
// the tree is left unchanged.
func (t *Tree[T]) InsertAt(pos int, item T) error {
	if pos < 0 || pos > t.size {
		return fmt.Errorf("%w: insert at %d, size %d", ErrIndexOutOfBounds, pos, t.size)
	}
	i := 1
	for t.has(i) {
		left := t.countAt(2 * i)
		if pos <= left {
			i = 2 * i
		} else {
			pos -= left + 1
			i = 2*i + 1
		}
	}
	t.place(i, item)
	return nil
}

// ReplaceAt overwrites the item at position pos and refreshes the weights on
// its path. It reports false if pos is out of range.
//
// For sorted trees the caller is responsible for keeping the order intact.
func (t *Tree[T]) ReplaceAt(pos int, item T) bool {
	i := t.locate(pos)
	if i == 0 {
		return false
	}
	t.slots[i].item = item
	t.refreshPath(i)
	return true
}

// Delete removes the item comparing equal to item and returns the stored
// item. It reports false, without mutation, if no such item exists.
func (t *Tree[T]) Delete(item T) (T, bool) {
	if t.cfg.Compare == nil {
		var zero T
		return zero, false
	}
	return t.DeleteBy(func(x T) int { return t.cfg.Compare(item, x) })
}

// DeleteBy removes the item located by probe (see SearchBy).
func (t *Tree[T]) DeleteBy(probe func(item T) int) (T, bool) {
	return t.removeSlot(t.find(probe))
}

// DeleteAt removes the item at position pos.
func (t *Tree[T]) DeleteAt(pos int) (T, bool) {
	return t.removeSlot(t.locate(pos))
}

// --- Slot helpers ----------------------------------------------------------

func (t *Tree[T]) has(i int) bool {
	return i < len(t.slots) && t.slots[i].occupied
}

func (t *Tree[T]) countAt(i int) int {
	if !t.has(i) {
		return 0
	}
	return t.slots[i].count
}

func (t *Tree[T]) sumAt(dim, i int) int {
	if !t.has(i) {
		return 0
	}
	return t.slots[i].sums[dim]
}

func depth(i int) int {
	return bits.Len(uint(i)) - 1
}

// grow makes slot i addressable.
func (t *Tree[T]) grow(i int) {
	if i < len(t.slots) {
		return
	}
	if i < cap(t.slots) {
		old := len(t.slots)
		t.slots = t.slots[:i+1]
		clear(t.slots[old:])
		return
	}
	slots := make([]slot[T], i+1, max(2*cap(t.slots), i+1))
	copy(slots, t.slots)
	t.slots = slots
}

// refresh recomputes count and weights of slot i from its item and children.
func (t *Tree[T]) refresh(i int) {
	s := &t.slots[i]
	s.count = 1 + t.countAt(2*i) + t.countAt(2*i+1)
	for d, dim := range t.cfg.Dimensions {
		s.sums[d] = dim.Measure(s.item) + t.sumAt(d, 2*i) + t.sumAt(d, 2*i+1)
	}
}

// refreshPath refreshes slot i and all of its ancestors.
func (t *Tree[T]) refreshPath(i int) {
	for ; i >= 1; i >>= 1 {
		if t.has(i) {
			t.refresh(i)
		}
	}
}

// locate returns the slot holding position pos, or 0.
func (t *Tree[T]) locate(pos int) int {
	if pos < 0 || pos >= t.size {
		return 0
	}
	i := 1
	for t.has(i) {
		left := t.countAt(2 * i)
		switch {
		case pos < left:
			i = 2 * i
		case pos == left:
			return i
		default:
			pos -= left + 1
			i = 2*i + 1
		}
	}
	return 0
}

// find returns the slot located by probe, or 0.
func (t *Tree[T]) find(probe func(item T) int) int {
	i := 1
	for t.has(i) {
		c := probe(t.slots[i].item)
		switch {
		case c == 0:
			return i
		case c < 0:
			i = 2 * i
		default:
			i = 2*i + 1
		}
	}
	return 0
}

// --- Insertion and rebalancing ---------------------------------------------

// place stores item in the empty slot i and rebalances if i is too deep.
func (t *Tree[T]) place(i int, item T) {
	t.grow(i)
	t.slots[i] = slot[T]{item: item, occupied: true}
	t.size++
	t.maxSize = max(t.maxSize, t.size)
	t.refreshPath(i)
	if depth(i) > HeightBound(t.cfg.Alpha, t.maxSize) {
		t.rebalanceFrom(i)
	}
}

// rebalanceFrom walks from the too-deep slot i towards the root and rebuilds
// the subtree of the first ancestor whose height exceeds h_alpha of its size.
func (t *Tree[T]) rebalanceFrom(i int) {
	height := 0
	for x := i; x > 1; x >>= 1 {
		p := x >> 1
		height++
		if height > HeightBound(t.cfg.Alpha, t.countAt(p)) {
			if p == 1 {
				t.rebuildAll()
			} else {
				t.rebuild(p)
			}
			return
		}
	}
	assert(false, "ranktree: no scapegoat found on path to root")
}

// rebuild flattens the subtree at slot r and rebuilds it perfectly balanced.
// Ancestors keep their counts and weights, as the set of items is unchanged.
func (t *Tree[T]) rebuild(r int) {
	items := t.collect(r, make([]T, 0, t.countAt(r)))
	tracer().Debugf("ranktree: rebuild subtree at slot %d with %d items", r, len(items))
	t.clearSubtree(r)
	t.build(r, items)
}

// rebuildAll rebuilds the whole tree into a fresh slot array and resets
// max_size.
func (t *Tree[T]) rebuildAll() {
	items := t.collect(1, make([]T, 0, t.size))
	tracer().Debugf("ranktree: full rebuild with %d items (max size was %d)", len(items), t.maxSize)
	t.slots = nil
	t.build(1, items)
	t.maxSize = t.size
}

func (t *Tree[T]) collect(i int, items []T) []T {
	if !t.has(i) {
		return items
	}
	items = t.collect(2*i, items)
	items = append(items, t.slots[i].item)
	return t.collect(2*i+1, items)
}

func (t *Tree[T]) clearSubtree(i int) {
	if !t.has(i) {
		return
	}
	t.clearSubtree(2 * i)
	t.clearSubtree(2*i + 1)
	t.slots[i] = slot[T]{}
}

// build places the median of items at slot i and recurses on both halves.
func (t *Tree[T]) build(i int, items []T) {
	if len(items) == 0 {
		return
	}
	mid := (len(items) - 1) / 2
	t.grow(i)
	t.slots[i] = slot[T]{item: items[mid], occupied: true}
	t.build(2*i, items[:mid])
	t.build(2*i+1, items[mid+1:])
	t.refresh(i)
}

// --- Deletion --------------------------------------------------------------

func (t *Tree[T]) removeSlot(i int) (T, bool) {
	var zero T
	if i == 0 || !t.has(i) {
		return zero, false
	}
	removed := t.slots[i].item
	t.remove(i)
	if float64(t.size) < t.cfg.Alpha*float64(t.maxSize) {
		t.rebuildAll()
	}
	return removed, true
}

// remove deletes the item in slot i. Items with children are replaced by an
// in-order neighbour, which in turn is removed from its own slot, until a
// slot without children can be cleared. All slots touched lie on one path,
// which is refreshed afterwards.
//
// With two children, even slots promote their predecessor and odd slots their
// successor, spreading the load over both sides.
func (t *Tree[T]) remove(i int) {
	for {
		l, r := t.has(2*i), t.has(2*i+1)
		var next int
		switch {
		case !l && !r:
			t.slots[i] = slot[T]{}
			t.size--
			t.refreshPath(i >> 1)
			return
		case l && (!r || i%2 == 0):
			next = t.maxSlot(2 * i)
		default:
			next = t.minSlot(2*i + 1)
		}
		t.slots[i].item = t.slots[next].item
		i = next
	}
}

func (t *Tree[T]) minSlot(i int) int {
	for t.has(2 * i) {
		i = 2 * i
	}
	return i
}

func (t *Tree[T]) maxSlot(i int) int {
	for t.has(2*i + 1) {
		i = 2*i + 1
	}
	return i
}
