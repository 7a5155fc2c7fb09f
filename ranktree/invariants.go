package ranktree

import "fmt"

// Height returns the number of edges on the longest path from the root to an
// item. An empty tree has height -1.
//
// Slot indices grow level by level, so the highest occupied slot is on the
// deepest level.
func (t *Tree[T]) Height() int {
	if t == nil {
		return -1
	}
	for i := len(t.slots) - 1; i >= 1; i-- {
		if t.slots[i].occupied {
			return depth(i)
		}
	}
	return -1
}

// Check validates structural tree invariants:
// occupied slots form a tree rooted at slot 1, cached counts and weights match
// the subtrees, size ≤ max_size, the height stays within h_alpha(max_size),
// and sorted trees hold their items in strictly ascending order.
//
// Check is O(len(slots)) and meant for tests.
func (t *Tree[T]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	occupied := 0
	for i := 1; i < len(t.slots); i++ {
		s := &t.slots[i]
		if !s.occupied {
			continue
		}
		occupied++
		if i > 1 && !t.has(i>>1) {
			return fmt.Errorf("%w: slot %d has no parent", ErrCorrupted, i)
		}
		if want := 1 + t.countAt(2*i) + t.countAt(2*i+1); s.count != want {
			return fmt.Errorf("%w: slot %d count %d, want %d", ErrCorrupted, i, s.count, want)
		}
		for d, dim := range t.cfg.Dimensions {
			want := dim.Measure(s.item) + t.sumAt(d, 2*i) + t.sumAt(d, 2*i+1)
			if s.sums[d] != want {
				return fmt.Errorf("%w: slot %d weight[%d] %d, want %d", ErrCorrupted, i, d, s.sums[d], want)
			}
		}
	}
	if occupied != t.size {
		return fmt.Errorf("%w: %d occupied slots, size %d", ErrCorrupted, occupied, t.size)
	}
	if t.size > 0 && t.countAt(1) != t.size {
		return fmt.Errorf("%w: root count %d, size %d", ErrCorrupted, t.countAt(1), t.size)
	}
	if t.size > t.maxSize {
		return fmt.Errorf("%w: size %d exceeds max size %d", ErrCorrupted, t.size, t.maxSize)
	}
	if h := t.Height(); h > HeightBound(t.cfg.Alpha, t.maxSize) {
		return fmt.Errorf("%w: height %d exceeds bound %d for max size %d",
			ErrCorrupted, h, HeightBound(t.cfg.Alpha, t.maxSize), t.maxSize)
	}
	if t.cfg.Compare != nil {
		var prev T
		first, pos := true, 0
		var err error
		t.ForEachItem(func(item T) bool {
			if !first && t.cfg.Compare(prev, item) >= 0 {
				err = fmt.Errorf("%w: items out of order at position %d", ErrCorrupted, pos)
				return false
			}
			prev, first = item, false
			pos++
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
