package ranktree

import "iter"

// ForEachItem walks items in-order.
//
// Iteration stops early if callback returns false.
func (t *Tree[T]) ForEachItem(fn func(item T) bool) {
	if t == nil || fn == nil {
		return
	}
	t.walk(1, fn)
}

// All returns an iterator over all items in-order.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		t.ForEachItem(yield)
	}
}

// From returns an iterator over positions and items, starting at position
// pos. Skipped subtrees are not visited, so starting costs O(height).
func (t *Tree[T]) From(pos int) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if t == nil {
			return
		}
		t.walkFrom(1, max(pos, 0), 0, yield)
	}
}

func (t *Tree[T]) walk(i int, fn func(item T) bool) bool {
	if !t.has(i) {
		return true
	}
	return t.walk(2*i, fn) && fn(t.slots[i].item) && t.walk(2*i+1, fn)
}

// walkFrom visits the subtree at slot i, whose leftmost item has position
// base, skipping all positions before from.
func (t *Tree[T]) walkFrom(i, from, base int, yield func(int, T) bool) bool {
	if !t.has(i) {
		return true
	}
	at := base + t.countAt(2*i)
	if from < at && !t.walkFrom(2*i, from, base, yield) {
		return false
	}
	if from <= at && !yield(at, t.slots[i].item) {
		return false
	}
	return t.walkFrom(2*i+1, from, at+1, yield)
}
