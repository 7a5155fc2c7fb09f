package ranktree

// Get returns the item at 0-based in-order position pos. It reports false if
// pos is out of range.
func (t *Tree[T]) Get(pos int) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	i := t.locate(pos)
	if i == 0 {
		return zero, false
	}
	return t.slots[i].item, true
}

// GetMut returns a pointer to the item at position pos, or nil.
//
// The pointer is valid until the next mutation of the tree. Fields measured
// by a Dimension must not be changed through it; use ReplaceAt instead.
func (t *Tree[T]) GetMut(pos int) *T {
	if t == nil {
		return nil
	}
	i := t.locate(pos)
	if i == 0 {
		return nil
	}
	return &t.slots[i].item
}

// Search returns the stored item comparing equal to item. It requires
// Config.Compare; trees without an ordering report every item as absent.
func (t *Tree[T]) Search(item T) (T, bool) {
	var zero T
	if t == nil || t.cfg.Compare == nil {
		return zero, false
	}
	return t.SearchBy(func(x T) int { return t.cfg.Compare(item, x) })
}

// SearchBy descends the tree guided by probe, which reports how the sought
// item compares to the item it is given: negative to go left, positive to go
// right, zero when found.
func (t *Tree[T]) SearchBy(probe func(item T) int) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	if i := t.find(probe); i != 0 {
		return t.slots[i].item, true
	}
	return zero, false
}

// SearchMut is like Search, but returns a pointer to the stored item or nil.
// The same restrictions as for GetMut apply.
func (t *Tree[T]) SearchMut(item T) *T {
	if t == nil || t.cfg.Compare == nil {
		return nil
	}
	return t.SearchByMut(func(x T) int { return t.cfg.Compare(item, x) })
}

// SearchByMut is like SearchBy, but returns a pointer to the stored item or nil.
func (t *Tree[T]) SearchByMut(probe func(item T) int) *T {
	if t == nil {
		return nil
	}
	if i := t.find(probe); i != 0 {
		return &t.slots[i].item
	}
	return nil
}

// Position returns the in-order position of the item located by probe.
func (t *Tree[T]) Position(probe func(item T) int) (int, bool) {
	if t == nil {
		return 0, false
	}
	pos, i := 0, 1
	for t.has(i) {
		c := probe(t.slots[i].item)
		switch {
		case c == 0:
			return pos + t.countAt(2*i), true
		case c < 0:
			i = 2 * i
		default:
			pos += t.countAt(2*i) + 1
			i = 2*i + 1
		}
	}
	return 0, false
}

// Seek descends by the weights of dimension dim. It returns the position of
// the item covering target, i.e. the first item whose accumulated weight
// exceeds target, and the residual of target within that item.
//
// Items of weight 0 never cover a target. Seek reports false if target is
// negative or not less than Sum(dim).
func (t *Tree[T]) Seek(dim int, target int) (pos int, residual int, item T, ok bool) {
	var zero T
	if t == nil || dim < 0 || dim >= len(t.cfg.Dimensions) || target < 0 {
		return 0, 0, zero, false
	}
	measure := t.cfg.Dimensions[dim]
	i := 1
	for t.has(i) {
		s := &t.slots[i]
		left := t.sumAt(dim, 2*i)
		w := measure.Measure(s.item)
		switch {
		case target < left:
			i = 2 * i
		case target < left+w:
			return pos + t.countAt(2*i), target - left, s.item, true
		default:
			target -= left + w
			pos += t.countAt(2*i) + 1
			i = 2*i + 1
		}
	}
	return 0, 0, zero, false
}

// PrefixSum returns the weight of dimension dim accumulated over all items at
// positions < pos. pos is clamped to [0, Len()].
func (t *Tree[T]) PrefixSum(dim int, pos int) int {
	if t == nil || dim < 0 || dim >= len(t.cfg.Dimensions) || pos <= 0 {
		return 0
	}
	measure := t.cfg.Dimensions[dim]
	sum, i := 0, 1
	for t.has(i) {
		left := t.countAt(2 * i)
		switch {
		case pos < left:
			i = 2 * i
		case pos == left:
			return sum + t.sumAt(dim, 2*i)
		default:
			sum += t.sumAt(dim, 2*i) + measure.Measure(t.slots[i].item)
			pos -= left + 1
			i = 2*i + 1
		}
	}
	return sum
}

// Sum returns the weight of dimension dim accumulated over all items.
func (t *Tree[T]) Sum(dim int) int {
	if t == nil || dim < 0 || dim >= len(t.cfg.Dimensions) {
		return 0
	}
	return t.sumAt(dim, 1)
}
