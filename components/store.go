package components

// Dense is a contiguous store with O(1) swap-remove. Indices are not stable
// across removals and must be re-resolved after any SwapRemove.
type Dense[T any] struct {
	items []T
}

// NewDense returns a store with the given initial capacity.
func NewDense[T any](capacity int) *Dense[T] {
	return &Dense[T]{items: make([]T, 0, capacity)}
}

// Push appends v and returns its index.
func (d *Dense[T]) Push(v T) int {
	d.items = append(d.items, v)
	return len(d.items) - 1
}

// SwapRemove overwrites slot i with the last element and shrinks the store by one.
// Panics if i is out of range.
func (d *Dense[T]) SwapRemove(i int) {
	last := len(d.items) - 1
	d.items[i] = d.items[last]
	var zero T
	d.items[last] = zero
	d.items = d.items[:last]
}

// Len returns the number of stored elements.
func (d *Dense[T]) Len() int { return len(d.items) }

// At returns a pointer to element i for in-place updates. The pointer is
// invalidated by Push and SwapRemove. Panics if i is out of range.
func (d *Dense[T]) At(i int) *T { return &d.items[i] }

// Items returns the live slice. It aliases the store.
func (d *Dense[T]) Items() []T { return d.items }

// Clear empties the store, keeping its capacity.
func (d *Dense[T]) Clear() {
	clear(d.items)
	d.items = d.items[:0]
}

// RemoveFunc swap-removes every element for which dead returns true.
// It walks backward so each slot is examined exactly once.
func (d *Dense[T]) RemoveFunc(dead func(*T) bool) int {
	removed := 0
	for i := len(d.items) - 1; i >= 0; i-- {
		if dead(&d.items[i]) {
			d.SwapRemove(i)
			removed++
		}
	}
	return removed
}
