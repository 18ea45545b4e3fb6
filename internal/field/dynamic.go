package field

import (
	"fmt"
	"iter"
	"sync"
)

// Dynamic is a variable-length list of elements under every cell of a
// dense parent. Its shape is the parent shape followed by the capacity;
// index (I..., k) is active while k < Len(I).
type Dynamic[T Numeric] struct {
	parent   Shape
	capacity int
	shape    Shape
	layout   Layout
	data     []T

	mu      sync.Mutex // Guards lengths
	lengths []int
}

// NewDynamic creates an empty dynamic field.
func NewDynamic[T Numeric](parent Shape, capacity int, layout Layout) (*Dynamic[T], error) {
	if err := parent.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parent shape: %w", err)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid capacity: %d (must be > 0)", capacity)
	}
	shape := parent.Append(capacity)
	return &Dynamic[T]{
		parent:   parent.Clone(),
		capacity: capacity,
		shape:    shape,
		layout:   layout,
		data:     make([]T, shape.NumElements()*layout.Size()),
		lengths:  make([]int, parent.NumElements()),
	}, nil
}

// Shape returns the parent shape followed by the capacity.
func (d *Dynamic[T]) Shape() Shape {
	return d.shape
}

// Layout returns the field's element layout.
func (d *Dynamic[T]) Layout() Layout {
	return d.layout
}

// Parent returns the dense parent domain.
func (d *Dynamic[T]) Parent() Domain {
	return denseDomain{shape: d.parent}
}

// Capacity returns the maximum list length per parent cell.
func (d *Dynamic[T]) Capacity() int {
	return d.capacity
}

// Len returns the list length of the parent cell at pidx.
func (d *Dynamic[T]) Len(pidx Index) int {
	cell := d.parent.Offset(pidx)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lengths[cell]
}

// Active enumerates a snapshot of the active indices in row-major order.
func (d *Dynamic[T]) Active() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		d.mu.Lock()
		lengths := make([]int, len(d.lengths))
		copy(lengths, d.lengths)
		d.mu.Unlock()

		rank := len(d.parent)
		idx := make(Index, rank+1)
		for cell, n := range lengths {
			d.parent.Unravel(cell, idx[:rank])
			for k := 0; k < n; k++ {
				idx[rank] = k
				if !yield(idx) {
					return
				}
			}
		}
	}
}

// Append adds one element to the list of the parent cell at pidx.
func (d *Dynamic[T]) Append(pidx Index, elem ...T) error {
	if len(elem) != d.layout.Size() {
		return fmt.Errorf("layout %s requires %d components, but got %d", d.layout, d.layout.Size(), len(elem))
	}
	cell := d.parent.Offset(pidx)

	d.mu.Lock()
	k := d.lengths[cell]
	if k == d.capacity {
		d.mu.Unlock()
		return fmt.Errorf("cell %v is full (capacity %d)", pidx, d.capacity)
	}
	d.lengths[cell] = k + 1
	d.mu.Unlock()

	base := (cell*d.capacity + k) * d.layout.Size()
	copy(d.data[base:], elem)
	return nil
}

// At returns component c of the element at idx.
func (d *Dynamic[T]) At(idx Index, c int) T {
	return d.data[d.offset(idx, c)]
}

// Set writes component c of the element at idx, growing the list of its
// parent cell to cover idx.
func (d *Dynamic[T]) Set(idx Index, c int, v T) {
	off := d.offset(idx, c)
	cell, k := d.split(idx)
	d.mu.Lock()
	if d.lengths[cell] <= k {
		d.lengths[cell] = k + 1
	}
	d.mu.Unlock()
	d.data[off] = v
}

// Deactivate shrinks a list. A parent index clears the whole list of its
// cell. A full index (I..., k) truncates the list of I to k elements and
// zeroes slot k only, so deactivating distinct full indices touches
// disjoint memory.
func (d *Dynamic[T]) Deactivate(idx Index) {
	rank := len(d.parent)
	size := d.layout.Size()
	switch len(idx) {
	case rank:
		cell := d.parent.Offset(idx)
		d.mu.Lock()
		d.lengths[cell] = 0
		d.mu.Unlock()
		clear(d.data[cell*d.capacity*size : (cell+1)*d.capacity*size])
	case rank + 1:
		off := d.shape.Offset(idx)
		cell, k := d.split(idx)
		d.mu.Lock()
		d.lengths[cell] = min(d.lengths[cell], k)
		d.mu.Unlock()
		clear(d.data[off*size : (off+1)*size])
	default:
		panic(fmt.Sprintf("expected %d or %d indices, got %d", rank, rank+1, len(idx)))
	}
}

// String returns a human-readable representation of the field.
func (d *Dynamic[T]) String() string {
	return fmt.Sprintf("Dynamic[%s]%v %s", TypeOf[T](), d.shape, d.layout)
}

func (d *Dynamic[T]) split(idx Index) (cell, k int) {
	rank := len(d.parent)
	return d.parent.Offset(idx[:rank]), idx[rank]
}

func (d *Dynamic[T]) offset(idx Index, c int) int {
	if c < 0 || c >= d.layout.Size() {
		panic(fmt.Sprintf("component %d out of bounds for layout %s", c, d.layout))
	}
	return d.shape.Offset(idx)*d.layout.Size() + c
}
