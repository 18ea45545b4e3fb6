package field

import (
	"fmt"
	"iter"
)

// Dense is a field whose every index is active.
// Storage is contiguous and row-major, components innermost.
type Dense[T Numeric] struct {
	shape  Shape
	layout Layout
	data   []T
	grad   *Dense[T]
}

// NewDense creates a zero-initialized dense field.
func NewDense[T Numeric](shape Shape, layout Layout) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Dense[T]{
		shape:  shape.Clone(),
		layout: layout,
		data:   make([]T, shape.NumElements()*layout.Size()),
	}, nil
}

// Zeros creates a zero-initialized dense field.
// Panics if the shape is invalid.
//
// Example:
//
//	f := field.Zeros[float32](field.Shape{4, 4}, field.Vector(3))
func Zeros[T Numeric](shape Shape, layout Layout) *Dense[T] {
	d, err := NewDense[T](shape, layout)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSlice creates a dense field from a Go slice of components.
// The slice is copied into the field's memory.
func FromSlice[T Numeric](data []T, shape Shape, layout Layout) (*Dense[T], error) {
	d, err := NewDense[T](shape, layout)
	if err != nil {
		return nil, err
	}
	if len(data) != len(d.data) {
		return nil, fmt.Errorf("shape %v with layout %s requires %d components, but got %d",
			shape, layout, len(d.data), len(data))
	}
	copy(d.data, data)
	return d, nil
}

// Shape returns the field's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Layout returns the field's element layout.
func (d *Dense[T]) Layout() Layout {
	return d.layout
}

// Active enumerates every index of the field in row-major order.
func (d *Dense[T]) Active() iter.Seq[Index] {
	return d.shape.Indices()
}

// At returns component c of the element at idx.
// Panics if idx or c is out of bounds.
func (d *Dense[T]) At(idx Index, c int) T {
	return d.data[d.offset(idx, c)]
}

// Set writes component c of the element at idx.
// Panics if idx or c is out of bounds.
func (d *Dense[T]) Set(idx Index, c int, v T) {
	d.data[d.offset(idx, c)] = v
}

// Element returns a copy of all components of the element at idx.
func (d *Dense[T]) Element(idx Index) []T {
	base := d.offset(idx, 0)
	out := make([]T, d.layout.Size())
	copy(out, d.data[base:base+len(out)])
	return out
}

// Data returns the field's components as a flat slice (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the field.
func (d *Dense[T]) Data() []T {
	return d.data
}

// RequireGrad allocates the paired derivative field if it does not exist.
// Returns the field itself for method chaining.
func (d *Dense[T]) RequireGrad() *Dense[T] {
	if d.grad == nil {
		d.grad = Zeros[T](d.shape, d.layout)
	}
	return d
}

// Grad returns the paired derivative field, or nil if none was required.
func (d *Dense[T]) Grad() Field[T] {
	if d.grad == nil {
		return nil
	}
	return d.grad
}

// String returns a human-readable representation of the field.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v %s", TypeOf[T](), d.shape, d.layout)
}

func (d *Dense[T]) offset(idx Index, c int) int {
	if c < 0 || c >= d.layout.Size() {
		panic(fmt.Sprintf("component %d out of bounds for layout %s", c, d.layout))
	}
	return d.shape.Offset(idx)*d.layout.Size() + c
}

// denseDomain is an index space with every index active.
type denseDomain struct {
	shape Shape
}

func (d denseDomain) Shape() Shape { return d.shape }

func (d denseDomain) Active() iter.Seq[Index] { return d.shape.Indices() }
