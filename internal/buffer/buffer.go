// Package buffer implements the external buffer adapter: a flat,
// row-major, densely addressable view over memory owned by the caller.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/fieldkit/internal/field"
)

// Buffer is a row-major view over caller-owned elements of U.
// It never copies or frees the memory it wraps.
type Buffer[U field.Numeric] struct {
	data   []U
	shape  field.Shape
	stride []int
	dtype  field.DataType
}

// New wraps data as a buffer of the given shape.
// The slice is not copied.
func New[U field.Numeric](data []U, shape field.Shape) (*Buffer[U], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Buffer[U]{
		data:   data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  field.TypeOf[U](),
	}, nil
}

// Make allocates a zeroed buffer of the given shape.
// Panics if the shape is invalid.
func Make[U field.Numeric](shape field.Shape) *Buffer[U] {
	b, err := New(make([]U, shape.NumElements()), shape)
	if err != nil {
		panic(err)
	}
	return b
}

// View interprets raw bytes as a buffer of U (zero-copy).
// raw must hold exactly shape.NumElements() elements and be aligned for U.
func View[U field.Numeric](raw []byte, shape field.Shape) (*Buffer[U], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	var dummy U
	size := int(unsafe.Sizeof(dummy))
	n := shape.NumElements()
	if len(raw) != n*size {
		return nil, fmt.Errorf("shape %v of %s requires %d bytes, but got %d", shape, field.TypeOf[U](), n*size, len(raw))
	}
	//nolint:gosec // alignment check for the unsafe.Slice below
	if uintptr(unsafe.Pointer(&raw[0]))%unsafe.Alignof(dummy) != 0 {
		return nil, fmt.Errorf("byte buffer is not aligned for %s", field.TypeOf[U]())
	}
	//nolint:gosec // unsafe.Slice for zero-copy interop, bounds checked above
	data := unsafe.Slice((*U)(unsafe.Pointer(&raw[0])), n)
	return New(data, shape)
}

// Shape returns the buffer's declared shape.
func (b *Buffer[U]) Shape() field.Shape {
	return b.shape
}

// Rank returns the number of dimensions.
func (b *Buffer[U]) Rank() int {
	return len(b.shape)
}

// Strides returns the row-major strides.
func (b *Buffer[U]) Strides() []int {
	return b.stride
}

// DType returns the element data type.
func (b *Buffer[U]) DType() field.DataType {
	return b.dtype
}

// NumElements returns the total number of elements.
func (b *Buffer[U]) NumElements() int {
	return len(b.data)
}

// Data returns the wrapped slice.
//
// WARNING: Modifications to the returned slice will modify the buffer.
func (b *Buffer[U]) Data() []U {
	return b.data
}

// Offset returns the linear offset of a leading multi-index.
// prefix may be shorter than the rank; trailing dimensions start at 0.
// Bounds are not checked.
func (b *Buffer[U]) Offset(prefix field.Index) int {
	offset := 0
	for i, v := range prefix {
		offset += v * b.stride[i]
	}
	return offset
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (b *Buffer[U]) At(indices ...int) U {
	return b.data[b.shape.Offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (b *Buffer[U]) Set(value U, indices ...int) {
	b.data[b.shape.Offset(indices)] = value
}

// String returns a human-readable representation of the buffer.
func (b *Buffer[U]) String() string {
	return fmt.Sprintf("Buffer[%s]%v", b.dtype, b.shape)
}
