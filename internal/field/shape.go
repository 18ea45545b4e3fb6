package field

import (
	"fmt"
	"iter"
)

// Shape represents the dimensions of a field or buffer.
type Shape []int

// Index is a multi-index into a Shape.
// Indices yielded by an enumeration are only valid inside the callback
// that received them; use Clone to keep one.
type Index []int

// Clone returns a copy of the index.
func (idx Index) Clone() Index {
	clone := make(Index, len(idx))
	copy(clone, idx)
	return clone
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements in the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Rank-0 shape has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether the leading dimensions of s equal prefix.
func (s Shape) HasPrefix(prefix Shape) bool {
	return len(s) >= len(prefix) && s[:len(prefix)].Equal(prefix)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Append returns a new shape with dims appended after the dimensions of s.
func (s Shape) Append(dims ...int) Shape {
	out := make(Shape, 0, len(s)+len(dims))
	out = append(out, s...)
	return append(out, dims...)
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Contains reports whether idx addresses an element of the shape.
func (s Shape) Contains(idx Index) bool {
	if len(idx) != len(s) {
		return false
	}
	for i, v := range idx {
		if v < 0 || v >= s[i] {
			return false
		}
	}
	return true
}

// Offset returns the row-major linear offset of idx.
// Panics if idx does not address an element of the shape.
func (s Shape) Offset(idx Index) int {
	if len(idx) != len(s) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(s), len(idx)))
	}
	offset := 0
	for i, v := range idx {
		if v < 0 || v >= s[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", v, i, s[i]))
		}
		offset = offset*s[i] + v
	}
	return offset
}

// Unravel writes the multi-index of the row-major offset into idx,
// which must have len(s) entries.
func (s Shape) Unravel(offset int, idx Index) {
	for i := len(s) - 1; i >= 0; i-- {
		idx[i] = offset % s[i]
		offset /= s[i]
	}
}

// Indices enumerates every multi-index of the shape in row-major order.
// The yielded Index is reused between steps.
func (s Shape) Indices() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		n := s.NumElements()
		idx := make(Index, len(s))
		for off := 0; off < n; off++ {
			if !yield(idx) {
				return
			}
			// Odometer increment, last dimension fastest.
			for d := len(s) - 1; d >= 0; d-- {
				idx[d]++
				if idx[d] < s[d] {
					break
				}
				idx[d] = 0
			}
		}
	}
}
