// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package field provides the public field types consumed by the marshal
// kernels.
//
// A field is an N-dimensional index space with an active subset and a
// fixed element layout (scalar, vector or matrix). Three reference
// implementations are provided:
//   - Dense[T]: every index is active
//   - Sparse[T]: indices become active when written
//   - Dynamic[T]: a per-cell list under a dense parent
//
// Example:
//
//	f := field.Zeros[float32](field.Shape{64, 64}, field.Vector(3))
//	f.Set(field.Index{0, 0}, 2, 1.0)
package field

import (
	"github.com/born-ml/fieldkit/internal/field"
)

// Numeric is the constraint for element and buffer component types.
// float16.Float16 from github.com/x448/float16 is treated as half precision.
type Numeric = field.Numeric

// DataType identifies a component type at runtime.
type DataType = field.DataType

// Data type constants.
const (
	Float16 DataType = field.Float16
	Float32 DataType = field.Float32
	Float64 DataType = field.Float64
	Int8    DataType = field.Int8
	Int16   DataType = field.Int16
	Int32   DataType = field.Int32
	Int64   DataType = field.Int64
	Uint8   DataType = field.Uint8
	Uint16  DataType = field.Uint16
	Uint32  DataType = field.Uint32
	Uint64  DataType = field.Uint64
)

// Shape is the extent of each axis of an index space.
type Shape = field.Shape

// Index is a multi-index into a Shape.
type Index = field.Index

// Kind is the element kind of a Layout.
type Kind = field.Kind

// Element kinds.
const (
	KindScalar Kind = field.KindScalar
	KindVector Kind = field.KindVector
	KindMatrix Kind = field.KindMatrix
)

// Layout describes the components held at every index.
type Layout = field.Layout

// Domain is an index space with an active subset.
type Domain = field.Domain

// Field is a domain whose elements can be read and written per component.
type Field[T Numeric] = field.Field[T]

// Deactivator is a domain whose indices can be deactivated.
type Deactivator = field.Deactivator

// Child is a deactivatable field hanging under a parent domain.
type Child = field.Child

// Differentiable is a field paired with a derivative field.
type Differentiable[T Numeric] = field.Differentiable[T]

// Dense is a field whose every index is active.
type Dense[T Numeric] = field.Dense[T]

// Sparse is a field whose indices activate on write.
type Sparse[T Numeric] = field.Sparse[T]

// Dynamic is a field of bounded per-cell lists.
type Dynamic[T Numeric] = field.Dynamic[T]

// Scalar returns the single-component layout.
func Scalar() Layout { return field.Scalar() }

// Vector returns the layout of an n-component vector.
func Vector(n int) Layout { return field.Vector(n) }

// Matrix returns the layout of an n×m matrix.
func Matrix(n, m int) Layout { return field.Matrix(n, m) }

// TypeOf returns the DataType of T.
func TypeOf[T Numeric]() DataType { return field.TypeOf[T]() }

// NewDense creates a zero-initialized dense field.
func NewDense[T Numeric](shape Shape, layout Layout) (*Dense[T], error) {
	return field.NewDense[T](shape, layout)
}

// Zeros creates a zero-initialized dense field. Panics if the shape is invalid.
func Zeros[T Numeric](shape Shape, layout Layout) *Dense[T] {
	return field.Zeros[T](shape, layout)
}

// FromSlice creates a dense field from a copy of data.
func FromSlice[T Numeric](data []T, shape Shape, layout Layout) (*Dense[T], error) {
	return field.FromSlice(data, shape, layout)
}

// NewSparse creates a sparse field with no active index.
func NewSparse[T Numeric](shape Shape, layout Layout) (*Sparse[T], error) {
	return field.NewSparse[T](shape, layout)
}

// NewDynamic creates a dynamic field with lists of up to capacity
// elements under every index of parent.
func NewDynamic[T Numeric](parent Shape, capacity int, layout Layout) (*Dynamic[T], error) {
	return field.NewDynamic[T](parent, capacity, layout)
}
