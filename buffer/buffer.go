// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package buffer provides the external buffer adapter: a row-major view over
// caller-owned memory that the marshal kernels read from and write to.
//
// Example:
//
//	pixels := make([]uint32, w*h)
//	b, err := buffer.New(pixels, field.Shape{h, w})
package buffer

import (
	"github.com/born-ml/fieldkit/field"
	"github.com/born-ml/fieldkit/internal/buffer"
)

// Buffer is a row-major view over caller-owned elements of U.
type Buffer[U field.Numeric] = buffer.Buffer[U]

// New wraps data as a buffer of the given shape without copying it.
func New[U field.Numeric](data []U, shape field.Shape) (*Buffer[U], error) {
	return buffer.New(data, shape)
}

// Make allocates a zeroed buffer of the given shape.
// Panics if the shape is invalid.
func Make[U field.Numeric](shape field.Shape) *Buffer[U] {
	return buffer.Make[U](shape)
}

// View interprets raw bytes as a buffer of U (zero-copy).
// raw must hold exactly shape.NumElements() elements and be aligned for U.
func View[U field.Numeric](raw []byte, shape field.Shape) (*Buffer[U], error) {
	return buffer.View[U](raw, shape)
}
