// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package marshal moves data between fields and external buffers.
//
// Every kernel validates its handles first and returns a *BindError
// wrapping one of the Err* sentinels if a precondition fails, in which case
// nothing has been written. Once bound, a kernel visits each active index of
// its driving domain exactly once, possibly from several goroutines.
//
// Example:
//
//	f := field.Zeros[float32](field.Shape{640, 480}, field.Vector(3))
//	pixels := buffer.Make[uint32](field.Shape{480, 640})
//	if err := marshal.ToPackedImage[float32, uint32](f, pixels); err != nil {
//	    return err
//	}
package marshal

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fieldkit/field"
	"github.com/born-ml/fieldkit/internal/marshal"
	"github.com/born-ml/fieldkit/internal/parallel"
)

// Bind-time errors.
var (
	ErrNilHandle      = marshal.ErrNilHandle
	ErrRankMismatch   = marshal.ErrRankMismatch
	ErrShapeMismatch  = marshal.ErrShapeMismatch
	ErrLayoutMismatch = marshal.ErrLayoutMismatch
	ErrInvalidValue   = marshal.ErrInvalidValue
	ErrEmpty          = marshal.ErrEmpty
)

// BindError describes a precondition failure detected at bind time.
type BindError = marshal.BindError

// Buffer is the view of an external buffer the kernels need.
type Buffer[U field.Numeric] = marshal.Buffer[U]

// PixelWord is the constraint for packed pixel words.
type PixelWord = marshal.PixelWord

// Option configures a single kernel call.
type Option = marshal.Option

// Config controls how a pass is spread over goroutines.
type Config = parallel.Config

// DefaultConfig returns the execution config derived from the environment.
func DefaultConfig() Config { return parallel.DefaultConfig() }

// WithConfig sets the execution config for the pass.
func WithConfig(cfg Config) Option { return marshal.WithConfig(cfg) }

// Sequential runs the pass on the calling goroutine.
func Sequential() Option { return marshal.Sequential() }

// Logger returns the logger used by every kernel.
func Logger() *zap.Logger { return marshal.Logger() }

// SetLogger configures the logger used by every kernel.
func SetLogger(l *zap.Logger) { marshal.SetLogger(l) }

// Cast converts v from S to D with the rules the kernels use.
func Cast[S, D field.Numeric](v S) D { return marshal.Cast[S, D](v) }

// Fill writes v to every component of every active element of f.
func Fill[T field.Numeric](f field.Field[T], v T, opts ...Option) error {
	return marshal.Fill[T](f, v, opts...)
}

// FillElement writes elem to every active element of f.
func FillElement[T field.Numeric](f field.Field[T], elem []T, opts ...Option) error {
	return marshal.FillElement[T](f, elem, opts...)
}

// FillMatrix writes a table of components to every active element of f.
func FillMatrix[T field.Numeric](f field.Field[T], values [][]T, opts ...Option) error {
	return marshal.FillMatrix[T](f, values, opts...)
}

// FillMatrixFrom writes a gonum matrix to every active element of f.
func FillMatrixFrom[T field.Numeric](f field.Field[T], values mat.Matrix, opts ...Option) error {
	return marshal.FillMatrixFrom[T](f, values, opts...)
}

// CopyToBuffer copies every active element of the scalar field f into b.
func CopyToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	return marshal.CopyToBuffer[T, U](f, b, opts...)
}

// CopyFromBuffer copies b into every active element of the scalar field f.
func CopyFromBuffer[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	return marshal.CopyFromBuffer[U, T](b, f, opts...)
}

// CopyField copies src into every active element of dst.
func CopyField[T, S field.Numeric](dst field.Field[T], src field.Field[S], opts ...Option) error {
	return marshal.CopyField[T, S](dst, src, opts...)
}

// PackComponents copies the components of f into b, as vectors or matrices.
func PackComponents[T, U field.Numeric](f field.Field[T], b Buffer[U], asVector bool, opts ...Option) error {
	return marshal.PackComponents[T, U](f, b, asVector, opts...)
}

// UnpackComponents copies b into the components of f, as vectors or matrices.
func UnpackComponents[U, T field.Numeric](b Buffer[U], f field.Field[T], asVector bool, opts ...Option) error {
	return marshal.UnpackComponents[U, T](b, f, asVector, opts...)
}

// VectorToBuffer copies the vector field f into b.
func VectorToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	return marshal.VectorToBuffer[T, U](f, b, opts...)
}

// BufferToVector copies b into the vector field f.
func BufferToVector[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	return marshal.BufferToVector[U, T](b, f, opts...)
}

// MatrixToBuffer copies the matrix field f into b.
func MatrixToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	return marshal.MatrixToBuffer[T, U](f, b, opts...)
}

// BufferToMatrix copies b into the matrix field f.
func BufferToMatrix[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	return marshal.BufferToMatrix[U, T](b, f, opts...)
}

// CookImageType converts a field value to the float32 image domain.
func CookImageType[T field.Numeric](x T) float32 { return marshal.CookImageType[T](x) }

// ToGrayscaleImage replicates the scalar field f into three image channels.
func ToGrayscaleImage[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	return marshal.ToGrayscaleImage[T, U](f, b, opts...)
}

// ToVectorImage writes the vector field f as image channels.
func ToVectorImage[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	return marshal.ToVectorImage[T, U](f, b, opts...)
}

// ToPackedImage writes the rank-2 RGB field f as packed, vertically
// flipped pixel words.
func ToPackedImage[T field.Numeric, W PixelWord](f field.Field[T], b Buffer[W], opts ...Option) error {
	return marshal.ToPackedImage[T, W](f, b, opts...)
}

// PackPixel returns the packed word of an RGB triple.
func PackPixel(r, g, b uint8) uint32 { return marshal.PackPixel(r, g, b) }

// UnpackPixel splits a packed word into its RGB triple.
func UnpackPixel(w uint32) (r, g, b uint8) { return marshal.UnpackPixel(w) }

// ClearGradients zeroes every field of buffers over the active set of the first.
func ClearGradients[T field.Numeric](buffers []field.Field[T], opts ...Option) error {
	return marshal.ClearGradients[T](buffers, opts...)
}

// ClearLoss sets the rank-0 loss to 0 and its derivative to 1.
func ClearLoss[T field.Numeric](l field.Differentiable[T]) error {
	return marshal.ClearLoss[T](l)
}

// Deactivate removes every active index of f.
func Deactivate(f field.Deactivator, opts ...Option) error {
	return marshal.Deactivate(f, opts...)
}

// DeactivateDynamic clears the lists of f under every active parent index.
func DeactivateDynamic(f field.Child, opts ...Option) error {
	return marshal.DeactivateDynamic(f, opts...)
}
