package marshal

import (
	"github.com/born-ml/fieldkit/internal/field"
)

// CopyToBuffer copies every active element of the scalar field f into b
// at the same multi-index. Buffer elements outside the active set are
// left untouched.
func CopyToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	const op = "copy_to_buffer"
	if err := checkScalarCopy(op, f, b); err != nil {
		return err
	}

	conv := caster[T, U]()
	data, strides := b.Data(), b.Strides()
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		data[linear(strides, idx)] = conv(f.At(idx, 0))
	})
	return nil
}

// CopyFromBuffer copies b into every active element of the scalar field f.
func CopyFromBuffer[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	const op = "copy_from_buffer"
	if err := checkScalarCopy(op, f, b); err != nil {
		return err
	}

	conv := caster[U, T]()
	data, strides := b.Data(), b.Strides()
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		f.Set(idx, 0, conv(data[linear(strides, idx)]))
	})
	return nil
}

// CopyField sets dst[idx] = src[idx] for every index active in dst.
// src only needs to be addressable there; activation does not propagate.
func CopyField[T, S field.Numeric](dst field.Field[T], src field.Field[S], opts ...Option) error {
	const op = "copy_field"
	if isNil(dst) || isNil(src) {
		return bindError(op, "field", ErrNilHandle, "")
	}
	if len(dst.Shape()) != len(src.Shape()) {
		return bindError(op, "src", ErrRankMismatch, "dst rank %d, src rank %d", len(dst.Shape()), len(src.Shape()))
	}
	if !dst.Shape().Equal(src.Shape()) {
		return bindError(op, "src", ErrShapeMismatch, "dst %v, src %v", dst.Shape(), src.Shape())
	}
	if dst.Layout() != src.Layout() {
		return bindError(op, "src", ErrLayoutMismatch, "dst %s, src %s", dst.Layout(), src.Layout())
	}

	conv := caster[S, T]()
	size := dst.Layout().Size()
	run(op, dst.Active(), buildOptions(opts), func(idx field.Index) {
		for c := 0; c < size; c++ {
			dst.Set(idx, c, conv(src.At(idx, c)))
		}
	})
	return nil
}

func checkScalarCopy[T, U field.Numeric](op string, f field.Field[T], b Buffer[U]) error {
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	if err := checkKind(op, "field", f.Layout(), field.KindScalar); err != nil {
		return err
	}
	return checkExpanded(op, f.Shape(), b.Shape())
}
