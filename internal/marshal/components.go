package marshal

import (
	"github.com/born-ml/fieldkit/internal/field"
)

// PackComponents writes the components of every active element of f into b.
// With asVector the buffer has shape f.Shape()+(n); otherwise it has shape
// f.Shape()+(n, m). The layout mode is resolved here, once per call.
func PackComponents[T, U field.Numeric](f field.Field[T], b Buffer[U], asVector bool, opts ...Option) error {
	if asVector {
		return VectorToBuffer(f, b, opts...)
	}
	return MatrixToBuffer(f, b, opts...)
}

// UnpackComponents is the inverse of PackComponents.
func UnpackComponents[U, T field.Numeric](b Buffer[U], f field.Field[T], asVector bool, opts ...Option) error {
	if asVector {
		return BufferToVector(b, f, opts...)
	}
	return BufferToMatrix(b, f, opts...)
}

// VectorToBuffer writes component p of every active vector element at
// buffer index (idx, p).
func VectorToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	const op = "vector_to_buffer"
	if err := checkVector(op, f, b); err != nil {
		return err
	}

	conv := caster[T, U]()
	n := f.Layout().N()
	data, strides := b.Data(), b.Strides()
	sp := strides[len(strides)-1]
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		base := linear(strides, idx)
		for p := 0; p < n; p++ {
			data[base+p*sp] = conv(f.At(idx, p))
		}
	})
	return nil
}

// BufferToVector reads buffer index (idx, p) into component p of every
// active vector element.
func BufferToVector[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	const op = "buffer_to_vector"
	if err := checkVector(op, f, b); err != nil {
		return err
	}

	conv := caster[U, T]()
	n := f.Layout().N()
	data, strides := b.Data(), b.Strides()
	sp := strides[len(strides)-1]
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		base := linear(strides, idx)
		for p := 0; p < n; p++ {
			f.Set(idx, p, conv(data[base+p*sp]))
		}
	})
	return nil
}

// MatrixToBuffer writes component (p, q) of every active element at buffer
// index (idx, p, q), p outer and q inner.
func MatrixToBuffer[T, U field.Numeric](f field.Field[T], b Buffer[U], opts ...Option) error {
	const op = "matrix_to_buffer"
	if err := checkMatrix(op, f, b); err != nil {
		return err
	}

	conv := caster[T, U]()
	n, m := f.Layout().N(), f.Layout().M()
	data, strides := b.Data(), b.Strides()
	sp, sq := strides[len(strides)-2], strides[len(strides)-1]
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		base := linear(strides, idx)
		for p := 0; p < n; p++ {
			for q := 0; q < m; q++ {
				data[base+p*sp+q*sq] = conv(f.At(idx, p*m+q))
			}
		}
	})
	return nil
}

// BufferToMatrix reads buffer index (idx, p, q) into component (p, q) of
// every active element.
func BufferToMatrix[U, T field.Numeric](b Buffer[U], f field.Field[T], opts ...Option) error {
	const op = "buffer_to_matrix"
	if err := checkMatrix(op, f, b); err != nil {
		return err
	}

	conv := caster[U, T]()
	n, m := f.Layout().N(), f.Layout().M()
	data, strides := b.Data(), b.Strides()
	sp, sq := strides[len(strides)-2], strides[len(strides)-1]
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		base := linear(strides, idx)
		for p := 0; p < n; p++ {
			for q := 0; q < m; q++ {
				f.Set(idx, p*m+q, conv(data[base+p*sp+q*sq]))
			}
		}
	})
	return nil
}

func checkVector[T, U field.Numeric](op string, f field.Field[T], b Buffer[U]) error {
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	if err := checkKind(op, "field", f.Layout(), field.KindVector); err != nil {
		return err
	}
	return checkExpanded(op, f.Shape(), b.Shape(), f.Layout().N())
}

func checkMatrix[T, U field.Numeric](op string, f field.Field[T], b Buffer[U]) error {
	if isNil(f) || isNil(b) {
		return bindError(op, "handle", ErrNilHandle, "")
	}
	if err := checkKind(op, "field", f.Layout(), field.KindVector, field.KindMatrix); err != nil {
		return err
	}
	return checkExpanded(op, f.Shape(), b.Shape(), f.Layout().N(), f.Layout().M())
}
