package marshal

import (
	"github.com/born-ml/fieldkit/internal/field"
)

// ClearGradients zeroes, in every field of buffers, each index active in
// buffers[0]. Every field must have the shape of buffers[0].
func ClearGradients[T field.Numeric](buffers []field.Field[T], opts ...Option) error {
	const op = "clear_gradients"
	if len(buffers) == 0 {
		return bindError(op, "buffers", ErrEmpty, "")
	}
	sizes := make([]int, len(buffers))
	for i, b := range buffers {
		if isNil(b) {
			return bindError(op, "buffers", ErrNilHandle, "entry %d", i)
		}
		if !b.Shape().Equal(buffers[0].Shape()) {
			return bindError(op, "buffers", ErrShapeMismatch,
				"entry %d has shape %v, entry 0 has %v", i, b.Shape(), buffers[0].Shape())
		}
		sizes[i] = b.Layout().Size()
	}

	run(op, buffers[0].Active(), buildOptions(opts), func(idx field.Index) {
		for i, b := range buffers {
			for c := 0; c < sizes[i]; c++ {
				b.Set(idx, c, 0)
			}
		}
	})
	return nil
}

// ClearLoss seeds reverse-mode differentiation: the rank-0 primal of l is
// set to 0 and its derivative to 1.
func ClearLoss[T field.Numeric](l field.Differentiable[T]) error {
	const op = "clear_loss"
	if isNil(l) {
		return bindError(op, "loss", ErrNilHandle, "")
	}
	if err := checkLoss(op, "loss", l); err != nil {
		return err
	}
	grad := l.Grad()
	if isNil(grad) {
		return bindError(op, "grad", ErrNilHandle, "loss has no derivative field")
	}
	if err := checkLoss(op, "grad", grad); err != nil {
		return err
	}

	one := caster[int8, T]()(1)
	l.Set(field.Index{}, 0, 0)
	grad.Set(field.Index{}, 0, one)
	return nil
}

func checkLoss[T field.Numeric](op, operand string, f field.Field[T]) error {
	if r := len(f.Shape()); r != 0 {
		return bindError(op, operand, ErrRankMismatch, "loss must be rank 0, got rank %d", r)
	}
	return checkKind(op, operand, f.Layout(), field.KindScalar)
}
