package marshal

import (
	"testing"

	"github.com/born-ml/fieldkit/internal/field"
	"github.com/born-ml/fieldkit/internal/parallel"
)

// eachMode runs fn once sequentially and once with a small parallel chunk
// size so every kernel is exercised on multiple lanes.
func eachMode(t *testing.T, fn func(t *testing.T, opt Option)) {
	t.Helper()
	t.Run("sequential", func(t *testing.T) {
		fn(t, Sequential())
	})
	t.Run("parallel", func(t *testing.T) {
		fn(t, WithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2}))
	})
}

// ramp fills a dense field with 1, 2, 3, ... component by component.
func ramp[T field.Numeric](shape field.Shape, layout field.Layout) *field.Dense[T] {
	d := field.Zeros[T](shape, layout)
	for i := range d.Data() {
		d.Data()[i] = T(i + 1)
	}
	return d
}

// sparseDiagonal activates (i, i) for every i of a square sparse field.
func sparseDiagonal[T field.Numeric](n int, layout field.Layout) *field.Sparse[T] {
	s, err := field.NewSparse[T](field.Shape{n, n}, layout)
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		s.Activate(field.Index{i, i})
	}
	return s
}
