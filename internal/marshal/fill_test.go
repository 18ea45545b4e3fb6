package marshal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fieldkit/internal/field"
)

func TestFill(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		f := field.Zeros[float32](field.Shape{4, 5}, field.Scalar())
		require.NoError(t, Fill[float32](f, 2.5, opt))

		for idx := range f.Active() {
			assert.Equal(t, float32(2.5), f.At(idx, 0))
		}
	})
}

func TestFill_CompositeBroadcast(t *testing.T) {
	f := field.Zeros[int32](field.Shape{3}, field.Matrix(2, 2))
	require.NoError(t, Fill[int32](f, 7, Sequential()))

	for _, v := range f.Data() {
		assert.Equal(t, int32(7), v)
	}
}

func TestFill_OnlyActive(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		s := sparseDiagonal[float64](4, field.Scalar())
		require.NoError(t, Fill[float64](s, 1, opt))

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				assert.Equal(t, want, s.At(field.Index{i, j}, 0), "(%d,%d)", i, j)
			}
		}
		assert.Equal(t, 4, s.NumActive())
	})
}

func TestFillElement(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		f := field.Zeros[float32](field.Shape{2, 3}, field.Vector(3))
		v := []float32{1, 2, 3}
		require.NoError(t, FillElement[float32](f, v, opt))

		v[0] = 100 // caller mutations after the call must not matter
		for idx := range f.Active() {
			assert.Equal(t, []float32{1, 2, 3}, f.Element(idx))
		}
	})
}

func TestFillElement_WrongSize(t *testing.T) {
	f := field.Zeros[float32](field.Shape{2}, field.Vector(3))
	err := FillElement[float32](f, []float32{1, 2}, Sequential())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, make([]float32, 6), f.Data(), "nothing may be written on bind failure")
}

func TestFillMatrix(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		f := field.Zeros[int64](field.Shape{3, 2}, field.Matrix(2, 3))
		values := [][]int64{{1, 2, 3}, {4, 5, 6}}
		require.NoError(t, FillMatrix[int64](f, values, opt))

		for idx := range f.Active() {
			for p := 0; p < 2; p++ {
				for q := 0; q < 3; q++ {
					assert.Equal(t, values[p][q], f.At(idx, f.Layout().Component(p, q)))
				}
			}
		}
	})
}

func TestFillMatrix_VectorAsColumn(t *testing.T) {
	f := field.Zeros[float32](field.Shape{2}, field.Vector(2))
	require.NoError(t, FillMatrix[float32](f, [][]float32{{1}, {2}}, Sequential()))
	assert.Equal(t, []float32{1, 2, 1, 2}, f.Data())
}

func TestFillMatrix_BadTable(t *testing.T) {
	f := field.Zeros[float32](field.Shape{2}, field.Matrix(2, 2))

	tests := []struct {
		name   string
		values [][]float32
	}{
		{"too few rows", [][]float32{{1, 2}}},
		{"too many rows", [][]float32{{1, 2}, {3, 4}, {5, 6}}},
		{"ragged", [][]float32{{1, 2}, {3}}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FillMatrix[float32](f, tt.values, Sequential())
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.Equal(t, make([]float32, 8), f.Data())
		})
	}
}

func TestFillMatrixFrom(t *testing.T) {
	f := field.Zeros[uint8](field.Shape{2}, field.Matrix(2, 2))
	m := mat.NewDense(2, 2, []float64{1.9, 300, -4, 8})
	require.NoError(t, FillMatrixFrom[uint8](f, m, Sequential()))

	// float64 to uint8 saturates then truncates.
	assert.Equal(t, []uint8{1, 255, 0, 8, 1, 255, 0, 8}, f.Data())

	err := FillMatrixFrom[uint8](f, mat.NewDense(3, 2, nil), Sequential())
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFill_NilField(t *testing.T) {
	assert.ErrorIs(t, Fill[float32](nil, 1), ErrNilHandle)
	assert.ErrorIs(t, FillElement[float32](nil, nil), ErrNilHandle)
	assert.ErrorIs(t, FillMatrix[float32](nil, nil), ErrNilHandle)
}
