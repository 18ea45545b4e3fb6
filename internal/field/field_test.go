package field

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func collect(seq func(func(Index) bool)) [][]int {
	var out [][]int
	for idx := range seq {
		out = append(out, slices.Clone(idx))
	}
	return out
}

func TestShapeBasics(t *testing.T) {
	s := Shape{2, 3, 4}

	assert.Equal(t, 3, s.Rank())
	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())
	assert.Equal(t, 1, Shape{}.NumElements(), "rank-0 shape has one element")
	assert.True(t, s.HasPrefix(Shape{2, 3}))
	assert.False(t, s.HasPrefix(Shape{3}))
	assert.Equal(t, Shape{2, 3, 4, 5}, s.Append(5))
	assert.Equal(t, Shape{2, 3, 4}, s, "Append must not modify the receiver")
}

func TestShapeValidate(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"rank0", Shape{}, false},
		{"positive", Shape{1, 7}, false},
		{"zero", Shape{3, 0}, true},
		{"negative", Shape{-1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShapeOffsetUnravel(t *testing.T) {
	s := Shape{2, 3, 4}
	idx := make(Index, 3)
	for off := 0; off < s.NumElements(); off++ {
		s.Unravel(off, idx)
		assert.Equal(t, off, s.Offset(idx))
	}

	assert.Panics(t, func() { s.Offset(Index{0, 3, 0}) })
	assert.Panics(t, func() { s.Offset(Index{0, 0}) })
	assert.False(t, s.Contains(Index{1, 2, 4}))
	assert.True(t, s.Contains(Index{1, 2, 3}))
}

func TestShapeIndices(t *testing.T) {
	got := collect(Shape{2, 2}.Indices())
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, got)

	// Restartable.
	assert.Len(t, collect(Shape{2, 2}.Indices()), 4)

	// Rank 0 yields the empty index once.
	assert.Equal(t, [][]int{{}}, collect(Shape{}.Indices()))

	// Early stop.
	n := 0
	for range (Shape{10}).Indices() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, 1, Scalar().Size())
	assert.Equal(t, KindScalar, Scalar().Kind())

	v := Vector(3)
	assert.Equal(t, 3, v.N())
	assert.Equal(t, 1, v.M())
	assert.Equal(t, 3, v.Size())
	assert.Equal(t, "vector(3)", v.String())

	m := Matrix(2, 3)
	assert.Equal(t, 6, m.Size())
	assert.Equal(t, 5, m.Component(1, 2))
	assert.Equal(t, "matrix(2,3)", m.String())

	assert.NotEqual(t, Vector(2), Matrix(2, 1), "kinds differ even with equal bounds")
	assert.Panics(t, func() { Vector(0) })
	assert.Panics(t, func() { Matrix(1, 0) })
}

func TestTypeOf(t *testing.T) {
	type celsius float64

	assert.Equal(t, Float32, TypeOf[float32]())
	assert.Equal(t, Float64, TypeOf[float64]())
	assert.Equal(t, Float16, TypeOf[float16.Float16]())
	assert.Equal(t, Uint16, TypeOf[uint16]())
	assert.Equal(t, Int8, TypeOf[int8]())
	assert.Equal(t, Uint64, TypeOf[uint64]())
	assert.Equal(t, Float64, TypeOf[celsius]())

	assert.Equal(t, 2, Float16.Size())
	assert.True(t, Float16.IsFloat())
	assert.False(t, Int32.IsFloat())
	assert.Equal(t, "float16", Float16.String())
}

func TestDense(t *testing.T) {
	d, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{3}, Vector(2))
	require.NoError(t, err)

	assert.Equal(t, float32(3), d.At(Index{1}, 0))
	assert.Equal(t, float32(4), d.At(Index{1}, 1))
	assert.Equal(t, []float32{5, 6}, d.Element(Index{2}))

	d.Set(Index{0}, 1, 9)
	assert.Equal(t, float32(9), d.Data()[1])

	assert.Len(t, collect(d.Active()), 3)
	assert.Panics(t, func() { d.At(Index{0}, 2) })

	_, err = FromSlice([]float32{1, 2}, Shape{3}, Vector(2))
	assert.Error(t, err)
	_, err = NewDense[float32](Shape{0}, Scalar())
	assert.Error(t, err)
}

func TestDenseGrad(t *testing.T) {
	d := Zeros[float64](Shape{}, Scalar())
	assert.Nil(t, d.Grad(), "no gradient until required")

	d.RequireGrad()
	g := d.Grad()
	require.NotNil(t, g)
	assert.Equal(t, Shape{}, g.Shape())

	g.Set(Index{}, 0, 2)
	assert.Same(t, g, d.RequireGrad().Grad(), "RequireGrad keeps the existing gradient")
	assert.Equal(t, 2.0, d.Grad().At(Index{}, 0))
}

func TestSparse(t *testing.T) {
	s, err := NewSparse[int32](Shape{4, 4}, Scalar())
	require.NoError(t, err)
	assert.Empty(t, collect(s.Active()))

	s.Set(Index{3, 1}, 0, 7)
	s.Set(Index{0, 2}, 0, 5)
	s.Activate(Index{1, 1})

	assert.Equal(t, 3, s.NumActive())
	assert.Equal(t, [][]int{{0, 2}, {1, 1}, {3, 1}}, collect(s.Active()), "row-major snapshot")
	assert.True(t, s.IsActive(Index{1, 1}))
	assert.Equal(t, int32(0), s.At(Index{1, 1}, 0), "Activate keeps the value")

	s.Deactivate(Index{3, 1})
	assert.False(t, s.IsActive(Index{3, 1}))
	assert.Equal(t, int32(0), s.At(Index{3, 1}, 0), "deactivation resets the element")
	assert.Equal(t, 2, s.NumActive())
}

func TestSparseDeactivateDuringEnumeration(t *testing.T) {
	s, err := NewSparse[float32](Shape{8}, Vector(2))
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		s.Set(Index{i}, 0, 1)
	}

	for idx := range s.Active() {
		s.Deactivate(idx)
	}
	assert.Equal(t, 0, s.NumActive())
}

func TestDynamic(t *testing.T) {
	d, err := NewDynamic[float32](Shape{3}, 4, Scalar())
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 4}, d.Shape())
	assert.Equal(t, Shape{3}, d.Parent().Shape())
	assert.Len(t, collect(d.Parent().Active()), 3)

	require.NoError(t, d.Append(Index{0}, 1))
	require.NoError(t, d.Append(Index{0}, 2))
	require.NoError(t, d.Append(Index{2}, 3))
	assert.Error(t, d.Append(Index{2}, 1, 2), "wrong component count")

	assert.Equal(t, 2, d.Len(Index{0}))
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {2, 0}}, collect(d.Active()))
	assert.Equal(t, float32(2), d.At(Index{0, 1}, 0))

	d.Set(Index{1, 2}, 0, 8)
	assert.Equal(t, 3, d.Len(Index{1}), "Set grows the list to cover the index")

	d.Deactivate(Index{0})
	assert.Equal(t, 0, d.Len(Index{0}))
	assert.Equal(t, float32(0), d.At(Index{0, 0}, 0))

	d.Deactivate(Index{1, 1})
	assert.Equal(t, 1, d.Len(Index{1}), "full index truncates the list at its slot")
	assert.Equal(t, float32(0), d.At(Index{1, 1}, 0))

	d.Deactivate(Index{1, 0})
	assert.Equal(t, 0, d.Len(Index{1}))
	assert.Panics(t, func() { d.Deactivate(Index{}) })
}

func TestDynamicDeactivateSlotsAreDisjoint(t *testing.T) {
	d, err := NewDynamic[int32](Shape{2}, 3, Vector(2))
	require.NoError(t, err)
	for k := int32(0); k < 3; k++ {
		require.NoError(t, d.Append(Index{0}, 10+k, 20+k))
		require.NoError(t, d.Append(Index{1}, 30+k, 40+k))
	}

	d.Deactivate(Index{0, 2})
	assert.Equal(t, 2, d.Len(Index{0}))
	assert.Equal(t, []int32{11, 21}, []int32{d.At(Index{0, 1}, 0), d.At(Index{0, 1}, 1)},
		"other slots of the cell are untouched")
	assert.Equal(t, int32(0), d.At(Index{0, 2}, 1))
	assert.Equal(t, 3, d.Len(Index{1}), "other cells are untouched")

	// Every slot of a full sweep ends up cleared.
	for idx := range d.Active() {
		d.Deactivate(idx)
	}
	assert.Empty(t, collect(d.Active()))
	for idx := range d.Shape().Indices() {
		assert.Equal(t, int32(0), d.At(idx, 0))
		assert.Equal(t, int32(0), d.At(idx, 1))
	}
}

func TestDynamicCapacity(t *testing.T) {
	d, err := NewDynamic[int64](Shape{1}, 2, Vector(2))
	require.NoError(t, err)
	require.NoError(t, d.Append(Index{0}, 1, 2))
	require.NoError(t, d.Append(Index{0}, 3, 4))
	assert.Error(t, d.Append(Index{0}, 5, 6))

	_, err = NewDynamic[int64](Shape{1}, 0, Scalar())
	assert.Error(t, err)
}
