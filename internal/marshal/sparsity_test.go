package marshal

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/fieldkit/internal/field"
)

func count(seq iter.Seq[field.Index]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

func TestDeactivate(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		s, err := field.NewSparse[float32](field.Shape{8, 8}, field.Vector(2))
		require.NoError(t, err)
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j += 2 {
				s.Set(field.Index{i, j}, 1, 1)
			}
		}
		require.Equal(t, 32, s.NumActive())

		require.NoError(t, Deactivate(s, opt))
		assert.Equal(t, 0, count(s.Active()))
		assert.Equal(t, float32(0), s.At(field.Index{0, 0}, 1))
	})
}

func TestDeactivateDynamic(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		d, err := field.NewDynamic[int32](field.Shape{4, 3}, 5, field.Scalar())
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			for j := 0; j < 3; j++ {
				for k := 0; k < i+j; k++ {
					require.NoError(t, d.Append(field.Index{i, j}, int32(k)))
				}
			}
		}
		require.NotZero(t, count(d.Active()))

		require.NoError(t, DeactivateDynamic(d, opt))
		assert.Equal(t, 0, count(d.Active()))
		assert.Equal(t, 0, d.Len(field.Index{3, 2}))

		// Lists can grow again after deactivation.
		require.NoError(t, d.Append(field.Index{1, 1}, 9))
		assert.Equal(t, 1, count(d.Active()))
	})
}

func TestDeactivate_DynamicSlots(t *testing.T) {
	eachMode(t, func(t *testing.T, opt Option) {
		d, err := field.NewDynamic[float32](field.Shape{3}, 8, field.Vector(2))
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			for k := 0; k < 8; k++ {
				require.NoError(t, d.Append(field.Index{i}, 1, 2))
			}
		}

		require.NoError(t, Deactivate(d, opt))
		assert.Equal(t, 0, count(d.Active()))
		for idx := range d.Shape().Indices() {
			assert.Equal(t, float32(0), d.At(idx, 0))
			assert.Equal(t, float32(0), d.At(idx, 1))
		}
	})
}

// flatParent reports a parent shape that is not a prefix of its child.
type flatParent struct {
	*field.Dynamic[float32]
}

func (p flatParent) Parent() field.Domain {
	return field.Zeros[float32](field.Shape{7}, field.Scalar())
}

func TestDeactivateDynamic_BindErrors(t *testing.T) {
	d, err := field.NewDynamic[float32](field.Shape{2}, 2, field.Scalar())
	require.NoError(t, err)
	require.NoError(t, d.Append(field.Index{0}, 1))

	assert.ErrorIs(t, DeactivateDynamic(flatParent{d}), ErrShapeMismatch)
	assert.Equal(t, 1, d.Len(field.Index{0}), "nothing may be deactivated on bind failure")

	assert.ErrorIs(t, DeactivateDynamic(nil), ErrNilHandle)
	assert.ErrorIs(t, Deactivate(nil), ErrNilHandle)
}
