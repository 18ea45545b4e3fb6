package marshal

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/fieldkit/internal/field"
)

// Fill writes v to every component of every active element of f.
func Fill[T field.Numeric](f field.Field[T], v T, opts ...Option) error {
	const op = "fill"
	if isNil(f) {
		return bindError(op, "field", ErrNilHandle, "")
	}

	size := f.Layout().Size()
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		for c := 0; c < size; c++ {
			f.Set(idx, c, v)
		}
	})
	return nil
}

// FillElement writes the composite element elem to every active index of f.
// elem must hold exactly Layout().Size() components.
func FillElement[T field.Numeric](f field.Field[T], elem []T, opts ...Option) error {
	const op = "fill"
	if isNil(f) {
		return bindError(op, "field", ErrNilHandle, "")
	}
	layout := f.Layout()
	if len(elem) != layout.Size() {
		return bindError(op, "value", ErrInvalidValue,
			"layout %s needs %d components, got %d", layout, layout.Size(), len(elem))
	}

	val := make([]T, len(elem))
	copy(val, elem)
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		for c, v := range val {
			f.Set(idx, c, v)
		}
	})
	return nil
}

// FillMatrix broadcasts the n×m table values to every active element of f.
func FillMatrix[T field.Numeric](f field.Field[T], values [][]T, opts ...Option) error {
	const op = "fill_matrix"
	if isNil(f) {
		return bindError(op, "field", ErrNilHandle, "")
	}
	layout := f.Layout()
	if err := checkTable(op, layout, len(values), func(p int) int { return len(values[p]) }); err != nil {
		return err
	}

	table := make([]T, layout.Size())
	for p, row := range values {
		copy(table[p*layout.M():], row)
	}
	return fillTable(op, f, table, opts)
}

// FillMatrixFrom broadcasts a gonum matrix to every active element of f.
// Values are cast from float64 to T.
func FillMatrixFrom[T field.Numeric](f field.Field[T], values mat.Matrix, opts ...Option) error {
	const op = "fill_matrix"
	if isNil(f) || isNil(values) {
		return bindError(op, "field", ErrNilHandle, "")
	}
	layout := f.Layout()
	r, c := values.Dims()
	if err := checkTable(op, layout, r, func(int) int { return c }); err != nil {
		return err
	}

	conv := caster[float64, T]()
	table := make([]T, layout.Size())
	for p := 0; p < r; p++ {
		for q := 0; q < c; q++ {
			table[layout.Component(p, q)] = conv(values.At(p, q))
		}
	}
	return fillTable(op, f, table, opts)
}

func checkTable(op string, layout field.Layout, rows int, cols func(p int) int) error {
	if rows != layout.N() {
		return bindError(op, "values", ErrInvalidValue, "layout %s needs %d rows, got %d", layout, layout.N(), rows)
	}
	for p := 0; p < rows; p++ {
		if n := cols(p); n != layout.M() {
			return bindError(op, "values", ErrInvalidValue, "layout %s needs %d columns, row %d has %d", layout, layout.M(), p, n)
		}
	}
	return nil
}

func fillTable[T field.Numeric](op string, f field.Field[T], table []T, opts []Option) error {
	layout := f.Layout()
	n, m := layout.N(), layout.M()
	run(op, f.Active(), buildOptions(opts), func(idx field.Index) {
		for p := 0; p < n; p++ {
			for q := 0; q < m; q++ {
				c := p*m + q
				f.Set(idx, c, table[c])
			}
		}
	})
	return nil
}
