package field

import "fmt"

// Kind is the element kind of a field.
type Kind int

// Element kinds.
const (
	KindScalar Kind = iota
	KindVector
	KindMatrix
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// Layout describes the shape of one field element.
// A vector of n components is laid out as an n×1 matrix.
type Layout struct {
	kind Kind
	n, m int
}

// Scalar returns the layout of a single-component element.
func Scalar() Layout {
	return Layout{kind: KindScalar, n: 1, m: 1}
}

// Vector returns the layout of an n-component vector element.
// Panics if n < 1.
func Vector(n int) Layout {
	if n < 1 {
		panic(fmt.Sprintf("vector layout requires n >= 1, got %d", n))
	}
	return Layout{kind: KindVector, n: n, m: 1}
}

// Matrix returns the layout of an n×m matrix element.
// Panics if n < 1 or m < 1.
func Matrix(n, m int) Layout {
	if n < 1 || m < 1 {
		panic(fmt.Sprintf("matrix layout requires n, m >= 1, got %dx%d", n, m))
	}
	return Layout{kind: KindMatrix, n: n, m: m}
}

// Kind returns the element kind.
func (l Layout) Kind() Kind { return l.kind }

// N returns the number of rows (vector components).
func (l Layout) N() int { return l.n }

// M returns the number of columns (1 for scalars and vectors).
func (l Layout) M() int { return l.m }

// Size returns the number of components per element.
func (l Layout) Size() int { return l.n * l.m }

// Component returns the flat component offset of (p, q).
func (l Layout) Component(p, q int) int { return p*l.m + q }

// String returns a human-readable description of the layout.
func (l Layout) String() string {
	switch l.kind {
	case KindScalar:
		return "scalar"
	case KindVector:
		return fmt.Sprintf("vector(%d)", l.n)
	default:
		return fmt.Sprintf("matrix(%d,%d)", l.n, l.m)
	}
}
