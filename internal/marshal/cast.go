package marshal

import (
	"math"

	"github.com/x448/float16"

	"github.com/born-ml/fieldkit/internal/field"
)

// caster returns the element conversion from S to D.
// The conversion is chosen once per call, never per element:
//   - float16 on either side goes through float32
//   - float to integer saturates (NaN becomes 0), then truncates
//   - everything else is a plain Go conversion
func caster[S, D field.Numeric]() func(S) D {
	from, to := field.TypeOf[S](), field.TypeOf[D]()

	switch {
	case from == to:
		return func(s S) D { return D(s) }
	case from == field.Float16:
		toD := caster[float32, D]()
		return func(s S) D { return toD(float16.Float16(s).Float32()) }
	case to == field.Float16:
		toF := caster[S, float32]()
		return func(s S) D { return D(float16.Fromfloat32(toF(s))) }
	case from.IsFloat() && !to.IsFloat():
		lo, hi := intRange(to)
		return func(s S) D { return D(saturate(float64(s), lo, hi)) }
	default:
		return func(s S) D { return D(s) }
	}
}

// Cast converts v from S to D with the same rules the kernels use.
func Cast[S, D field.Numeric](v S) D {
	return caster[S, D]()(v)
}

// saturate clamps v into [lo, hi]. NaN maps to 0.
func saturate(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= lo:
		return lo
	case v >= hi:
		return hi
	default:
		return v
	}
}

// intRange returns the float64 bounds of an integer type. Both bounds
// convert to the integer type without overflow.
func intRange(dt field.DataType) (lo, hi float64) {
	switch dt {
	case field.Int8:
		return -128, 127
	case field.Int16:
		return -32768, 32767
	case field.Int32:
		return -2147483648, 2147483647
	case field.Int64:
		return -9223372036854775808, 9223372036854774784 // largest float64 below 2^63
	case field.Uint8:
		return 0, 255
	case field.Uint16:
		return 0, 65535
	case field.Uint32:
		return 0, 4294967295
	case field.Uint64:
		return 0, 18446744073709549568 // largest float64 below 2^64
	default:
		panic("cast: not an integer type: " + dt.String())
	}
}
