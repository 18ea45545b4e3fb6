package marshal

import (
	"reflect"

	"github.com/born-ml/fieldkit/internal/field"
)

// isNil reports whether a handle is nil, including a nil pointer, map,
// slice or func stored in a non-nil interface.
func isNil(h any) bool {
	if h == nil {
		return true
	}
	switch v := reflect.ValueOf(h); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// checkExpanded validates that a buffer has the field's shape followed by
// the given trailing extents.
func checkExpanded(op string, fieldShape, bufShape field.Shape, trailing ...int) error {
	want := fieldShape.Append(trailing...)
	if len(bufShape) != len(want) {
		return bindError(op, "buffer", ErrRankMismatch,
			"field rank %d needs buffer rank %d, got %d", len(fieldShape), len(want), len(bufShape))
	}
	if !bufShape.Equal(want) {
		return bindError(op, "buffer", ErrShapeMismatch, "want %v, got %v", want, bufShape)
	}
	return nil
}

func checkKind(op, operand string, l field.Layout, kinds ...field.Kind) error {
	for _, k := range kinds {
		if l.Kind() == k {
			return nil
		}
	}
	return bindError(op, operand, ErrLayoutMismatch, "%s elements are not supported", l)
}
