package marshal

import (
	"github.com/born-ml/fieldkit/internal/field"
)

// Deactivate removes every currently active index of f from its active set.
func Deactivate(f field.Deactivator, opts ...Option) error {
	const op = "deactivate"
	if isNil(f) {
		return bindError(op, "field", ErrNilHandle, "")
	}

	run(op, f.Active(), buildOptions(opts), f.Deactivate)
	return nil
}

// DeactivateDynamic deactivates f through the active set of its parent,
// clearing the child range under every active parent index.
func DeactivateDynamic(f field.Child, opts ...Option) error {
	const op = "deactivate_dynamic"
	if isNil(f) {
		return bindError(op, "field", ErrNilHandle, "")
	}
	parent := f.Parent()
	if isNil(parent) {
		return bindError(op, "parent", ErrNilHandle, "")
	}
	if !f.Shape().HasPrefix(parent.Shape()) {
		return bindError(op, "parent", ErrShapeMismatch,
			"parent shape %v is not a prefix of %v", parent.Shape(), f.Shape())
	}

	run(op, parent.Active(), buildOptions(opts), f.Deactivate)
	return nil
}
