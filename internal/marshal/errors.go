package marshal

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Bind-time errors. Every kernel validates its handles before touching
// any element, so a returned error means nothing was written.
var (
	ErrNilHandle      = errors.New("nil field or buffer handle")
	ErrRankMismatch   = errors.New("rank mismatch")
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrLayoutMismatch = errors.New("element layout mismatch")
	ErrInvalidValue   = errors.New("invalid fill value")
	ErrEmpty          = errors.New("empty field sequence")
)

// BindError describes a precondition failure detected when handles are
// bound to a kernel.
type BindError struct {
	Op      string // Kernel name (e.g. "copy_to_buffer")
	Operand string // Offending operand (e.g. "buffer")
	Details string // Additional details
	Err     error  // One of the Err* sentinels
}

// Error implements the error interface.
func (e *BindError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %v: %s", e.Op, e.Operand, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Operand, e.Err)
}

// Unwrap returns the sentinel error.
func (e *BindError) Unwrap() error {
	return e.Err
}

func bindError(op, operand string, err error, format string, args ...any) error {
	be := &BindError{
		Op:      op,
		Operand: operand,
		Details: fmt.Sprintf(format, args...),
		Err:     err,
	}
	Logger().Debug("bind failed", zap.String("op", op), zap.Error(be))
	return be
}
