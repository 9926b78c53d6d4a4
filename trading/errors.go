package trading

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound marks lookups whose subject does not exist on the
// exchange, such as an unknown symbol. Match with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a request that violates a precondition
// before it reaches the exchange: quantity below the instrument
// minimum, a limit order without a price, nothing to close.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// OperationError reports a remote call that failed or returned an
// unexpected shape. Op names the operation that was attempted.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string { return fmt.Sprintf("failed to %s: %v", e.Op, e.Err) }

func (e *OperationError) Unwrap() error { return e.Err }

func OperationFailed(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsOperation(err error) bool {
	var oe *OperationError
	return errors.As(err, &oe)
}
