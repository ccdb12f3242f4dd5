package engine

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrInvalidInput is the sentinel behind InvalidInputError, for eris.Is checks.
var ErrInvalidInput = eris.New("engine: invalid input")

// ErrCalculation wraps unexpected arithmetic failures. A calculation that
// produces a non-finite or negative monetary value indicates an internal
// invariant break, never a caller bug.
var ErrCalculation = eris.New("engine: calculation failed")

// InvalidInputError reports a malformed or missing required field. It is
// returned before any clamping happens; out-of-range values on well-typed
// fields are clamped, not rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("engine: invalid input: field %q: %s", e.Field, e.Reason)
}

// Is makes InvalidInputError match ErrInvalidInput under errors.Is/eris.Is.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
