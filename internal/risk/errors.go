package risk

import (
	"errors"
	"fmt"
)

// ErrInvalidBloodPressure is wrapped by every ValidationError raised for the
// bloodPressure field.
var ErrInvalidBloodPressure = errors.New("invalid blood pressure")

// ValidationError reports a metrics field that cannot be evaluated.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalidBloodPressure(raw, reason string) *ValidationError {
	return &ValidationError{
		Field:  "bloodPressure",
		Value:  raw,
		Reason: reason,
		Err:    ErrInvalidBloodPressure,
	}
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
