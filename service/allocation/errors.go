package allocation

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update/delete/lookup targets an order
// number or main id with no matching active row. It maps a zero-rows-affected
// result, not a storage failure.
var ErrNotFound = errors.New("allocation not found")

// ValidationError reports bad input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
