package models

import (
	"errors"
	"fmt"
)

// ValidationError flags a malformed field before any store call is made.
// It is always recoverable: the caller keeps its draft and may resubmit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
