package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an absent id. Callers decide whether to surface 404.
var ErrNotFound = errors.New("not found")

// ConflictError is a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// ValidationError is a failed write-time check, e.g. a reference to an
// entity that does not exist.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
