package storage

import "errors"

var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource conflict (e.g., duplicate key)")

// ConflictError names the unique constraint that was violated so callers
// can tell a duplicate username from a duplicate slug.
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	return "conflict on " + e.Constraint + ": " + e.Err.Error()
}

func (e *ConflictError) Unwrap() []error { return []error{ErrConflict, e.Err} }

// ConflictConstraint returns the violated constraint name, or "" if err is not a conflict.
func ConflictConstraint(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}
