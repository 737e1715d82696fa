package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidStatus     = fmt.Errorf("%w: invalid application status", ErrValidation)
	ErrAlreadyApplied    = fmt.Errorf("%w: already applied for this job", ErrConflict)
	ErrDuplicateUsername = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrDuplicateEmail    = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrDuplicateSlug     = fmt.Errorf("%w: slug already exists", ErrConflict)
)

// User-facing messages shared with the handlers.
const (
	MsgAlreadyApplied     = "You have already applied for this job."
	MsgDuplicateUsername  = "A user with that username already exists."
	MsgDuplicateEmail     = "A user with that email already exists."
	MsgDuplicateSlug      = "Job with this Slug already exists."
	MsgPasswordMismatch   = "The two password fields didn't match."
	MsgInvalidCredentials = "Invalid username or password."
)

// FieldErrors maps a field name to a human-readable problem with it.
// It matches ErrValidation with errors.Is.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (f FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// fieldError wraps sentinel together with a single field message so callers
// can match the sentinel and still extract FieldErrors with errors.As.
func fieldError(sentinel error, field, msg string) error {
	return fmt.Errorf("%w: %w", sentinel, FieldErrors{field: msg})
}
