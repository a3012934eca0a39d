package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType reports a value of the wrong shape (non-numeric price,
	// non-integer count, non-boolean flag, non-sequence bill input, ...).
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidValue reports a value of the right shape outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// ValidationError identifies the offending field and the violated constraint.
type ValidationError struct {
	Field  string
	Kind   error // ErrInvalidType or ErrInvalidValue
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func invalidType(field, reason string) error {
	return &ValidationError{Field: field, Kind: ErrInvalidType, Reason: reason}
}

func invalidValue(field, reason string) error {
	return &ValidationError{Field: field, Kind: ErrInvalidValue, Reason: reason}
}
