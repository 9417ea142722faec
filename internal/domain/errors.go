package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation indicates caller-supplied data failed a structural rule.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced plan, activity, completion or user
	// does not exist in the current collection.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates the entity's state forbids the operation.
	ErrInvalidState = errors.New("invalid state")
)

// FieldError names one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Has reports whether field is among the invalid fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Add records an invalid field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns e when it holds at least one field, otherwise nil.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError identifies the missing entity by numeric ID, or by Key when
// the lookup was by name.
type NotFoundError struct {
	Entity string
	ID     int64
	Key    string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidStateError struct {
	Entity string
	ID     int64
	Key    string
	State  string
	Op     string
}

func (e *InvalidStateError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cannot %s %s %q: already %s", e.Op, e.Entity, e.Key, e.State)
	}
	return fmt.Sprintf("cannot %s %s %d: already %s", e.Op, e.Entity, e.ID, e.State)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// Entity names used in NotFoundError and InvalidStateError.
const (
	EntityPlan       = "plan"
	EntityActivity   = "activity"
	EntityCompletion = "completion"
	EntityUser       = "user"
)
