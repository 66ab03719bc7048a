package service

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingField    = errors.New("missing required field")
	ErrNoSelection     = errors.New("no task selected")
	ErrEmptyStatus     = errors.New("status is empty")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrUnknownPriority = errors.New("unknown priority")
	ErrStoreNil        = errors.New("task store is nil")
	ErrLoopNil         = errors.New("event loop is nil")
)

// MissingFieldError lists the create-task fields that were empty.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return ErrMissingField.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldError) Unwrap() []error {
	return []error{ErrMissingField, ErrInvalidInput}
}
