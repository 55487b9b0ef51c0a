package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidGoalIndex = errors.New("goal index out of range")
	ErrInvalidItemIndex = errors.New("item index out of range")
	ErrInvalidDay       = errors.New("day out of range")
	ErrInvalidMonth     = errors.New("invalid month id")
	ErrMalformedState   = errors.New("malformed planner state")
)

// ValidationError reports caller input the planner rejects
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed read or write of the backing file
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// InternalError reports planner state that normalization cannot repair
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
