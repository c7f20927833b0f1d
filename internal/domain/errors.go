package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every error raised for an operation on an absent activity.
	ErrNotFound = errors.New("activity not found")
	// ErrInternal is matched by every record store failure surfaced by the service.
	ErrInternal = errors.New("internal error")
)

// NotFoundError reports that no activity exists for ID.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Activity with id %d not found in database", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InternalError wraps a record store failure raised while running Op.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrInternal.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

// Is lets errors.Is(err, ErrInternal) match.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err signals a missing activity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInternal reports whether err signals a record store failure.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func internal(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}
