// Package common defines sentinel errors and error kinds shared by the
// persistence layer. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Precondition errors, raised before any store access.
	ErrInvalidArgument = errors.New("invalid argument")

	// The store did not hand back an identity for an inserted row.
	ErrNoGeneratedKey = errors.New("no generated key returned")
)

// PersistenceError is the single failure kind surfaced by services when a
// statement or connection fails. Op describes the attempted operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MappingError reports a result set whose shape does not match the expected
// columns, e.g. a required root column that was not returned or was NULL.
// It is a schema/programming error and is never retried.
type MappingError struct {
	Entity string
	Column string
	Err    error
}

func (e *MappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("map %s: column %q: %v", e.Entity, e.Column, e.Err)
	}
	return fmt.Sprintf("map %s: required column %q is missing", e.Entity, e.Column)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}

// Invalid builds a precondition error wrapping ErrInvalidArgument.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
