package dsa

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("no DSA questions found")

// NotFoundError reports a company missing from the table.
type NotFoundError struct {
	Company string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No DSA questions found for %s", e.Company)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// LoadError represents a failure to read or decode the table file
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load DSA table %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load DSA table %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
