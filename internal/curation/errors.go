package curation

import (
	"errors"
	"fmt"
)

// ErrNoClient is the LLM failure reported when the Curator has no client.
var ErrNoClient = errors.New("no LLM client configured")

// RepairError is returned when the original payload cannot be repaired locally.
type RepairError struct {
	Message string
	Cause   error
}

func (e *RepairError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repair failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("repair failed: %s", e.Message)
}

func (e *RepairError) Unwrap() error {
	return e.Cause
}
