package pipeline

import (
	"errors"
	"fmt"
)

// Stage is a state of the question pipeline.
type Stage string

// Pipeline stages, in execution order. Each names the step still to run;
// StageDone is the only state in which both projections exist.
const (
	StageFetching    Stage = "fetching"
	StageFormatting  Stage = "formatting"
	StageSerializing Stage = "serializing"
	StageDone        Stage = "done"
)

// Progress categories
const (
	CategoryFetch     = "fetch"
	CategoryNormalize = "normalize"
	CategoryCuration  = "curation"
)

// StageDefinition describes one pipeline stage and its single successor.
type StageDefinition struct {
	Stage    Stage
	Category string
	Next     Stage
}

// StageRegistry holds the transition table. Every stage has exactly one
// successor; StageDone is terminal.
var StageRegistry = map[Stage]StageDefinition{
	StageFetching: {
		Stage:    StageFetching,
		Category: CategoryFetch,
		Next:     StageFormatting,
	},
	StageFormatting: {
		Stage:    StageFormatting,
		Category: CategoryNormalize,
		Next:     StageSerializing,
	},
	StageSerializing: {
		Stage:    StageSerializing,
		Category: CategoryNormalize,
		Next:     StageDone,
	},
}

// ErrStageOrder is matched by every *StageOrderError.
var ErrStageOrder = errors.New("pipeline stage out of order")

// StageOrderError reports an attempt to run a stage from the wrong state.
type StageOrderError struct {
	Want Stage
	Got  Stage
}

func (e *StageOrderError) Error() string {
	return fmt.Sprintf("%v: stage requires state %q, state is %q", ErrStageOrder, e.Want, e.Got)
}

func (e *StageOrderError) Unwrap() error {
	return ErrStageOrder
}

// Next returns the successor of s. StageDone and unknown stages have none.
func Next(s Stage) (Stage, bool) {
	def, ok := StageRegistry[s]
	if !ok {
		return "", false
	}
	return def.Next, true
}
