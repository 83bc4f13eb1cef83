package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrPatientNotFound signals a patient id absent from the catalog.
	ErrPatientNotFound = errors.New("patient not found")
	// ErrInvalidQuery signals a query the demo refuses to rank.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a catalog record that failed validation.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrVectorDimMismatch signals a preference vector of the wrong length.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")

	// ErrRunInProgress signals that the caller already has a staged run in flight.
	ErrRunInProgress = errors.New("staged run already in progress")
	// ErrRunCanceled signals that a staged run was abandoned before completion.
	ErrRunCanceled = errors.New("staged run canceled")
	// ErrRunFailed signals that a staged run could not complete.
	ErrRunFailed = errors.New("staged run failed")
)

// StepError wraps a run failure with the step that was active when it happened.
type StepError struct {
	Index int
	Label string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Index, e.Label, e.Err.Error())
}

func (e *StepError) Unwrap() error { return e.Err }

// NewStepError creates a step error.
func NewStepError(index int, label string, err error) error {
	return &StepError{Index: index, Label: label, Err: err}
}
