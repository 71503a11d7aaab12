package wizard

import (
	"errors"
	"fmt"

	"visentry-backend/validate"
)

var (
	ErrWrongStep       = errors.New("action not allowed at the current step")
	ErrIncomplete      = errors.New("check-in is incomplete")
	ErrSessionNotFound = errors.New("check-in session not found")
)

// ValidationError carries the per-field messages of a rejected step.
type ValidationError struct {
	Step   Step
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Step, e.Fields.Error())
}

// IncompleteError reports an upstream section that must be filled first.
// The machine has already moved to Step.
type IncompleteError struct {
	Step    Step
	Message string
}

func (e *IncompleteError) Error() string {
	return e.Message
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

func wrongStep(current, want Step) error {
	return fmt.Errorf("%w: at %s, expected %s", ErrWrongStep, current, want)
}
