package command

import (
	"fmt"
)

// PreconditionError reports a statically checkable requirement that was not
// met. The dispatch is never invoked.
type PreconditionError struct {
	Requirement string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s required for this action", e.Requirement)
}

// ValidationError reports a parameter outside its allowed range or shape.
// The dispatch is never invoked.
type ValidationError struct {
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.Constraint)
}

// ActionError reports a dispatch that was rejected by the service or raised
// a fault.
type ActionError struct {
	Action string
	Cause  error
}

func (e *ActionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("action %s failed: %v", e.Action, e.Cause)
	}
	return fmt.Sprintf("action %s failed", e.Action)
}

func (e *ActionError) Unwrap() error {
	return e.Cause
}
