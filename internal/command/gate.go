// Package command owns the uniform command-execution contract: precondition
// check, parameter validation, dispatch, and outcome classification. Every
// vehicle action goes through the same pipeline; action code only supplies
// parameters and a dispatch closure.
package command

import (
	"context"
	"fmt"

	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/log"
)

// Dispatch invokes one action against the vehicle cloud service with
// already-validated parameters.
type Dispatch func(ctx context.Context) (audi.ActionStatus, error)

// Gate applies the execution contract. It is stateless across calls: each
// Execute is independent, and retry policy belongs to the caller, never here.
type Gate struct {
	creds  audi.Credentials
	logger log.Logger
}

// NewGate creates a gate bound to the session's resolved credentials.
func NewGate(creds audi.Credentials) *Gate {
	return &Gate{
		creds:  creds,
		logger: log.WithName("command"),
	}
}

// Execute runs precondition check, validation, dispatch and classification
// for one request. Precondition and validation failures return before any
// I/O; dispatch faults are classified as a Failed outcome with the cause
// attached.
func (g *Gate) Execute(ctx context.Context, req Request, dispatch Dispatch) (Outcome, error) {
	if req.RequiresPIN && !g.creds.HasSPIN() {
		g.logger.Debug("refusing action without security PIN", "action", req.Action, "vin", req.VIN)
		return OutcomeFailed, &PreconditionError{Requirement: "S-PIN"}
	}

	if err := validate(req); err != nil {
		return OutcomeFailed, err
	}

	status, err := dispatch(ctx)
	if err != nil {
		return OutcomeFailed, &ActionError{Action: req.Action, Cause: err}
	}

	switch status {
	case audi.ActionAccepted:
		return OutcomeSucceeded, nil

	case audi.ActionDisabled:
		// Only the data refresh action has a policy-disabled state; for
		// anything else the signal is unexpected and counts as a failure.
		if req.Action == audi.ActionRefreshData {
			return OutcomeDisabled, nil
		}
		g.logger.Warn("unexpected disabled status", "action", req.Action, "vin", req.VIN)
		return OutcomeFailed, &ActionError{
			Action: req.Action,
			Cause:  fmt.Errorf("service reported disabled for an action without a disabled state"),
		}

	default:
		return OutcomeFailed, &ActionError{Action: req.Action}
	}
}
