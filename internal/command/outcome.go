package command

// Outcome tags the terminal result of one command execution.
type Outcome string

const (
	// OutcomeSucceeded means the service accepted and executed the action.
	OutcomeSucceeded Outcome = "Succeeded"

	// OutcomeFailed means the dispatch was rejected or raised a fault.
	OutcomeFailed Outcome = "Failed"

	// OutcomeDisabled means the action is policy-blocked for this vehicle.
	// It is a valid, reportable state distinct from a failure.
	OutcomeDisabled Outcome = "Disabled"
)

// Request describes one vehicle command. Constructed per invocation from CLI
// input and treated as read-only.
type Request struct {
	// VIN identifies the target vehicle.
	VIN string

	// Action is the service action name, e.g. audi.ActionLock.
	Action string

	// Params carries validated action parameters passed to the dispatch.
	Params map[string]any

	// RequiresPIN marks physically consequential actions that need the
	// security PIN before any I/O happens.
	RequiresPIN bool
}
