package command

import (
	"fmt"

	"github.com/openiov/audictl/pkg/audi"
)

// Target state-of-charge bounds accepted by the service, inclusive.
const (
	minChargeTarget = 20
	maxChargeTarget = 100
)

// validate rejects out-of-range or unrecognized parameters before any I/O.
// Actions without parameter constraints pass through.
func validate(req Request) error {
	switch req.Action {
	case audi.ActionSetChargeTarget:
		target, ok := intParam(req.Params, "target")
		if !ok {
			return &ValidationError{Constraint: "target charge percentage is required"}
		}
		if target < minChargeTarget || target > maxChargeTarget {
			return &ValidationError{
				Constraint: fmt.Sprintf("target charge must be between %d%% and %d%%, got %d%%",
					minChargeTarget, maxChargeTarget, target),
			}
		}

	case audi.ActionSetChargingMode:
		mode, _ := req.Params["mode"].(string)
		if mode != audi.ChargingModeManual && mode != audi.ChargingModeTimer {
			return &ValidationError{
				Constraint: fmt.Sprintf("charging mode must be %q or %q, got %q",
					audi.ChargingModeManual, audi.ChargingModeTimer, mode),
			}
		}

	case audi.ActionPreheaterStart:
		duration, ok := intParam(req.Params, "duration")
		if !ok || duration <= 0 {
			return &ValidationError{Constraint: "pre-heater duration must be a positive number of minutes"}
		}
	}

	return nil
}

// intParam reads an integer parameter regardless of how the caller stored it.
func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
