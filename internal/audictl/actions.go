package audictl

import (
	"github.com/openiov/audictl/pkg/audi"
)

// Action describes one dispatchable vehicle action: its service name and
// whether it needs the security PIN before any I/O.
type Action struct {
	Name        string
	RequiresPIN bool
}

// registry maps action names to their gating attributes. Lock/unlock and
// the pre-heater are physically consequential and demand the S-PIN.
var registry = map[string]Action{
	audi.ActionLock:               {Name: audi.ActionLock, RequiresPIN: true},
	audi.ActionUnlock:             {Name: audi.ActionUnlock, RequiresPIN: true},
	audi.ActionPreheaterStart:     {Name: audi.ActionPreheaterStart, RequiresPIN: true},
	audi.ActionPreheaterStop:      {Name: audi.ActionPreheaterStop, RequiresPIN: true},
	audi.ActionClimateStart:       {Name: audi.ActionClimateStart},
	audi.ActionClimateStop:        {Name: audi.ActionClimateStop},
	audi.ActionChargeStart:        {Name: audi.ActionChargeStart},
	audi.ActionSetChargeTarget:    {Name: audi.ActionSetChargeTarget},
	audi.ActionSetChargingMode:    {Name: audi.ActionSetChargingMode},
	audi.ActionWindowHeatingStart: {Name: audi.ActionWindowHeatingStart},
	audi.ActionWindowHeatingStop:  {Name: audi.ActionWindowHeatingStop},
	audi.ActionRefreshData:        {Name: audi.ActionRefreshData},
}

// LookupAction resolves an action name against the registry.
func LookupAction(name string) (Action, bool) {
	a, ok := registry[name]
	return a, ok
}
