// Package audictl is the invoker: it resolves credentials, performs one
// login, routes the requested action through the command gate and renders
// the outcome.
package audictl

import (
	"context"
	"fmt"
	"io"

	"github.com/openiov/audictl/internal/auth"
	"github.com/openiov/audictl/internal/command"
	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/log"
)

// CLI is one invocation's worth of state: one session, one account, at most
// one command execution.
type CLI struct {
	client  audi.Client
	creds   audi.Credentials
	account *audi.Account
	session *auth.Session
	gate    *command.Gate
	out     io.Writer
}

// SetOutput redirects rendered output, used by tests.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// Login performs the one login sequence of this invocation. The session
// resolves retryable conditions internally; only the terminal outcome
// surfaces here.
func (c *CLI) Login(ctx context.Context) error {
	outcome := c.session.Login(ctx)

	switch outcome.Kind {
	case auth.OutcomeSuccess:
		return nil
	case auth.OutcomeThrottled:
		// Distinct, actionable message: waiting is the only fix.
		return outcome.Err
	default:
		return outcome.Err
	}
}

// RunAction executes one named vehicle action through the command gate and
// renders the outcome. Succeeded and Disabled both render as a normal
// result; Disabled is reported distinctly, not as an error.
func (c *CLI) RunAction(ctx context.Context, name, vin string, params map[string]any) error {
	action, ok := LookupAction(name)
	if !ok {
		return fmt.Errorf("unknown action %q", name)
	}

	req := command.Request{
		VIN:         vin,
		Action:      action.Name,
		Params:      params,
		RequiresPIN: action.RequiresPIN,
	}

	dispatch := func(ctx context.Context) (audi.ActionStatus, error) {
		return c.client.ExecuteAction(ctx, vin, action.Name, params)
	}

	log.Debug("executing vehicle action", "action", name, "vin", vin)
	outcome, err := c.gate.Execute(ctx, req, dispatch)

	switch outcome {
	case command.OutcomeSucceeded:
		fmt.Fprintf(c.out, "%s: succeeded\n", name)
		return nil
	case command.OutcomeDisabled:
		fmt.Fprintf(c.out, "%s: disabled for this vehicle\n", name)
		return nil
	default:
		return err
	}
}

// ListVehicles refreshes and renders every vehicle of the account.
func (c *CLI) ListVehicles(ctx context.Context, raw bool) error {
	if err := c.account.Update(ctx, nil); err != nil {
		return err
	}

	vehicles := c.account.Vehicles()
	if len(vehicles) == 0 {
		fmt.Fprintln(c.out, "No vehicles found.")
		return nil
	}

	if raw {
		return printJSON(c.out, vehicles)
	}
	return renderVehicles(c.out, vehicles)
}

// Status refreshes and renders the status snapshot of one vehicle.
func (c *CLI) Status(ctx context.Context, vin string, raw bool) error {
	if err := c.account.Update(ctx, []string{vin}); err != nil {
		return err
	}

	vehicle, ok := c.account.Vehicle(vin)
	if !ok {
		return c.unknownVIN(vin)
	}

	status, ok := c.account.Status(vin)
	if !ok {
		return fmt.Errorf("no status available for %s", vin)
	}

	if raw {
		return printJSON(c.out, status)
	}

	if err := renderVehicles(c.out, []audi.Vehicle{vehicle}); err != nil {
		return err
	}
	return renderStatus(c.out, status)
}

// TripData fetches and renders the trip statistics of one vehicle.
func (c *CLI) TripData(ctx context.Context, vin string, raw bool) error {
	trips, err := c.client.TripData(ctx, vin)
	if err != nil {
		return err
	}

	if len(trips) == 0 {
		fmt.Fprintln(c.out, "No trip data available.")
		return nil
	}

	if raw {
		return printJSON(c.out, trips)
	}
	return renderTrips(c.out, trips)
}

// unknownVIN reports a VIN the account does not know, listing what it does.
func (c *CLI) unknownVIN(vin string) error {
	vins := make([]string, 0, len(c.account.Vehicles()))
	for _, v := range c.account.Vehicles() {
		vins = append(vins, v.VIN)
	}
	return fmt.Errorf("vehicle with VIN %s not found (available: %v)", vin, vins)
}
