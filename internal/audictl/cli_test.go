package audictl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openiov/audictl/internal/auth"
	"github.com/openiov/audictl/internal/command"
	"github.com/openiov/audictl/pkg/audi"
)

// fakeService scripts the client surface behind the CLI.
type fakeService struct {
	loginOK      bool
	loginErr     error
	actionStatus audi.ActionStatus
	actionErr    error
	actionCalls  int

	vehicles []audi.Vehicle
	statuses map[string]*audi.VehicleStatus
	trips    []audi.Trip
}

func (f *fakeService) AttemptLogin(ctx context.Context, username, password, country string) (bool, error) {
	return f.loginOK, f.loginErr
}

func (f *fakeService) ExecuteAction(ctx context.Context, vin, action string, params map[string]any) (audi.ActionStatus, error) {
	f.actionCalls++
	return f.actionStatus, f.actionErr
}

func (f *fakeService) Vehicles(ctx context.Context) ([]audi.Vehicle, error) {
	return f.vehicles, nil
}

func (f *fakeService) VehicleStatus(ctx context.Context, vin string) (*audi.VehicleStatus, error) {
	return f.statuses[vin], nil
}

func (f *fakeService) TripData(ctx context.Context, vin string) ([]audi.Trip, error) {
	return f.trips, nil
}

func newTestCLI(t *testing.T, svc *fakeService, spin string) (*CLI, *bytes.Buffer) {
	t.Helper()

	creds := audi.Credentials{
		Username: "u@example.com",
		Password: "secret",
		Country:  "DE",
		SPIN:     spin,
	}

	opts := auth.NewOptions()
	opts.MaxAttempts = 1

	cli := NewCLI(svc, creds, opts)
	out := &bytes.Buffer{}
	cli.SetOutput(out)
	return cli, out
}

func TestCLILoginSuccess(t *testing.T) {
	cli, _ := newTestCLI(t, &fakeService{loginOK: true}, "")

	if err := cli.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestCLILoginThrottledSurfacesDistinctError(t *testing.T) {
	svc := &fakeService{
		loginErr: &audi.ServiceError{Kind: audi.KindThrottled, Op: "login", Message: "login.error.throttled"},
	}
	cli, _ := newTestCLI(t, svc, "")

	err := cli.Login(context.Background())

	var te *auth.ThrottledError
	if !errors.As(err, &te) {
		t.Fatalf("error is %T, want *auth.ThrottledError", err)
	}
}

func TestCLIRunActionSucceeded(t *testing.T) {
	svc := &fakeService{loginOK: true, actionStatus: audi.ActionAccepted}
	cli, out := newTestCLI(t, svc, "")

	if err := cli.RunAction(context.Background(), audi.ActionClimateStop, "WAUTEST1", nil); err != nil {
		t.Fatalf("RunAction: %v", err)
	}

	if !strings.Contains(out.String(), "climate-stop: succeeded") {
		t.Errorf("output = %q, want success line", out.String())
	}
}

func TestCLIRunActionDisabledIsNotAnError(t *testing.T) {
	svc := &fakeService{loginOK: true, actionStatus: audi.ActionDisabled}
	cli, out := newTestCLI(t, svc, "")

	if err := cli.RunAction(context.Background(), audi.ActionRefreshData, "WAUTEST1", nil); err != nil {
		t.Fatalf("a disabled refresh should not be an error: %v", err)
	}

	if !strings.Contains(out.String(), "disabled for this vehicle") {
		t.Errorf("output = %q, want disabled line", out.String())
	}
}

func TestCLIRunActionMissingPINNeverCallsService(t *testing.T) {
	svc := &fakeService{loginOK: true, actionStatus: audi.ActionAccepted}
	cli, _ := newTestCLI(t, svc, "")

	err := cli.RunAction(context.Background(), audi.ActionLock, "WAUTEST1", nil)

	var pe *command.PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("error is %T, want *command.PreconditionError", err)
	}
	if svc.actionCalls != 0 {
		t.Errorf("action calls = %d, precondition must block dispatch", svc.actionCalls)
	}
}

func TestCLIRunActionUnknownName(t *testing.T) {
	cli, _ := newTestCLI(t, &fakeService{loginOK: true}, "")

	if err := cli.RunAction(context.Background(), "self-destruct", "WAUTEST1", nil); err == nil {
		t.Fatal("expected an error for an unknown action")
	}
}

func TestCLIStatusUnknownVIN(t *testing.T) {
	svc := &fakeService{
		loginOK:  true,
		vehicles: []audi.Vehicle{{VIN: "WAUKNOWN1", Title: "A4"}},
		statuses: map[string]*audi.VehicleStatus{},
	}
	cli, _ := newTestCLI(t, svc, "")

	err := cli.Status(context.Background(), "WAUNOSUCH", false)
	if err == nil || !strings.Contains(err.Error(), "WAUNOSUCH") {
		t.Fatalf("err = %v, want unknown-VIN error naming the VIN", err)
	}
}

func TestCLITripDataEmpty(t *testing.T) {
	cli, out := newTestCLI(t, &fakeService{loginOK: true}, "")

	if err := cli.TripData(context.Background(), "WAUTEST1", false); err != nil {
		t.Fatalf("TripData: %v", err)
	}
	if !strings.Contains(out.String(), "No trip data available.") {
		t.Errorf("output = %q", out.String())
	}
}
