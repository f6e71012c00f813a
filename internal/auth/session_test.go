package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openiov/audictl/pkg/audi"
)

// scriptedClient returns one scripted result per AttemptLogin call.
type scriptedClient struct {
	results []loginResult
	calls   int
}

type loginResult struct {
	ok  bool
	err error
}

func (c *scriptedClient) AttemptLogin(ctx context.Context, username, password, country string) (bool, error) {
	if c.calls >= len(c.results) {
		panic("AttemptLogin called more times than scripted")
	}
	r := c.results[c.calls]
	c.calls++
	return r.ok, r.err
}

func (c *scriptedClient) ExecuteAction(ctx context.Context, vin, action string, params map[string]any) (audi.ActionStatus, error) {
	return audi.ActionRejected, errors.New("not implemented")
}

func (c *scriptedClient) Vehicles(ctx context.Context) ([]audi.Vehicle, error) {
	return nil, errors.New("not implemented")
}

func (c *scriptedClient) VehicleStatus(ctx context.Context, vin string) (*audi.VehicleStatus, error) {
	return nil, errors.New("not implemented")
}

func (c *scriptedClient) TripData(ctx context.Context, vin string) ([]audi.Trip, error) {
	return nil, errors.New("not implemented")
}

// newTestSession wires a session with an instant sleep that records delays.
func newTestSession(client *scriptedClient, maxAttempts int) (*Session, *[]time.Duration) {
	delays := &[]time.Duration{}
	s := NewSession(client, audi.Credentials{Username: "u", Password: "p", Country: "DE"}, &Options{
		MaxAttempts: maxAttempts,
		RetryDelay:  10 * time.Second,
	})
	s.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return ctx.Err()
	}
	return s, delays
}

func TestLoginFirstAttemptSucceeds(t *testing.T) {
	client := &scriptedClient{results: []loginResult{{ok: true}}}
	s, delays := newTestSession(client, 3)

	out := s.Login(context.Background())

	if out.Kind != OutcomeSuccess {
		t.Fatalf("outcome = %v, want OutcomeSuccess (err: %v)", out.Kind, out.Err)
	}
	if client.calls != 1 {
		t.Errorf("made %d calls, want exactly 1", client.calls)
	}
	if len(*delays) != 0 {
		t.Errorf("observed %d delays, want 0", len(*delays))
	}
	if s.State() != StateAuthenticated {
		t.Errorf("state = %s, want %s", s.State(), StateAuthenticated)
	}
	if s.AuthenticatedAt().IsZero() {
		t.Error("authenticated-at timestamp not recorded")
	}
}

func TestLoginThrottledStopsImmediately(t *testing.T) {
	client := &scriptedClient{results: []loginResult{
		{err: &audi.ServiceError{Kind: audi.KindThrottled, Op: "login", Message: "error=login.error.throttled"}},
	}}
	s, delays := newTestSession(client, 5)

	out := s.Login(context.Background())

	if out.Kind != OutcomeThrottled {
		t.Fatalf("outcome = %v, want OutcomeThrottled", out.Kind)
	}
	if client.calls != 1 {
		t.Errorf("made %d calls, want exactly 1 despite maxAttempts=5", client.calls)
	}
	if len(*delays) != 0 {
		t.Errorf("observed %d delays, want 0", len(*delays))
	}
	if s.State() != StateThrottled {
		t.Errorf("state = %s, want %s", s.State(), StateThrottled)
	}

	var te *ThrottledError
	if !errors.As(out.Err, &te) {
		t.Errorf("outcome error is %T, want *ThrottledError", out.Err)
	}
}

func TestLoginThrottleDetectedByMessageMarker(t *testing.T) {
	// Untyped fault mixing throttle language with other error text still
	// classifies as throttling.
	client := &scriptedClient{results: []loginResult{
		{err: errors.New("request failed with status 400: account THROTTLED: try later")},
	}}
	s, _ := newTestSession(client, 3)

	out := s.Login(context.Background())

	if out.Kind != OutcomeThrottled {
		t.Fatalf("outcome = %v, want OutcomeThrottled", out.Kind)
	}
	if client.calls != 1 {
		t.Errorf("made %d calls, want 1", client.calls)
	}
}

func TestLoginRetriesThenSucceeds(t *testing.T) {
	transient := &audi.ServiceError{Kind: audi.KindTransient, Op: "login", Message: "gateway timeout"}
	client := &scriptedClient{results: []loginResult{
		{err: transient},
		{err: transient},
		{ok: true},
	}}
	s, delays := newTestSession(client, 3)

	out := s.Login(context.Background())

	if out.Kind != OutcomeSuccess {
		t.Fatalf("outcome = %v, want OutcomeSuccess (err: %v)", out.Kind, out.Err)
	}
	if client.calls != 3 {
		t.Errorf("made %d calls, want exactly 3", client.calls)
	}
	if len(*delays) != 2 {
		t.Errorf("observed %d delays, want exactly 2", len(*delays))
	}
	if s.Attempts() != 3 {
		t.Errorf("attempts = %d, want 3", s.Attempts())
	}
}

func TestLoginExhaustsAttempts(t *testing.T) {
	rejected := loginResult{ok: false}
	client := &scriptedClient{results: []loginResult{rejected, rejected, rejected}}
	s, delays := newTestSession(client, 3)

	out := s.Login(context.Background())

	if out.Kind != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", out.Kind)
	}
	if client.calls != 3 {
		t.Errorf("made %d calls, want exactly 3", client.calls)
	}
	if len(*delays) != 2 {
		t.Errorf("observed %d delays, want 2", len(*delays))
	}
	if s.State() != StateFailed {
		t.Errorf("state = %s, want %s", s.State(), StateFailed)
	}

	var ee *ExhaustedRetriesError
	if !errors.As(out.Err, &ee) {
		t.Fatalf("outcome error is %T, want *ExhaustedRetriesError", out.Err)
	}
	if ee.Attempts != 3 {
		t.Errorf("ExhaustedRetriesError.Attempts = %d, want 3", ee.Attempts)
	}
	if !errors.Is(out.Err, ErrLoginRejected) {
		t.Error("last cause should unwrap to ErrLoginRejected")
	}
}

func TestLoginSingleAttemptNoDelay(t *testing.T) {
	client := &scriptedClient{results: []loginResult{
		{err: errors.New("connection refused")},
	}}
	s, delays := newTestSession(client, 1)

	out := s.Login(context.Background())

	if out.Kind != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", out.Kind)
	}
	if client.calls != 1 {
		t.Errorf("made %d calls, want 1", client.calls)
	}
	if len(*delays) != 0 {
		t.Errorf("observed %d delays, want 0 for max-attempts=1", len(*delays))
	}
}

func TestLoginHonorsCancellationDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	client := &scriptedClient{results: []loginResult{
		{err: errors.New("connection refused")},
		{ok: true}, // must never be reached
	}}
	s, _ := newTestSession(client, 3)
	s.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	out := s.Login(ctx)

	if out.Kind != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", out.Kind)
	}
	if !errors.Is(out.Err, context.Canceled) {
		t.Errorf("cancellation swallowed, got error: %v", out.Err)
	}
	if client.calls != 1 {
		t.Errorf("made %d calls after cancellation, want 1", client.calls)
	}
}

func TestLoginCancellationFromAttemptNotSwallowed(t *testing.T) {
	client := &scriptedClient{results: []loginResult{
		{err: &audi.ServiceError{Kind: audi.KindTransient, Op: "login", Message: "canceled", Err: context.Canceled}},
		{ok: true}, // must never be reached
	}}
	s, delays := newTestSession(client, 3)

	out := s.Login(context.Background())

	if out.Kind != OutcomeExhausted {
		t.Fatalf("outcome = %v, want OutcomeExhausted", out.Kind)
	}
	if !errors.Is(out.Err, context.Canceled) {
		t.Errorf("cancellation swallowed, got error: %v", out.Err)
	}
	if len(*delays) != 0 {
		t.Errorf("slept %d times after cancellation, want 0", len(*delays))
	}
}

func TestThrottledSessionStaysTerminal(t *testing.T) {
	client := &scriptedClient{results: []loginResult{
		{err: &audi.ServiceError{Kind: audi.KindThrottled, Op: "login", Message: "throttled"}},
	}}
	s, _ := newTestSession(client, 3)

	if out := s.Login(context.Background()); out.Kind != OutcomeThrottled {
		t.Fatalf("first login outcome = %v, want OutcomeThrottled", out.Kind)
	}

	// A second login on the same session must not authenticate.
	out := s.Login(context.Background())
	if out.Kind == OutcomeSuccess {
		t.Fatal("throttled session transitioned to authenticated")
	}
	if s.State() != StateThrottled {
		t.Errorf("state = %s, want %s", s.State(), StateThrottled)
	}
}

func TestAttemptsNeverExceedMaxAttempts(t *testing.T) {
	rejected := loginResult{ok: false}
	for _, max := range []int{1, 2, 4} {
		results := make([]loginResult, max)
		for i := range results {
			results[i] = rejected
		}
		client := &scriptedClient{results: results}
		s, _ := newTestSession(client, max)

		s.Login(context.Background())

		if s.Attempts() > max {
			t.Errorf("max=%d: attempts = %d, exceeds bound", max, s.Attempts())
		}
	}
}
