// Package auth owns the authentication session against the vehicle cloud:
// login state, bounded retry, and throttle classification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/log"
)

// OutcomeKind tags the terminal result of a login sequence.
type OutcomeKind int

const (
	// OutcomeSuccess means the session is authenticated.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeThrottled means the account hit the service rate limit.
	// Further attempts in this process are refused.
	OutcomeThrottled

	// OutcomeExhausted means every attempt was consumed without success.
	OutcomeExhausted
)

// LoginOutcome is the only externally observable result of Login. Retryable
// conditions are resolved internally; no partial state leaks during retries.
type LoginOutcome struct {
	Kind    OutcomeKind
	Message string // throttle message, when Kind is OutcomeThrottled
	Err     error  // terminal cause, when Kind is not OutcomeSuccess
}

// Session is the authentication retry state machine. One Session exists per
// CLI invocation and is mutated only by Login; it is not safe for concurrent
// use and does not need to be.
type Session struct {
	client  audi.Client
	creds   audi.Credentials
	opts    *Options
	machine *fsm.FSM
	logger  log.Logger

	attempts        int
	authenticatedAt time.Time

	// sleep is replaceable in tests to observe delays without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSession creates an idle session owning the resolved credentials.
func NewSession(client audi.Client, creds audi.Credentials, opts *Options) *Session {
	if opts == nil {
		opts = NewOptions()
	}

	s := &Session{
		client: client,
		creds:  creds,
		opts:   opts,
		logger: log.WithName("auth"),
		sleep:  sleepContext,
	}
	s.machine = newMachine(s)
	return s
}

// State returns the current session state.
func (s *Session) State() string {
	return s.machine.Current()
}

// Attempts returns the number of login attempts made so far.
func (s *Session) Attempts() int {
	return s.attempts
}

// AuthenticatedAt returns the time the session became authenticated, or the
// zero time if it never did.
func (s *Session) AuthenticatedAt() time.Time {
	return s.authenticatedAt
}

// Login runs the bounded retry loop against the service and returns the
// terminal outcome. Throttle-classified faults end the sequence immediately,
// with attempts remaining: retrying a throttled account extends the lockout
// instead of resolving it. Cancellation is honored before every attempt and
// during the inter-attempt delay.
func (s *Session) Login(ctx context.Context) LoginOutcome {
	if err := s.machine.Event(ctx, EventAuthenticate); err != nil {
		return LoginOutcome{
			Kind: OutcomeExhausted,
			Err:  fmt.Errorf("login not possible from state %s: %w", s.State(), err),
		}
	}

	var lastErr error
	for attempt := 0; attempt < s.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return s.fail(ctx, err)
		}

		ok, err := s.attemptOnce(ctx)

		switch {
		case err == nil && ok:
			if mErr := s.machine.Event(ctx, EventSucceed); mErr != nil {
				return s.fail(ctx, mErr)
			}
			s.logger.Debug("login successful", "attempts", s.attempts)
			return LoginOutcome{Kind: OutcomeSuccess}

		case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
			// Cancellation must not be treated as one more generic fault.
			return s.fail(ctx, err)

		case err != nil && audi.IsThrottled(err):
			_ = s.machine.Event(ctx, EventThrottle)
			s.logger.Error(err, "account is throttled; wait before trying again")
			return LoginOutcome{
				Kind:    OutcomeThrottled,
				Message: err.Error(),
				Err:     &ThrottledError{Message: err.Error()},
			}

		case err != nil:
			lastErr = err

		default:
			lastErr = ErrLoginRejected
		}

		if attempt == s.opts.MaxAttempts-1 {
			break
		}

		s.logger.Warn("login failed, retrying",
			"attempt", s.attempts,
			"maxAttempts", s.opts.MaxAttempts,
			"retryDelay", s.opts.RetryDelay,
			"error", lastErr)

		if err := s.sleep(ctx, s.opts.RetryDelay); err != nil {
			return s.fail(ctx, err)
		}
	}

	_ = s.machine.Event(ctx, EventExhaust)
	s.logger.Error(lastErr, "failed to log in to the vehicle cloud service; "+
		"check your credentials, or open the myAudi app or website to accept updated terms and conditions",
		"attempts", s.attempts)
	return LoginOutcome{
		Kind: OutcomeExhausted,
		Err:  &ExhaustedRetriesError{Attempts: s.attempts, Last: lastErr},
	}
}

// attemptOnce performs a single login handshake and bumps the attempt
// counter, which never exceeds MaxAttempts.
func (s *Session) attemptOnce(ctx context.Context) (bool, error) {
	s.attempts++
	return s.client.AttemptLogin(ctx, s.creds.Username, s.creds.Password, s.creds.Country)
}

// fail moves the session to Failed and wraps the cause as the terminal
// outcome.
func (s *Session) fail(ctx context.Context, cause error) LoginOutcome {
	_ = s.machine.Event(ctx, EventExhaust)
	return LoginOutcome{Kind: OutcomeExhausted, Err: cause}
}

// sleepContext pauses for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
