package auth

import (
	"context"
	"time"

	"github.com/looplab/fsm"

	fsmutil "github.com/openiov/audictl/internal/pkg/util/fsm"
)

// Session states. Throttled and Failed are terminal: the machine defines no
// transition out of either, so a throttled session can never reach
// Authenticated within the same process run.
const (
	StateIdle           = "Idle"
	StateAuthenticating = "Authenticating"
	StateAuthenticated  = "Authenticated"
	StateThrottled      = "Throttled"
	StateFailed         = "Failed"
)

const (
	// EventAuthenticate starts the login sequence.
	EventAuthenticate = "event_authenticate"
	// EventSucceed records a successful login handshake.
	EventSucceed = "event_succeed"
	// EventThrottle records the account-throttling condition.
	EventThrottle = "event_throttle"
	// EventExhaust records that every attempt was consumed.
	EventExhaust = "event_exhaust"
)

// newMachine builds the session state machine. Retries do not re-enter
// Authenticating; the attempt counter lives on the Session, keeping
// transitions strictly monotonic.
func newMachine(s *Session) *fsm.FSM {
	events := fsm.Events{
		{Name: EventAuthenticate, Src: []string{StateIdle}, Dst: StateAuthenticating},
		{Name: EventSucceed, Src: []string{StateAuthenticating}, Dst: StateAuthenticated},
		{Name: EventThrottle, Src: []string{StateAuthenticating}, Dst: StateThrottled},
		{Name: EventExhaust, Src: []string{StateAuthenticating}, Dst: StateFailed},
	}

	callbacks := fsm.Callbacks{
		"enter_" + StateAuthenticated: fsmutil.WrapEvent(s.actionEnterAuthenticated),
	}

	return fsm.NewFSM(StateIdle, events, callbacks)
}

// actionEnterAuthenticated records the login timestamp upon entering
// Authenticated.
func (s *Session) actionEnterAuthenticated(ctx context.Context, e *fsm.Event) error {
	s.authenticatedAt = time.Now()
	return nil
}
