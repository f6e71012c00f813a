// Package fsm adapts looplab/fsm callbacks to idiomatic error returns.
package fsm

import (
	"context"

	"github.com/looplab/fsm"
)

// WrapEvent lifts an error-returning callback into a looplab fsm.Callback,
// recording the error on the event so the transition fails instead of
// silently proceeding.
func WrapEvent(fn func(ctx context.Context, event *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, event *fsm.Event) {
		if err := fn(ctx, event); err != nil {
			event.Err = err
		}
	}
}
