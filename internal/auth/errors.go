package auth

import (
	"errors"
	"fmt"
)

// ErrLoginRejected marks a login attempt the service answered but did not
// grant. Retryable up to the attempt bound.
var ErrLoginRejected = errors.New("login rejected by the vehicle cloud service")

// ThrottledError is the terminal account-throttling condition. It is never
// retried; the user must wait outside the process before logging in again.
type ThrottledError struct {
	Message string
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("account is throttled, wait before retrying: %s", e.Message)
}

// ExhaustedRetriesError reports that every login attempt was consumed.
type ExhaustedRetriesError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("login failed after %d attempts, check your credentials or accept updated terms in the myAudi app: %v", e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}
