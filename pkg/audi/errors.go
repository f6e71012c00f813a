package audi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a service fault at the collaborator boundary.
type ErrorKind int

const (
	// KindOther is an unclassified fault.
	KindOther ErrorKind = iota

	// KindTransient marks faults that a bounded retry may resolve
	// (timeouts, 5xx responses, connection resets).
	KindTransient

	// KindThrottled marks the account rate-limit condition. Retrying will
	// not succeed and may extend the lockout.
	KindThrottled
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindThrottled:
		return "throttled"
	default:
		return "other"
	}
}

// ServiceError is a classified fault returned by the vehicle cloud service.
type ServiceError struct {
	Kind       ErrorKind
	Op         string // e.g. "login", "lock"
	Message    string
	HTTPStatus int

	// Err is the underlying cause, if any. Preserved so context
	// cancellation stays visible through errors.Is.
	Err error
}

func (e *ServiceError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("audi: %s: %s (HTTP %d)", e.Op, e.Message, e.HTTPStatus)
	}
	return fmt.Sprintf("audi: %s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// throttleMarkers are the known substrings the service embeds in error text
// when an account is throttled. The substring scan is a fallback inherited
// from the service's string-typed errors; the typed Kind is authoritative
// where the client could classify the response itself.
var throttleMarkers = []string{
	"error=login.error.throttled",
	"throttled",
}

// IsThrottled reports whether err indicates the account-throttling condition.
// It prefers the typed classification and falls back to a case-insensitive
// marker scan over the error text.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}

	var se *ServiceError
	if errors.As(err, &se) && se.Kind != KindOther {
		return se.Kind == KindThrottled
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range throttleMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind == KindTransient
	}
	return false
}
