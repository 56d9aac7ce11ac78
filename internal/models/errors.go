package models

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound     = errors.New("models: listing not found")
	ErrRequestNotFound     = errors.New("models: request not found")
	ErrServiceTypeNotFound = errors.New("models: service type not found")
)

// TransportError wraps a network or backend failure. It is surfaced to the
// client as a retryable condition; previously fetched data stays visible.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AuthorizationError means the caller is neither the provider nor the
// requester of the request it tried to mutate. Never swallowed silently.
type AuthorizationError struct {
	CallerID  int
	RequestID int
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("caller %d is not a party to request %d", e.CallerID, e.RequestID)
}

// InvalidTransitionError means the caller's role has no transition from the
// request's current status to the target status.
type InvalidTransitionError struct {
	Role string
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s may not move request from %q to %q", e.Role, e.From, e.To)
}

// MalformedResponseError means a backend row could not be mapped into a
// domain entity. The coordinator logs it and merges an empty collection.
type MalformedResponseError struct {
	Table string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed %s row: %v", e.Table, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
