// Package errors provides custom error types for the hostel assistant.
//
// This package defines domain-specific errors that help with error handling
// and recovery throughout the application. Each error type provides context
// about what went wrong and can be used for specific recovery strategies.
package errors

import "fmt"

// NoSessionError indicates that a mid-flow message arrived for a session
// identifier with no active complaint intake.
//
// This error is returned when:
//   - ProcessStep is called for an id the store does not know
//   - The session was cancelled or completed between two messages
//
// Recovery strategy: prompt the user to describe their complaint again
type NoSessionError struct {
	SessionID string
}

func (e *NoSessionError) Error() string {
	return fmt.Sprintf("no active complaint session for %q", e.SessionID)
}

// NewNoSessionError creates a new no-session error for the given identifier
func NewNoSessionError(sessionID string) *NoSessionError {
	return &NoSessionError{SessionID: sessionID}
}

// UpstreamError wraps failures from external collaborators (the retrieval
// backend, the LLM endpoint, the Telegram API).
//
// This error is returned when:
//   - The chat backend is unreachable or returns a non-200 status
//   - The response body cannot be decoded
//
// Recovery strategy: the dispatcher converts it to one generic apology;
// complaint-intake state is never touched so the user can simply retry.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

// Unwrap returns the wrapped error for error chain inspection
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new upstream error with context
func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// IsNoSession checks if the error is a no-session error
func IsNoSession(err error) bool {
	_, ok := err.(*NoSessionError)
	return ok
}

// IsUpstream checks if the error is an upstream collaborator error
func IsUpstream(err error) bool {
	_, ok := err.(*UpstreamError)
	return ok
}
