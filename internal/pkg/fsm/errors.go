package fsm

import (
	"errors"
	"fmt"
)

// Sentinel errors for runtime transition failures. Both leave the state field
// unchanged (except for a declared error-fallback) and propagate to the caller.
var (
	ErrTransitionNotAllowed = errors.New("transition not allowed")
	ErrInvalidResultState   = errors.New("invalid result state")
)

// TransitionNotAllowedError is returned when no rule matches the entity's
// current state, or a matched rule's guards or permission are not satisfied.
type TransitionNotAllowedError struct {
	Method string
	Source State
	Reason string
}

// NewTransitionNotAllowedError creates a TransitionNotAllowedError.
func NewTransitionNotAllowedError(method string, source State, reason string) *TransitionNotAllowedError {
	return &TransitionNotAllowedError{Method: method, Source: source, Reason: reason}
}

func (e *TransitionNotAllowedError) Error() string {
	return fmt.Sprintf("%s: method '%s' from state '%s' (%s)",
		ErrTransitionNotAllowed, e.Method, e.Source, e.Reason)
}

func (e *TransitionNotAllowedError) Unwrap() error {
	return ErrTransitionNotAllowed
}

// InvalidResultStateError is returned when a computed-target business method
// returns a state outside the declared allowed set.
type InvalidResultStateError struct {
	Method  string
	Result  State
	Allowed []State
}

// NewInvalidResultStateError creates an InvalidResultStateError.
func NewInvalidResultStateError(method string, result State, allowed []State) *InvalidResultStateError {
	return &InvalidResultStateError{Method: method, Result: result, Allowed: allowed}
}

func (e *InvalidResultStateError) Error() string {
	return fmt.Sprintf("%s: method '%s' returned '%s', allowed states are %v",
		ErrInvalidResultState, e.Method, e.Result, e.Allowed)
}

func (e *InvalidResultStateError) Unwrap() error {
	return ErrInvalidResultState
}
