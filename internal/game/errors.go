package game

import (
	"fmt"
	"strings"
)

// Validation errors are recoverable: they are reported to the caller
// (the retry layer between agent and engine) and never surface inside
// the engine's own loop. Each message names the offending action,
// amount, and the limit violated so the retry layer can construct a
// corrective prompt.

// ValidationError is implemented by every recoverable decision
// validation failure.
type ValidationError interface {
	error
	validationError()
}

// IsValidationError reports whether err is a recoverable validation
// failure as opposed to a fatal engine error.
func IsValidationError(err error) bool {
	_, ok := err.(ValidationError)
	return ok
}

// IllegalActionError indicates an action outside the legal set.
type IllegalActionError struct {
	Action Action
	Legal  []Action
}

func (e *IllegalActionError) Error() string {
	names := make([]string, len(e.Legal))
	for i, a := range e.Legal {
		names[i] = a.String()
	}
	return fmt.Sprintf("invalid action %q, legal actions: %s", e.Action, strings.Join(names, ", "))
}

func (e *IllegalActionError) validationError() {}

// UnexpectedAmountError indicates an amount that does not fit the
// action: a nonzero amount on fold/check/call, a nonpositive bet or
// raise, or a raise that does not exceed the amount to call.
type UnexpectedAmountError struct {
	Action Action
	Amount int
	Reason string
}

func (e *UnexpectedAmountError) Error() string {
	return fmt.Sprintf("bad amount %d for %s: %s", e.Amount, e.Action, e.Reason)
}

func (e *UnexpectedAmountError) validationError() {}

// WrongActionError indicates an action that names a real move but is
// wrong for the betting state, like betting into an existing bet.
type WrongActionError struct {
	Action Action
	Reason string
}

func (e *WrongActionError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Action, e.Reason)
}

func (e *WrongActionError) validationError() {}

// InsufficientStackError indicates a bet or raise requiring more chips
// than the player holds.
type InsufficientStackError struct {
	Action   Action
	Amount   int
	Required int
	Stack    int
}

func (e *InsufficientStackError) Error() string {
	return fmt.Sprintf("cannot %s to %d: need %d chips but only have %d",
		e.Action, e.Amount, e.Required, e.Stack)
}

func (e *InsufficientStackError) validationError() {}
