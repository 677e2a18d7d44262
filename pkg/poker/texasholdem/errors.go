package texasholdem

import (
	"errors"
	"fmt"
)

// ErrIllegalAction matches every *IllegalActionError with errors.Is
var ErrIllegalAction = errors.New("illegal action")

// ErrInvariantViolation is the panic value raised when the table state can no longer be trusted
var ErrInvariantViolation = errors.New("table invariant violated")

// ErrHandInProgress is returned when a hand is started before the previous one completed
var ErrHandInProgress = errors.New("hand is in progress")

// ErrTournamentOver is returned when a hand is started after one seat holds every chip
var ErrTournamentOver = errors.New("tournament is over")

// Reason explains why an action was rejected
type Reason string

// rejection reasons
const (
	ReasonNotYourTurn       Reason = "it is not your turn"
	ReasonSeatInactive      Reason = "your seat is not active"
	ReasonCannotCheck       Reason = "you cannot check with an active bet"
	ReasonNothingToCall     Reason = "there is nothing to call"
	ReasonInsufficientChips Reason = "not enough chips to call, you must go all-in"
	ReasonRaiseTooSmall     Reason = "raise is below the minimum"
	ReasonRaiseTooLarge     Reason = "raise is more than you have"
	ReasonNoChips           Reason = "you have no chips"
	ReasonNotBetting        Reason = "the table is not in a betting round"
	ReasonHandComplete      Reason = "the hand is complete"
	ReasonUnknownAction     Reason = "unknown action"
)

// IllegalActionError is returned when an action is rejected
// The table is never modified when this error is returned.
type IllegalActionError struct {
	Reason Reason
	Detail string
}

func newIllegalActionError(reason Reason, format string, a ...interface{}) *IllegalActionError {
	e := &IllegalActionError{Reason: reason}
	if format != "" {
		e.Detail = fmt.Sprintf(format, a...)
	}

	return e
}

func (e *IllegalActionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}

	return string(e.Reason)
}

// Is makes errors.Is(err, ErrIllegalAction) true
func (e *IllegalActionError) Is(target error) bool {
	return target == ErrIllegalAction
}

// invariantViolation panics with ErrInvariantViolation
func invariantViolation(format string, a ...interface{}) {
	panic(fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, a...)))
}
