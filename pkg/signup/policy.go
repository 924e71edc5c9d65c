// Package signup implements event registrations: the policy deciding whether a
// resident may sign up, rejoin or cancel, and the persistence applying the
// decision.
package signup

import (
	"time"

	"github.com/apartment-life/backend/pkg/event"
	"github.com/apartment-life/backend/pkg/model"
)

// Action is the single mutation the policy allows the caller to apply.
type Action string

const (
	// ActionSignup creates a new signup row with Canceled = false.
	ActionSignup Action = "signup"
	// ActionRejoin clears Canceled on the requester's existing row.
	ActionRejoin Action = "rejoin"
	// ActionCancel sets Canceled on the requester's existing row.
	ActionCancel Action = "cancel"
)

// Reasons a signup request can be denied for.
const (
	ReasonEventEnded      = "event_ended"
	ReasonDeadlinePassed  = "deadline_passed"
	ReasonEventFull       = "event_full"
	ReasonAlreadySignedUp = "already_signed_up"
)

// DeniedError is an expected, user facing denial. It is not a store or
// authorization failure; callers surface the reason and never retry.
type DeniedError struct {
	Reason string
}

func (e DeniedError) Error() string {
	switch e.Reason {
	case ReasonEventEnded:
		return "the event has already ended"
	case ReasonDeadlinePassed:
		return "the signup deadline has passed"
	case ReasonEventFull:
		return "the event is full"
	case ReasonAlreadySignedUp:
		return "already signed up for this event"
	}
	return "signup denied: " + e.Reason
}

// Decide is the signup policy. Given the current instant, the event, the
// requester's existing signup (nil when they never signed up) and the number
// of active signups excluding the requester's own row, it returns the one
// action the requester may apply, or a [DeniedError].
//
// The function is pure: now and the requester's state are explicit parameters,
// and the caller is responsible for applying the returned action against the
// store. A caller holding a stale snapshot must recompute before applying.
func Decide(now time.Time, e *model.Event, existing *model.Signup, signupCount int) (Action, error) {
	switch event.ClassifyStatus(now, e.EventDate, e.SignupDeadline) {
	case event.StatusPast:
		return "", DeniedError{ReasonEventEnded}
	case event.StatusRegistrationClosed:
		return "", DeniedError{ReasonDeadlinePassed}
	}

	if existing != nil && !existing.Canceled {
		return ActionCancel, nil
	}

	// Rejoining and new signups both take a spot, cancellation never does.
	if e.IsFull(signupCount) {
		return "", DeniedError{ReasonEventFull}
	}

	if existing != nil {
		return ActionRejoin, nil
	}
	return ActionSignup, nil
}
