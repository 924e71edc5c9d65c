package event

import "time"

// Status is the derived temporal state of an event. It is computed fresh on
// every query and never persisted.
type Status string

const (
	StatusActive             Status = "active"
	StatusRegistrationClosed Status = "registration_closed"
	StatusPast               Status = "past"
)

// ClassifyStatus derives the status of an event from the current instant and
// the event's two timestamps. The past check runs first, so an event whose
// deadline was misconfigured to fall after the event date still ends up Past
// once the event date has been reached.
func ClassifyStatus(now, eventDate, signupDeadline time.Time) Status {
	if !now.Before(eventDate) {
		return StatusPast
	}
	if !now.Before(signupDeadline) {
		return StatusRegistrationClosed
	}
	return StatusActive
}
