package model

import "time"

// Signup records one user's registration intent for one event. Canceling is a
// soft delete: the row stays and Canceled is set, so a later rejoin reuses the
// same row. The unique index on (event_id, user_id) is what makes a concurrent
// double-signup impossible.
// swagger:model
type Signup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EventID   uint      `gorm:"uniqueIndex:idx_signups_event_user" json:"eventId"`
	Event     *Event    `json:"event,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_signups_event_user" json:"userId"`
	User      *User     `json:"-"`
	Canceled  bool      `gorm:"default:false" json:"canceled"`
}

// Attendee records that a user was marked present at an event. Maintained by
// editors and admins, and gated by the event's attendance lock.
// swagger:model
type Attendee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	EventID   uint      `gorm:"uniqueIndex:idx_attendees_event_user" json:"eventId"`
	Event     *Event    `json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_attendees_event_user" json:"userId"`
	User      *User     `json:"user,omitempty"`
}
