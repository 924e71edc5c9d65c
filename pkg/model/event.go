package model

import "time"

// Event domain object defining a community event
// swagger:model
type Event struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Title            string    `json:"title"`
	Slug             string    `gorm:"index" json:"slug"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"imageUrl"`
	EventDate        time.Time `json:"eventDate"`
	SignupDeadline   time.Time `json:"signupDeadline"`
	MaxSignups       *int      `json:"maxSignups"`
	AttendanceLocked bool      `gorm:"default:false" json:"attendanceLocked"`
	CreatedByID      uint      `json:"createdById"`
	CreatedBy        *User     `json:"-"`
}

// IsFull reports whether the given number of active signups exhausts the
// event's capacity. Events without MaxSignups are never full.
func (e *Event) IsFull(signupCount int) bool {
	return e.MaxSignups != nil && signupCount >= *e.MaxSignups
}

// ToggleAttendanceLock flips the admin-controlled attendance lock.
func (e *Event) ToggleAttendanceLock() {
	e.AttendanceLocked = !e.AttendanceLocked
}
