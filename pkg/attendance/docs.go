package attendance

import "github.com/apartment-life/backend/pkg/model"

// swagger:parameters markAttendance
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`

	// Mark attendance request body parameter
	// in: body
	// required: true
	_ MarkAttendanceRequest
}

// swagger:parameters listAttendees
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:parameters unmarkAttendance
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`

	// in: path
	// required: true
	UserID uint `json:"userId"`
}

// swagger:response Attendee
type _ struct {
	//in: body
	_ model.Attendee
}

// swagger:response AttendeesResponse
type _ struct {
	//in: body
	_ []model.Attendee
}
