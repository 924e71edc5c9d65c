package event

import "github.com/apartment-life/backend/pkg/model"

// swagger:parameters createEvent
type _ struct {
	// Create event request body parameter
	// in: body
	// required: true
	_ SaveEventRequest
}

// swagger:parameters updateEvent
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`

	// Update event request body parameter
	// in: body
	// required: true
	_ SaveEventRequest
}

// swagger:parameters findEventById toggleAttendanceLock
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response Event
type _ struct {
	//in: body
	_ model.Event
}

// swagger:response EventResponse
type _ struct {
	//in: body
	_ EventResponse
}

// swagger:response EventsResponse
type _ struct {
	//in: body
	_ []EventResponse
}
