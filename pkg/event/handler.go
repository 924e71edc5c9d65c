package event

import (
	"context"
	"net/http"
	"time"

	"github.com/apartment-life/backend/internal/handler"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService, signupService signupService) Handler {
	return Handler{
		eventService:  eventService,
		signupService: signupService,
	}
}

type Handler struct {
	eventService  eventService
	signupService signupService
}

type eventService interface {
	Create(ctx context.Context, createdBy *model.User, fields Fields) (*model.Event, error)
	Update(ctx context.Context, id uint, fields Fields) (*model.Event, error)
	FindAll(ctx context.Context, now time.Time) ([]*Details, error)
	FindByIdWithCounts(ctx context.Context, id uint) (*Details, error)
	ToggleAttendanceLock(ctx context.Context, id uint) (*model.Event, error)
}

type signupService interface {
	FindForUser(ctx context.Context, eventID, userID uint) (*model.Signup, error)
}

type SaveEventRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description" binding:"required"`
	ImageURL       string    `json:"imageUrl" binding:"omitempty,url"`
	EventDate      time.Time `json:"eventDate" binding:"required"`
	SignupDeadline time.Time `json:"signupDeadline" binding:"required"`
	MaxSignups     *int      `json:"maxSignups"`
}

// UserSignup is the requester's own signup state on an event response.
type UserSignup struct {
	ID       uint `json:"id"`
	Canceled bool `json:"canceled"`
}

// EventResponse is an event enriched with derived state. Status and IsFull are
// computed against the current instant on every request.
type EventResponse struct {
	*model.Event
	SignupCount   int         `json:"signupCount"`
	AttendeeCount int         `json:"attendeeCount"`
	Status        Status      `json:"status"`
	IsFull        bool        `json:"isFull"`
	UserSignup    *UserSignup `json:"userSignup,omitempty"`
}

func newEventResponse(details *Details, now time.Time) *EventResponse {
	return &EventResponse{
		Event:         details.Event,
		SignupCount:   details.SignupCount,
		AttendeeCount: details.AttendeeCount,
		Status:        ClassifyStatus(now, details.EventDate, details.SignupDeadline),
		IsFull:        details.Event.IsFull(details.SignupCount),
	}
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events listEvents
	//
	// List events
	//
	// List all events with signup and attendee counts, upcoming events first.
	//
	// responses:
	//   200: EventsResponse
	now := time.Now()

	details, err := h.eventService.FindAll(c.Request.Context(), now)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events := make([]*EventResponse, len(details))
	for i, d := range details {
		events[i] = newEventResponse(d, now)
	}

	c.JSON(http.StatusOK, events)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by id. When the request carries a valid token the response
	// includes the requester's own signup state.
	//
	// responses:
	//   200: EventResponse
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	details, err := h.eventService.FindByIdWithCounts(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response := newEventResponse(details, time.Now())

	if user, err := handler.GetUserFromContext(c); err == nil {
		signup, err := h.signupService.FindForUser(c.Request.Context(), id, user.ID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if signup != nil {
			response.UserSignup = &UserSignup{ID: signup.ID, Canceled: signup.Canceled}
		}
	}

	c.JSON(http.StatusOK, response)
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events createEvent
	//
	// Create event
	//
	// Create a new event. Only administrators can create events. The signup
	// deadline must not be after the event date.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   415: Error
	var request SaveEventRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, Fields{
		Title:          request.Title,
		Description:    request.Description,
		ImageURL:       request.ImageURL,
		EventDate:      request.EventDate,
		SignupDeadline: request.SignupDeadline,
		MaxSignups:     request.MaxSignups,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /events/{id} updateEvent
	//
	// Update event
	//
	// Update an event's fields. Only administrators can update events.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request SaveEventRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, Fields{
		Title:          request.Title,
		Description:    request.Description,
		ImageURL:       request.ImageURL,
		EventDate:      request.EventDate,
		SignupDeadline: request.SignupDeadline,
		MaxSignups:     request.MaxSignups,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// ToggleAttendanceLock event
func (h Handler) ToggleAttendanceLock(c *gin.Context) {
	// swagger:route PUT /events/{id}/attendance-lock toggleAttendanceLock
	//
	// Toggle attendance lock
	//
	// Flip the attendance lock on an event. While locked, attendance marking is
	// rejected. Only administrators can toggle the lock.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.ToggleAttendanceLock(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}
