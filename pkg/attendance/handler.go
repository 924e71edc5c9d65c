package attendance

import (
	"net/http"

	"github.com/apartment-life/backend/internal/handler"

	"github.com/gin-gonic/gin"
)

func NewHandler(attendanceService *Service) Handler {
	return Handler{
		attendanceService: attendanceService,
	}
}

type Handler struct {
	attendanceService *Service
}

type MarkAttendanceRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// ListForEvent attendees
func (h Handler) ListForEvent(c *gin.Context) {
	// swagger:route GET /events/{id}/attendees listAttendees
	//
	// List attendees
	//
	// List the attendance records for an event. Only administrators and
	// attendance editors can see attendance.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: AttendeesResponse
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	attendees, err := h.attendanceService.ListForEvent(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, attendees)
}

// Mark attendance
func (h Handler) Mark(c *gin.Context) {
	// swagger:route POST /events/{id}/attendees markAttendance
	//
	// Mark attendance
	//
	// Record that a user attended the event. Rejected while the event's
	// attendance lock is on.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Attendee
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   409: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request MarkAttendanceRequest

	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	attendee, err := h.attendanceService.Mark(c.Request.Context(), id, request.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, attendee)
}

// Unmark attendance
func (h Handler) Unmark(c *gin.Context) {
	// swagger:route DELETE /events/{id}/attendees/{userId} unmarkAttendance
	//
	// Unmark attendance
	//
	// Remove a user's attendance record for the event. Rejected while the
	// event's attendance lock is on.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   204:
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	userID, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	if err := h.attendanceService.Unmark(c.Request.Context(), id, userID); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
