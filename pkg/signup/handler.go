package signup

import (
	"net/http"
	"time"

	"github.com/apartment-life/backend/internal/handler"

	"github.com/gin-gonic/gin"
)

func NewHandler(signupService *Service) Handler {
	return Handler{
		signupService: signupService,
	}
}

type Handler struct {
	signupService *Service
}

// Register for an event
func (h Handler) Register(c *gin.Context) {
	// swagger:route POST /events/{id}/signups registerSignup
	//
	// Sign up for event
	//
	// Sign the authenticated user up for the event. Rejoining a previously
	// canceled signup reuses the existing signup. Denied when the deadline has
	// passed, the event has ended or the event is full.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Signup
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	signup, err := h.signupService.Register(c.Request.Context(), time.Now(), id, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, signup)
}

// Cancel a signup
func (h Handler) Cancel(c *gin.Context) {
	// swagger:route DELETE /events/{id}/signups cancelSignup
	//
	// Cancel signup
	//
	// Cancel the authenticated user's signup for the event. The signup is kept
	// and can be rejoined later. Denied when the deadline has passed or the
	// event has ended.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Signup
	//   400: Error
	//   401: Error
	//   404: Error
	//   409: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	signup, err := h.signupService.Cancel(c.Request.Context(), time.Now(), id, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, signup)
}

// ListMine signups
func (h Handler) ListMine(c *gin.Context) {
	// swagger:route GET /me/signups listMySignups
	//
	// List my signups
	//
	// List the authenticated user's active signups, split into upcoming and past
	// events.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: ProfileSignupsResponse
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.signupService.ListForUser(c.Request.Context(), time.Now(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
