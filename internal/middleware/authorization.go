package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/apartment-life/backend/pkg/model"

	"github.com/apartment-life/backend/internal/errdef"
	"github.com/apartment-life/backend/internal/handler"
	"github.com/gin-gonic/gin"
)

func NewAuthorization(logger *slog.Logger, userService userService) AuthorizationMiddleware {
	return AuthorizationMiddleware{
		logger:      logger,
		userService: userService,
	}
}

type AuthorizationMiddleware struct {
	logger      *slog.Logger
	userService userService
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

// RequireAdministrator aborts unless the requester holds the admin role. The
// role is re-read from the store rather than trusted from the token so a
// demoted admin loses access as soon as the profile row changes.
func (m AuthorizationMiddleware) RequireAdministrator(c *gin.Context) {
	m.requireRole(c, (*model.User).IsAdministrator, "administrator access denied")
}

// RequireAttendanceEditor aborts unless the requester may mark attendance,
// meaning they hold the editor or admin role.
func (m AuthorizationMiddleware) RequireAttendanceEditor(c *gin.Context) {
	m.requireRole(c, (*model.User).CanMarkAttendance, "attendance editor access denied")
}

func (m AuthorizationMiddleware) requireRole(c *gin.Context, allowed func(*model.User) bool, denial string) {
	u, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	userWithRole, err := m.userService.FindById(c.Request.Context(), u.ID)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.AbortWithError(http.StatusUnauthorized, err)
		} else {
			_ = c.Error(err)
		}
		return
	}

	if !allowed(userWithRole) {
		m.logger.ErrorContext(c, "User tried to access a role restricted endpoint", "user", u.ID, "role", userWithRole.Role)
		_ = c.AbortWithError(http.StatusUnauthorized, errors.New(denial))
		return
	}

	// Extra precaution to ensure that no errors has occurred, and it's safe to call c.Next()
	if len(c.Errors.Errors()) > 0 {
		c.Abort()
		return
	} else {
		c.Next()
	}
}
