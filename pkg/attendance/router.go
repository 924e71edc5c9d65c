package attendance

import (
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	editorRouter := r.Group("")
	editorRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAttendanceEditor)
	editorRouter.GET("/events/:id/attendees", handler.ListForEvent)
	editorRouter.POST("/events/:id/attendees", handler.Mark)
	editorRouter.DELETE("/events/:id/attendees/:userId", handler.Unmark)
}
