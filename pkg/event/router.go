package event

import (
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/events", handler.FindAll)

	optionalTokenRouter := r.Group("")
	optionalTokenRouter.Use(authenticationMiddleware.OptionalTokenAuthentication)
	optionalTokenRouter.GET("/events/:id", handler.FindById)

	adminRouter := r.Group("")
	adminRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAdministrator)
	adminRouter.POST("/events", handler.Create)
	adminRouter.PUT("/events/:id", handler.Update)
	adminRouter.PUT("/events/:id/attendance-lock", handler.ToggleAttendanceLock)
}
