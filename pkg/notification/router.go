package notification

import (
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	adminRouter := r.Group("")
	adminRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAdministrator)
	adminRouter.GET("/notifications", handler.Subscribe)
}
