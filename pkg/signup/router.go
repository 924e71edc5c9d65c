package signup

import (
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenRouter := r.Group("")
	tokenRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenRouter.POST("/events/:id/signups", handler.Register)
	tokenRouter.DELETE("/events/:id/signups", handler.Cancel)
	tokenRouter.GET("/me/signups", handler.ListMine)
}
