package user

import (
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.POST("/users", handler.SignUp)
	r.GET("/users/validate/:token", handler.ValidateEmail)
	r.POST("/refresh", handler.RefreshToken)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.PUT("/me/apartment-number", handler.UpdateApartmentNumber)
	tokenAuthenticationRouter.DELETE("/users", handler.SignOut)

	adminRouter := r.Group("")
	adminRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireAdministrator)
	adminRouter.GET("/users", handler.FindAll)
	adminRouter.GET("/users/:id", handler.FindById)
	adminRouter.PUT("/users/:id/role", handler.UpdateRole)
	adminRouter.DELETE("/users/:id", handler.Delete)
}
