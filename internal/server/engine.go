package server

import (
	"log/slog"

	"github.com/apartment-life/backend/internal/middleware"
	"github.com/apartment-life/backend/pkg/attendance"
	"github.com/apartment-life/backend/pkg/event"
	"github.com/apartment-life/backend/pkg/health"
	"github.com/apartment-life/backend/pkg/notification"
	"github.com/apartment-life/backend/pkg/signup"
	"github.com/apartment-life/backend/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
)

type Handlers struct {
	Event        event.Handler
	Signup       signup.Handler
	Attendance   attendance.Handler
	Notification notification.Handler
	User         user.Handler
}

func GetEngine(logger *slog.Logger, basePath string, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handlers Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	redoc(router, basePath)

	router.GET("/health", health.Health)

	event.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.Event)
	signup.Routes(router, authenticationMiddleware, handlers.Signup)
	attendance.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.Attendance)
	notification.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.Notification)
	user.Routes(router, authenticationMiddleware, authorizationMiddleware, handlers.User)

	return r
}

func redoc(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}
	router.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
