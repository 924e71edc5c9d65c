// Package classification Apartment Life.
//
// Backend for the Apartment Life community events application. Residents sign
// up for building events, administrators plan them and track attendance.
//
//    Version: 0.1.0
//    Contact: <info@apartment-life.org>
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      basicAuth:
//        type: basic
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        refreshUrl: /refresh
//        flow: password
// swagger:meta
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/apartment-life/backend/internal/handler"
	"github.com/apartment-life/backend/internal/log"
	"github.com/apartment-life/backend/internal/middleware"
	"github.com/apartment-life/backend/internal/server"
	"github.com/apartment-life/backend/pkg/attendance"
	"github.com/apartment-life/backend/pkg/config"
	"github.com/apartment-life/backend/pkg/event"
	"github.com/apartment-life/backend/pkg/notification"
	"github.com/apartment-life/backend/pkg/signup"
	"github.com/apartment-life/backend/pkg/storage"
	"github.com/apartment-life/backend/pkg/token"
	"github.com/apartment-life/backend/pkg/user"
	"github.com/go-mail/mail"
)

func main() {
	logger := newLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Exiting", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var slogHandler slog.Handler

	if os.Getenv("ENVIRONMENT") == "development" {
		slogHandler = log.NewPrettyJSONHandler(os.Stdout, nil)
	} else {
		slogHandler = slog.NewJSONHandler(os.Stdout, nil)
	}

	return slog.New(log.New(slogHandler))
}

func run(logger *slog.Logger) error {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redis, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		return err
	}

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	userRepository := user.NewRepository(db)
	userService := user.NewService(cfg.UIUrl, userRepository, dialer)

	if err := user.CreateAdminUser(ctx, cfg.AdminUser.Email, cfg.AdminUser.Password, userService); err != nil {
		return err
	}

	tokenRepository := token.NewRepository(redis)
	tokenService := token.NewService(
		logger,
		tokenRepository,
		cfg.Authentication.PrivateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)

	broker := notification.NewBroker()

	signupRepository := signup.NewRepository(db)
	attendanceRepository := attendance.NewRepository(db)

	// The event service reads signup and attendee counts straight from the
	// repositories, the signup and attendance services in turn consult the
	// event service.
	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository, signupRepository, attendanceRepository)

	signupService := signup.NewService(logger, signupRepository, eventService, dialer, broker)
	attendanceService := attendance.NewService(attendanceRepository, eventService, userService)

	authenticationMiddleware := middleware.NewAuthentication(&cfg.Authentication.PrivateKey.PublicKey, userService)
	authorizationMiddleware := middleware.NewAuthorization(logger, userService)

	handlers := server.Handlers{
		Event:        event.NewHandler(eventService, signupService),
		Signup:       signup.NewHandler(signupService),
		Attendance:   attendance.NewHandler(attendanceService),
		Notification: notification.NewHandler(logger, broker),
		User: user.NewHandler(
			cfg.Hostname,
			cfg.Authentication.AccessTokenExpirationSeconds,
			cfg.Authentication.RefreshTokenExpirationSeconds,
			cfg.Authentication.SameSiteMode,
			userService,
			tokenService,
		),
	}

	r := server.GetEngine(logger, cfg.BasePath, authenticationMiddleware, authorizationMiddleware, handlers)
	return r.Run()
}
