package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/apartment-life/backend/internal/errdef"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/go-mail/mail"
)

func NewService(logger *slog.Logger, repository Repository, eventService eventService, dialer dialer, notifier notifier) *Service {
	return &Service{
		logger:       logger,
		repository:   repository,
		eventService: eventService,
		dialer:       dialer,
		notifier:     notifier,
	}
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type notifier interface {
	SignupReceived(event *model.Event, user *model.User)
	SignupCanceled(event *model.Event, user *model.User)
}

type Repository interface {
	Create(ctx context.Context, signup *model.Signup) error
	SetCanceled(ctx context.Context, signup *model.Signup, canceled bool) error
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (*model.Signup, error)
	FindByUser(ctx context.Context, userID uint) ([]*model.Signup, error)
	CountActive(ctx context.Context, eventID uint) (int, error)
	CountActiveExcluding(ctx context.Context, eventID, userID uint) (int, error)
}

type Service struct {
	logger       *slog.Logger
	repository   Repository
	eventService eventService
	dialer       dialer
	notifier     notifier
}

// Register signs the user up for the event, either by creating a new signup or
// by rejoining a previously canceled one. The decision and its application are
// separate steps; a concurrent request racing past the policy check is caught
// by the store's (event_id, user_id) uniqueness constraint and surfaces as a
// duplicated error.
func (s Service) Register(ctx context.Context, now time.Time, eventID uint, user *model.User) (*model.Signup, error) {
	event, existing, count, err := s.snapshot(ctx, eventID, user.ID)
	if err != nil {
		return nil, err
	}

	action, err := Decide(now, event, existing, count)
	if err != nil {
		return nil, asErrdef(err)
	}

	var signup *model.Signup
	switch action {
	case ActionCancel:
		// An active signup means there is nothing to register.
		return nil, errdef.NewDuplicated("already signed up for this event")
	case ActionRejoin:
		if err := s.repository.SetCanceled(ctx, existing, false); err != nil {
			return nil, err
		}
		signup = existing
	case ActionSignup:
		signup = &model.Signup{EventID: event.ID, UserID: user.ID}
		if err := s.repository.Create(ctx, signup); err != nil {
			return nil, err
		}
	}

	if err := s.sendConfirmationEmail(user, event); err != nil {
		// The signup itself went through, a lost email is not worth failing it.
		s.logger.ErrorContext(ctx, "Failed to send signup confirmation email", "error", err, "event", event.ID)
	}

	s.notifier.SignupReceived(event, user)

	return signup, nil
}

// Cancel marks the user's signup for the event as canceled. The row is kept so
// the user can rejoin later.
func (s Service) Cancel(ctx context.Context, now time.Time, eventID uint, user *model.User) (*model.Signup, error) {
	event, existing, count, err := s.snapshot(ctx, eventID, user.ID)
	if err != nil {
		return nil, err
	}

	action, err := Decide(now, event, existing, count)
	if err != nil {
		return nil, asErrdef(err)
	}

	if action != ActionCancel {
		if existing == nil {
			return nil, errdef.NewNotFound("no signup for event %d", eventID)
		}
		return nil, errdef.NewConflict("signup is already canceled")
	}

	if err := s.repository.SetCanceled(ctx, existing, true); err != nil {
		return nil, err
	}

	s.notifier.SignupCanceled(event, user)

	return existing, nil
}

// snapshot loads everything the policy decides on: the event, the requester's
// existing signup (nil when they never signed up) and the active signup count
// excluding the requester's own row.
func (s Service) snapshot(ctx context.Context, eventID, userID uint) (*model.Event, *model.Signup, int, error) {
	event, err := s.eventService.FindById(ctx, eventID)
	if err != nil {
		return nil, nil, 0, err
	}

	existing, err := s.FindForUser(ctx, eventID, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	count, err := s.repository.CountActiveExcluding(ctx, eventID, userID)
	if err != nil {
		return nil, nil, 0, err
	}

	return event, existing, count, nil
}

// FindForUser returns the user's signup for the event, or nil when they never
// signed up.
func (s Service) FindForUser(ctx context.Context, eventID, userID uint) (*model.Signup, error) {
	signup, err := s.repository.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errdef.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return signup, nil
}

// CountActive returns the number of non-canceled signups for the event.
func (s Service) CountActive(ctx context.Context, eventID uint) (int, error) {
	return s.repository.CountActive(ctx, eventID)
}

// ProfileSignups are a user's active signups split by whether the event is
// still ahead.
type ProfileSignups struct {
	Upcoming []*model.Signup `json:"upcoming"`
	Past     []*model.Signup `json:"past"`
}

// ListForUser returns the user's active signups, upcoming events first in
// chronological order and past events newest first.
func (s Service) ListForUser(ctx context.Context, now time.Time, userID uint) (*ProfileSignups, error) {
	signups, err := s.repository.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &ProfileSignups{
		Upcoming: []*model.Signup{},
		Past:     []*model.Signup{},
	}
	for _, signup := range signups {
		if signup.Event != nil && signup.Event.EventDate.Before(now) {
			profile.Past = append(profile.Past, signup)
		} else {
			profile.Upcoming = append(profile.Upcoming, signup)
		}
	}

	sort.SliceStable(profile.Upcoming, func(i, j int) bool {
		return profile.Upcoming[i].Event.EventDate.Before(profile.Upcoming[j].Event.EventDate)
	})
	sort.SliceStable(profile.Past, func(i, j int) bool {
		return profile.Past[j].Event.EventDate.Before(profile.Past[i].Event.EventDate)
	})

	return profile, nil
}

func (s Service) sendConfirmationEmail(user *model.User, event *model.Event) error {
	m := mail.NewMessage()
	m.SetHeader("From", "Apartment Life <no-reply@apartment-life.org>")
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", fmt.Sprintf("You're signed up for %s", event.Title))
	body := fmt.Sprintf("Hello, you've signed up for %s on %s. See you there!", event.Title, event.EventDate.Format("Monday, January 2 at 15:04"))
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

// asErrdef maps a policy denial onto the error taxonomy the HTTP layer knows
// how to render. Any other error passes through untouched.
func asErrdef(err error) error {
	var denial DeniedError
	if !errors.As(err, &denial) {
		return err
	}
	if denial.Reason == ReasonAlreadySignedUp {
		return errdef.NewDuplicated("%s", denial.Error())
	}
	return errdef.NewConflict("%s", denial.Error())
}
