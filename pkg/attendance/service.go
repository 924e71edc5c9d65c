// Package attendance records who actually showed up at an event. Marking is
// restricted to administrators and attendance editors, and is rejected while
// the event's attendance lock is on.
package attendance

import (
	"context"

	"github.com/apartment-life/backend/internal/errdef"

	"github.com/apartment-life/backend/pkg/model"
)

func NewService(repository Repository, eventService eventService, userService userService) *Service {
	return &Service{
		repository:   repository,
		eventService: eventService,
		userService:  userService,
	}
}

type eventService interface {
	FindById(ctx context.Context, id uint) (*model.Event, error)
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

type Repository interface {
	Create(ctx context.Context, attendee *model.Attendee) error
	Delete(ctx context.Context, eventID, userID uint) error
	FindByEvent(ctx context.Context, eventID uint) ([]*model.Attendee, error)
	CountForEvent(ctx context.Context, eventID uint) (int, error)
}

type Service struct {
	repository   Repository
	eventService eventService
	userService  userService
}

// Mark records that the user attended the event. Attendance is independent of
// signups so walk-ins can be recorded too.
func (s Service) Mark(ctx context.Context, eventID, userID uint) (*model.Attendee, error) {
	event, err := s.eventService.FindById(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.AttendanceLocked {
		return nil, errdef.NewConflict("attendance for event %d is locked", eventID)
	}

	user, err := s.userService.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}

	attendee := &model.Attendee{EventID: event.ID, UserID: user.ID}
	if err := s.repository.Create(ctx, attendee); err != nil {
		return nil, err
	}

	return attendee, nil
}

// Unmark removes the user's attendance record for the event.
func (s Service) Unmark(ctx context.Context, eventID, userID uint) error {
	event, err := s.eventService.FindById(ctx, eventID)
	if err != nil {
		return err
	}

	if event.AttendanceLocked {
		return errdef.NewConflict("attendance for event %d is locked", eventID)
	}

	return s.repository.Delete(ctx, eventID, userID)
}

// ListForEvent returns the attendance records for an event.
func (s Service) ListForEvent(ctx context.Context, eventID uint) ([]*model.Attendee, error) {
	if _, err := s.eventService.FindById(ctx, eventID); err != nil {
		return nil, err
	}

	return s.repository.FindByEvent(ctx, eventID)
}

// CountForEvent returns the number of attendance records for an event.
func (s Service) CountForEvent(ctx context.Context, eventID uint) (int, error) {
	return s.repository.CountForEvent(ctx, eventID)
}
