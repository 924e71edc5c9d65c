package event

import (
	"context"
	"sort"
	"time"

	"github.com/apartment-life/backend/internal/errdef"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/gosimple/slug"
)

func NewService(repository *repository, signupCounts signupCountService, attendeeCounts attendeeCountService) *Service {
	return &Service{
		repository:     repository,
		signupCounts:   signupCounts,
		attendeeCounts: attendeeCounts,
	}
}

type signupCountService interface {
	CountActive(ctx context.Context, eventID uint) (int, error)
	CountActiveByEvent(ctx context.Context) (map[uint]int, error)
}

type attendeeCountService interface {
	CountForEvent(ctx context.Context, eventID uint) (int, error)
	CountByEvent(ctx context.Context) (map[uint]int, error)
}

type Service struct {
	repository     *repository
	signupCounts   signupCountService
	attendeeCounts attendeeCountService
}

// Details is an event together with its derived counts. The signup count uses
// the same non-canceled definition as the signup policy so the displayed
// capacity can't drift from the enforced one.
type Details struct {
	*model.Event
	SignupCount   int
	AttendeeCount int
}

type Fields struct {
	Title          string
	Description    string
	ImageURL       string
	EventDate      time.Time
	SignupDeadline time.Time
	MaxSignups     *int
}

func (s Service) Create(ctx context.Context, createdBy *model.User, fields Fields) (*model.Event, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:          fields.Title,
		Slug:           slug.Make(fields.Title),
		Description:    fields.Description,
		ImageURL:       fields.ImageURL,
		EventDate:      fields.EventDate,
		SignupDeadline: fields.SignupDeadline,
		MaxSignups:     fields.MaxSignups,
		CreatedByID:    createdBy.ID,
	}

	err := s.repository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s Service) Update(ctx context.Context, id uint, fields Fields) (*model.Event, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = fields.Title
	event.Slug = slug.Make(fields.Title)
	event.Description = fields.Description
	event.ImageURL = fields.ImageURL
	event.EventDate = fields.EventDate
	event.SignupDeadline = fields.SignupDeadline
	event.MaxSignups = fields.MaxSignups

	err = s.repository.save(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func validateFields(fields Fields) error {
	if fields.SignupDeadline.After(fields.EventDate) {
		return errdef.NewBadRequest("signup deadline must not be after the event date")
	}
	if fields.MaxSignups != nil && *fields.MaxSignups < 1 {
		return errdef.NewBadRequest("max signups must be a positive number")
	}
	return nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindByIdWithCounts(ctx context.Context, id uint) (*Details, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, event)
}

// FindAll returns all events with their counts, upcoming events first in
// chronological order followed by past events in reverse chronological order.
// The counts come from one grouped query per relation, not one per event.
func (s Service) FindAll(ctx context.Context, now time.Time) ([]*Details, error) {
	events, err := s.repository.findAll(ctx)
	if err != nil {
		return nil, err
	}

	signupCounts, err := s.signupCounts.CountActiveByEvent(ctx)
	if err != nil {
		return nil, err
	}

	attendeeCounts, err := s.attendeeCounts.CountByEvent(ctx)
	if err != nil {
		return nil, err
	}

	SortUpcomingFirst(events, now)

	return attachCounts(events, signupCounts, attendeeCounts), nil
}

// attachCounts pairs each event with its counts. Events absent from a count
// map have no rows in that relation and get zero.
func attachCounts(events []*model.Event, signupCounts, attendeeCounts map[uint]int) []*Details {
	details := make([]*Details, len(events))
	for i, event := range events {
		details[i] = &Details{
			Event:         event,
			SignupCount:   signupCounts[event.ID],
			AttendeeCount: attendeeCounts[event.ID],
		}
	}
	return details
}

func (s Service) details(ctx context.Context, event *model.Event) (*Details, error) {
	signupCount, err := s.signupCounts.CountActive(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	attendeeCount, err := s.attendeeCounts.CountForEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	return &Details{
		Event:         event,
		SignupCount:   signupCount,
		AttendeeCount: attendeeCount,
	}, nil
}

// ToggleAttendanceLock flips the attendance lock on the event and persists it.
// The lock gates attendance marking only, signups are unaffected.
func (s Service) ToggleAttendanceLock(ctx context.Context, id uint) (*model.Event, error) {
	event, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	event.ToggleAttendanceLock()

	err = s.repository.save(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// SortUpcomingFirst orders events the way the event listings show them:
// upcoming events in chronological order, then past events newest first.
func SortUpcomingFirst(events []*model.Event, now time.Time) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		aUpcoming := !a.EventDate.Before(now)
		bUpcoming := !b.EventDate.Before(now)

		if aUpcoming != bUpcoming {
			return aUpcoming
		}
		if aUpcoming {
			return a.EventDate.Before(b.EventDate)
		}
		return b.EventDate.Before(a.EventDate)
	})
}
