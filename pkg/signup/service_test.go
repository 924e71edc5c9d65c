package signup

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/apartment-life/backend/internal/errdef"
	"github.com/apartment-life/backend/pkg/model"
	"github.com/go-mail/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repository Repository, eventService eventService, dialer dialer, notifier notifier) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repository, eventService, dialer, notifier)
}

func TestRegister(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{ID: 3, Email: "resident@example.com"}

	t.Run("creates a new signup", func(t *testing.T) {
		event := testEvent(nil)
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		repository.
			On("Create", mock.Anything, &model.Signup{EventID: 1, UserID: 3}).
			Return(nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		dialer := &mockDialer{}
		dialer.
			On("DialAndSend", mock.Anything).
			Return(nil)
		notifier := &mockNotifier{}
		notifier.On("SignupReceived", event, user)
		service := newTestService(repository, eventService, dialer, notifier)

		signup, err := service.Register(context.Background(), now, 1, user)

		require.NoError(t, err)
		assert.Equal(t, uint(1), signup.EventID)
		assert.Equal(t, uint(3), signup.UserID)
		assert.False(t, signup.Canceled)
		repository.AssertExpectations(t)
		dialer.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("rejoins a canceled signup", func(t *testing.T) {
		event := testEvent(nil)
		existing := &model.Signup{ID: 7, EventID: 1, UserID: 3, Canceled: true}
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(existing, nil)
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		repository.
			On("SetCanceled", mock.Anything, existing, false).
			Return(nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		dialer := &mockDialer{}
		dialer.
			On("DialAndSend", mock.Anything).
			Return(nil)
		notifier := &mockNotifier{}
		notifier.On("SignupReceived", event, user)
		service := newTestService(repository, eventService, dialer, notifier)

		signup, err := service.Register(context.Background(), now, 1, user)

		require.NoError(t, err)
		assert.Equal(t, uint(7), signup.ID)
		repository.AssertExpectations(t)
		repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an active signup as duplicated", func(t *testing.T) {
		event := testEvent(nil)
		existing := &model.Signup{ID: 7, EventID: 1, UserID: 3, Canceled: false}
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(existing, nil)
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(1, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Register(context.Background(), now, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsDuplicated(err))
	})

	t.Run("denies a signup after the deadline", func(t *testing.T) {
		afterDeadline := time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(testEvent(nil), nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Register(context.Background(), afterDeadline, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		assert.ErrorContains(t, err, "deadline")
		repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("denies a signup when the event is full", func(t *testing.T) {
		max := 2
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(2, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(testEvent(&max), nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Register(context.Background(), now, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		assert.ErrorContains(t, err, "full")
	})

	t.Run("succeeds even when the confirmation email fails", func(t *testing.T) {
		event := testEvent(nil)
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		repository.
			On("Create", mock.Anything, mock.Anything).
			Return(nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		dialer := &mockDialer{}
		dialer.
			On("DialAndSend", mock.Anything).
			Return(assert.AnError)
		notifier := &mockNotifier{}
		notifier.On("SignupReceived", event, user)
		service := newTestService(repository, eventService, dialer, notifier)

		signup, err := service.Register(context.Background(), now, 1, user)

		require.NoError(t, err)
		require.NotNil(t, signup)
	})

	t.Run("returns not found for an unknown event", func(t *testing.T) {
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(42)).
			Return(nil, errdef.NewNotFound("event not found"))
		service := newTestService(&mockRepository{}, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Register(context.Background(), now, 42, user)

		require.Error(t, err)
		assert.True(t, errdef.IsNotFound(err))
	})
}

func TestCancel(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := &model.User{ID: 3, Email: "resident@example.com"}

	t.Run("cancels an active signup", func(t *testing.T) {
		event := testEvent(nil)
		existing := &model.Signup{ID: 7, EventID: 1, UserID: 3, Canceled: false}
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(existing, nil)
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(4, nil)
		repository.
			On("SetCanceled", mock.Anything, existing, true).
			Return(nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(event, nil)
		notifier := &mockNotifier{}
		notifier.On("SignupCanceled", event, user)
		service := newTestService(repository, eventService, &mockDialer{}, notifier)

		signup, err := service.Cancel(context.Background(), now, 1, user)

		require.NoError(t, err)
		assert.Equal(t, uint(7), signup.ID)
		repository.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("returns not found without a signup", func(t *testing.T) {
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(testEvent(nil), nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Cancel(context.Background(), now, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsNotFound(err))
	})

	t.Run("rejects a canceled signup", func(t *testing.T) {
		existing := &model.Signup{ID: 7, EventID: 1, UserID: 3, Canceled: true}
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(existing, nil)
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(testEvent(nil), nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Cancel(context.Background(), now, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "SetCanceled", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("denies cancellation after the event ended", func(t *testing.T) {
		afterEvent := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
		existing := &model.Signup{ID: 7, EventID: 1, UserID: 3, Canceled: false}
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(existing, nil)
		repository.
			On("CountActiveExcluding", mock.Anything, uint(1), uint(3)).
			Return(0, nil)
		eventService := &mockEventService{}
		eventService.
			On("FindById", mock.Anything, uint(1)).
			Return(testEvent(nil), nil)
		service := newTestService(repository, eventService, &mockDialer{}, &mockNotifier{})

		_, err := service.Cancel(context.Background(), afterEvent, 1, user)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		assert.ErrorContains(t, err, "ended")
	})
}

func TestListForUser(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	eventOn := func(id uint, date time.Time) *model.Event {
		return &model.Event{ID: id, EventDate: date}
	}

	t.Run("splits and orders signups", func(t *testing.T) {
		signups := []*model.Signup{
			{ID: 1, UserID: 3, Event: eventOn(1, time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC))},
			{ID: 2, UserID: 3, Event: eventOn(2, time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC))},
			{ID: 3, UserID: 3, Event: eventOn(3, time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC))},
			{ID: 4, UserID: 3, Event: eventOn(4, time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC))},
		}
		repository := &mockRepository{}
		repository.
			On("FindByUser", mock.Anything, uint(3)).
			Return(signups, nil)
		service := newTestService(repository, &mockEventService{}, &mockDialer{}, &mockNotifier{})

		profile, err := service.ListForUser(context.Background(), now, 3)

		require.NoError(t, err)
		require.Len(t, profile.Upcoming, 2)
		require.Len(t, profile.Past, 2)
		assert.Equal(t, uint(3), profile.Upcoming[0].ID)
		assert.Equal(t, uint(1), profile.Upcoming[1].ID)
		assert.Equal(t, uint(4), profile.Past[0].ID)
		assert.Equal(t, uint(2), profile.Past[1].ID)
	})

	t.Run("returns empty slices without signups", func(t *testing.T) {
		repository := &mockRepository{}
		repository.
			On("FindByUser", mock.Anything, uint(3)).
			Return([]*model.Signup{}, nil)
		service := newTestService(repository, &mockEventService{}, &mockDialer{}, &mockNotifier{})

		profile, err := service.ListForUser(context.Background(), now, 3)

		require.NoError(t, err)
		assert.NotNil(t, profile.Upcoming)
		assert.NotNil(t, profile.Past)
		assert.Empty(t, profile.Upcoming)
		assert.Empty(t, profile.Past)
	})
}

func TestFindForUser(t *testing.T) {
	t.Run("returns nil when the user never signed up", func(t *testing.T) {
		repository := &mockRepository{}
		repository.
			On("FindByEventAndUser", mock.Anything, uint(1), uint(3)).
			Return(nil, errdef.NewNotFound("not found"))
		service := newTestService(repository, &mockEventService{}, &mockDialer{}, &mockNotifier{})

		signup, err := service.FindForUser(context.Background(), 1, 3)

		require.NoError(t, err)
		assert.Nil(t, signup)
	})
}

type mockRepository struct{ mock.Mock }

func (m *mockRepository) Create(ctx context.Context, signup *model.Signup) error {
	return m.Called(ctx, signup).Error(0)
}

func (m *mockRepository) SetCanceled(ctx context.Context, signup *model.Signup, canceled bool) error {
	args := m.Called(ctx, signup, canceled)
	if args.Error(0) == nil {
		signup.Canceled = canceled
	}
	return args.Error(0)
}

func (m *mockRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*model.Signup, error) {
	args := m.Called(ctx, eventID, userID)
	var signup *model.Signup
	if args.Get(0) != nil {
		signup = args.Get(0).(*model.Signup)
	}
	return signup, args.Error(1)
}

func (m *mockRepository) FindByUser(ctx context.Context, userID uint) ([]*model.Signup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Signup), args.Error(1)
}

func (m *mockRepository) CountActive(ctx context.Context, eventID uint) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) CountActiveExcluding(ctx context.Context, eventID, userID uint) (int, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Int(0), args.Error(1)
}

type mockEventService struct{ mock.Mock }

func (m *mockEventService) FindById(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	var event *model.Event
	if args.Get(0) != nil {
		event = args.Get(0).(*model.Event)
	}
	return event, args.Error(1)
}

type mockDialer struct{ mock.Mock }

func (m *mockDialer) DialAndSend(messages ...*mail.Message) error {
	return m.Called(messages).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SignupReceived(event *model.Event, user *model.User) {
	m.Called(event, user)
}

func (m *mockNotifier) SignupCanceled(event *model.Event, user *model.User) {
	m.Called(event, user)
}
