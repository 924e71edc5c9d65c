package signup

import (
	"context"
	"errors"
	"fmt"

	"github.com/apartment-life/backend/internal/errdef"

	"github.com/apartment-life/backend/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) Create(ctx context.Context, signup *model.Signup) error {
	err := r.db.WithContext(ctx).Create(&signup).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %d already has a signup for event %d", signup.UserID, signup.EventID)
	}

	return err
}

func (r repository) SetCanceled(ctx context.Context, signup *model.Signup, canceled bool) error {
	err := r.db.
		WithContext(ctx).
		Model(&signup).
		Update("canceled", canceled).Error
	if err != nil {
		return fmt.Errorf("failed to update signup with id %d: %v", signup.ID, err)
	}

	signup.Canceled = canceled
	return nil
}

func (r repository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (*model.Signup, error) {
	var signup *model.Signup
	err := r.db.
		WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&signup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find signup for event %d and user %d", eventID, userID)
	}
	return signup, err
}

func (r repository) FindByUser(ctx context.Context, userID uint) ([]*model.Signup, error) {
	var signups []*model.Signup

	err := r.db.
		WithContext(ctx).
		Preload("Event").
		Where("user_id = ? AND canceled = false", userID).
		Find(&signups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find signups for user %d: %v", userID, err)
	}

	return signups, nil
}

// CountActive counts the non-canceled signups for an event. This is the one
// definition of the signup count, used by the policy and by event listings.
func (r repository) CountActive(ctx context.Context, eventID uint) (int, error) {
	return r.count(ctx, "event_id = ? AND canceled = false", eventID)
}

// CountActiveExcluding counts the non-canceled signups for an event leaving
// out the given user's own row, so a resident's canceled signup can never
// block their own rejoin.
func (r repository) CountActiveExcluding(ctx context.Context, eventID, userID uint) (int, error) {
	return r.count(ctx, "event_id = ? AND canceled = false AND user_id <> ?", eventID, userID)
}

// CountActiveByEvent returns the non-canceled signup count for every event
// that has one, keyed by event id. Event listings use it so the counts come
// from a single grouped query instead of one query per event.
func (r repository) CountActiveByEvent(ctx context.Context) (map[uint]int, error) {
	var rows []eventCount
	err := r.db.
		WithContext(ctx).
		Model(&model.Signup{}).
		Select("event_id", "count(*) as count").
		Where("canceled = false").
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count signups per event: %v", err)
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}

type eventCount struct {
	EventID uint
	Count   int
}

func (r repository) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Signup{}).
		Where(query, args...).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count signups: %v", err)
	}
	return int(count), nil
}
