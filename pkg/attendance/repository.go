package attendance

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

func (r repository) Create(ctx context.Context, attendee *model.Attendee) error {
	err := r.db.WithContext(ctx).Create(&attendee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %d is already marked as attended for event %d", attendee.UserID, attendee.EventID)
	}

	return err
}

func (r repository) Delete(ctx context.Context, eventID, userID uint) error {
	result := r.db.
		WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&model.Attendee{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete attendee for event %d and user %d: %v", eventID, userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return errdef.NewNotFound("user %d is not marked as attended for event %d", userID, eventID)
	}

	return nil
}

func (r repository) FindByEvent(ctx context.Context, eventID uint) ([]*model.Attendee, error) {
	var attendees []*model.Attendee

	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attendees for event %d: %v", eventID, err)
	}

	return attendees, nil
}

// CountByEvent returns the attendee count for every event that has one,
// keyed by event id. Event listings use it so the counts come from a single
// grouped query instead of one query per event.
func (r repository) CountByEvent(ctx context.Context) (map[uint]int, error) {
	var rows []eventCount
	err := r.db.
		WithContext(ctx).
		Model(&model.Attendee{}).
		Select("event_id", "count(*) as count").
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendees per event: %v", err)
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

func (r repository) CountForEvent(ctx context.Context, eventID uint) (int, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Attendee{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count attendees for event %d: %v", eventID, err)
	}
	return int(count), nil
}
