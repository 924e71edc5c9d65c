package event

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

func (r repository) create(ctx context.Context, event *model.Event) error {
	err := r.db.WithContext(ctx).Create(&event).Error
	if err != nil {
		return fmt.Errorf("failed to create event %q: %v", event.Title, err)
	}
	return nil
}

func (r repository) save(ctx context.Context, event *model.Event) error {
	err := r.db.WithContext(ctx).Save(&event).Error
	if err != nil {
		return fmt.Errorf("failed to save event with id %d: %v", event.ID, err)
	}
	return nil
}

func (r repository) findAll(ctx context.Context) ([]*model.Event, error) {
	var events []*model.Event

	err := r.db.
		WithContext(ctx).
		Order("event_date").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all events: %v", err)
	}

	return events, nil
}

func (r repository) findById(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find event with id %d", id)
	}
	return event, err
}
