package model_test

import (
	"testing"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestEventIsFull(t *testing.T) {
	t.Run("unlimited capacity is never full", func(t *testing.T) {
		event := &model.Event{MaxSignups: nil}

		assert.False(t, event.IsFull(0))
		assert.False(t, event.IsFull(1000))
	})

	t.Run("full at capacity", func(t *testing.T) {
		max := 2
		event := &model.Event{MaxSignups: &max}

		assert.False(t, event.IsFull(0))
		assert.False(t, event.IsFull(1))
		assert.True(t, event.IsFull(2))
		assert.True(t, event.IsFull(3))
	})
}

func TestEventToggleAttendanceLock(t *testing.T) {
	event := &model.Event{}

	event.ToggleAttendanceLock()
	assert.True(t, event.AttendanceLocked)

	event.ToggleAttendanceLock()
	assert.False(t, event.AttendanceLocked)
}
