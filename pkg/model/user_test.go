package model_test

import (
	"context"
	"testing"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestUserRoles(t *testing.T) {
	tenant := &model.User{Role: model.RoleTenant}
	assert.False(t, tenant.IsAdministrator())
	assert.False(t, tenant.CanMarkAttendance())

	editor := &model.User{Role: model.RoleEditor}
	assert.False(t, editor.IsAdministrator())
	assert.True(t, editor.CanMarkAttendance())

	admin := &model.User{Role: model.RoleAdmin}
	assert.True(t, admin.IsAdministrator())
	assert.True(t, admin.CanMarkAttendance())
}

func TestUserContext(t *testing.T) {
	id := uint(1000)
	email := "resident@apartment-life.org"
	user := &model.User{
		ID:              id,
		Email:           email,
		ApartmentNumber: "42",
		Role:            model.RoleTenant,
	}

	ctx := context.Background()

	got, ok := model.GetUserFromContext(ctx)
	assert.Nil(t, got, "want nil when no user is in the context")
	assert.False(t, ok, "want false when no user is in the context")

	ctx = model.NewContextWithUser(ctx, user)

	got, ok = model.GetUserFromContext(ctx)
	assert.True(t, ok)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, "42", got.ApartmentNumber)
	assert.Equal(t, model.RoleTenant, got.Role)
}
