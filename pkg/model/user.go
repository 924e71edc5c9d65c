package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles a user can hold. Residents default to tenant; editors can mark
// attendance; admins additionally manage events.
const (
	RoleTenant = "tenant"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// User domain object defining a resident of the building
// swagger:model
type User struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Email           string    `gorm:"index;unique" json:"email"`
	Password        string    `json:"-"`
	Name            string    `json:"name"`
	ApartmentNumber string    `json:"apartmentNumber"`
	Role            string    `gorm:"default:tenant" json:"role"`
	EmailToken      uuid.UUID `json:"-"`
	Validated       bool      `json:"validated"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdmin
}

// CanMarkAttendance reports whether the user may mark attendees on events.
func (u *User) CanMarkAttendance() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}

type ctxKey int

var userKey ctxKey

// NewContextWithUser returns a new [context.Context] that carries the user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
