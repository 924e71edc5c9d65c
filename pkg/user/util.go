package user

import (
	"context"
	"fmt"

	"github.com/apartment-life/backend/pkg/model"
)

type userServiceUtil interface {
	FindOrCreate(ctx context.Context, email, password, name string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// CreateAdminUser ensures the bootstrap administrator account exists and is
// usable without email validation.
func CreateAdminUser(ctx context.Context, email, password string, userService userServiceUtil) error {
	u, err := userService.FindOrCreate(ctx, email, password, "Administrator")
	if err != nil {
		return fmt.Errorf("error creating admin user: %v", err)
	}

	u.Validated = true
	u.Role = model.RoleAdmin

	err = userService.Save(ctx, u)
	if err != nil {
		return fmt.Errorf("error saving admin user: %v", err)
	}

	return nil
}
