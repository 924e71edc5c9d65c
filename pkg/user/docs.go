package user

import (
	"github.com/apartment-life/backend/pkg/model"
	"github.com/apartment-life/backend/pkg/token"
)

// swagger:parameters signUp
type _ struct {
	// SignUp request body parameter
	// in: body
	// required: true
	_ SignUpRequest
}

// swagger:parameters validateEmail
type _ struct {
	// in: path
	// required: true
	Token string `json:"token"`
}

// swagger:parameters refreshToken
type _ struct {
	// RefreshToken request body parameter
	// in: body
	// required: true
	_ RefreshTokenRequest
}

// swagger:parameters updateApartmentNumber
type _ struct {
	// UpdateApartmentNumber request body parameter
	// in: body
	// required: true
	_ UpdateApartmentNumberRequest
}

// swagger:parameters updateUserRole
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`

	// UpdateRole request body parameter
	// in: body
	// required: true
	_ UpdateRoleRequest
}

// swagger:parameters findUserById deleteUser
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response User
type _ struct {
	//in: body
	_ model.User
}

// swagger:response Tokens
type _ struct {
	//in: body
	_ token.Tokens
}
