package signup

import "github.com/apartment-life/backend/pkg/model"

// swagger:parameters registerSignup cancelSignup
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response Signup
type _ struct {
	//in: body
	_ model.Signup
}

// swagger:response ProfileSignupsResponse
type _ struct {
	//in: body
	_ ProfileSignups
}
