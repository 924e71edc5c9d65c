package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// apartmentNumber accepts only digits, at most five of them. Matches what the
// profile form allows residents to enter.
func apartmentNumber(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || len(value) > 5 {
		return false
	}
	return strings.IndexFunc(value, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

func RegisterValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("apartmentNumber", apartmentNumber)
	}
	return fmt.Errorf("error getting validation engine")
}
