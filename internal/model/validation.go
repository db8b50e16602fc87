package model

import (
	"github.com/go-playground/validator/v10"
)

// RegisterValidations wires the domain enum validators into a validator
// engine. Called once at startup against gin's binding engine so request
// structs can use the role and donationstatus tags.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("donationstatus", func(fl validator.FieldLevel) bool {
		return DonationStatus(fl.Field().String()).Valid()
	})
}
