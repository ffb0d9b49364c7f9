// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/permit-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("platform", validatePlatform)
	validate.RegisterValidation("screen", validateScreen)
	validate.RegisterValidation("occupancy", validateOccupancy)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePlatform(fl validator.FieldLevel) bool {
	return models.Platform(fl.Field().String()).Valid()
}

func validateScreen(fl validator.FieldLevel) bool {
	return models.Screen(fl.Field().String()).Valid()
}

func validateOccupancy(fl validator.FieldLevel) bool {
	return models.OccupancyType(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must have at least " + e.Param() + " entries"
	case "platform":
		return "Platform must be one of web, ios, android"
	case "screen":
		return "Screen must be one of form, documents"
	case "occupancy":
		return "Type of occupancy must be one of simple, new, renewal, complex, amendatory, locational_clearance, fire_safety"
	default:
		return e.Field() + " is invalid"
	}
}
