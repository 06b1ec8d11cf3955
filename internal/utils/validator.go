package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/eremean89/poetry/internal/errors"
	"github.com/eremean89/poetry/internal/models"
)

// Custom validation functions

func ValidateQuestionKind(fl validator.FieldLevel) bool {
	_, ok := models.ParseKind(fl.Field().String())
	return ok
}

func ValidateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleUser,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_kind", ValidateQuestionKind)
	validate.RegisterValidation("user_role", ValidateUserRole)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validator wraps the struct validator and converts its failures into the
// application's validation error type.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks struct tags and returns ValidationErrors on failure.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return apperrors.ToValidationErrors(verrs)
		}
		return err
	}
	return nil
}
