package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"telcli/internal/config"
	"telcli/internal/errors"
)

// StructValidator validates request DTOs against their struct tags
type StructValidator struct {
	validator *validator.Validate
}

// NewStructValidator creates a validator with the domain's custom rules
// registered
func NewStructValidator() *StructValidator {
	v := validator.New()

	v.RegisterValidation("year_range", isYearInRange)
	v.RegisterValidation("month_range", isMonthInRange)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &StructValidator{validator: v}
}

// ValidateStruct validates a struct and converts failures into a single
// validation error listing every failed field
func (s *StructValidator) ValidateStruct(v interface{}) error {
	err := s.validator.Struct(v)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewAppValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatValidationError(fieldErr))
	}

	return errors.NewAppValidationError(strings.Join(messages, "; "))
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	tag := err.Tag()
	param := err.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Replace(param, " ", ", ", -1))
	case "year_range":
		return fmt.Sprintf("%s must be between %d and %d", field, config.MinYear, config.MaxYear)
	case "month_range":
		return fmt.Sprintf("%s must be between 1 and 12", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// Custom validators

// isYearInRange accepts years inside the storable range. Zero is allowed so
// optional year fields can mean "infer from the file".
func isYearInRange(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	if year == 0 {
		return true
	}
	return year >= config.MinYear && year <= config.MaxYear
}

// isMonthInRange accepts months 1..12, with zero meaning "infer"
func isMonthInRange(fl validator.FieldLevel) bool {
	month := fl.Field().Int()
	if month == 0 {
		return true
	}
	return month >= 1 && month <= 12
}
