// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"budgethub/internal/models"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom types and tags on v.
func RegisterOn(v *validator.Validate) {
	// Lets numeric tags (gt, gte, lte...) apply to money fields.
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("savings_source", validateSavingsSource)
	_ = v.RegisterValidation("savings_priority", validateSavingsPriority)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateSavingsSource(fl validator.FieldLevel) bool {
	return models.SavingsSource(fl.Field().String()).Valid()
}

func validateSavingsPriority(fl validator.FieldLevel) bool {
	switch models.Priority(fl.Field().Int()) {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return true
	}
	return false
}

// validateNotBlank rejects strings made only of whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
