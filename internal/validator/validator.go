// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("source_type", validateSourceType)
		_ = v.RegisterValidation("source_kind", validateSourceKind)
		_ = v.RegisterValidation("product_type", validateProductType)
		_ = v.RegisterValidation("day_of_month", validateDayOfMonth)
		_ = v.RegisterValidation("date_string", validateDateString)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateSourceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "subscription":
		return true
	}
	return false
}

func validateSourceKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "one-time", "recurring":
		return true
	}
	return false
}

func validateProductType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "card", "loan":
		return true
	}
	return false
}

// validateDayOfMonth accepts 0 (unset, derive from the anchor) or 1-31.
func validateDayOfMonth(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 0 && day <= 31
}

// validateDateString accepts a bare ISO date or an RFC 3339 timestamp.
// Data-entry validation happens here; the schedule core still tolerates
// malformed values from pre-existing rows.
func validateDateString(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
