// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txkind", validateKind)
	}
}

// validateKind accepts 0 (expense) or 1 (income). A dedicated validator is
// needed because "required" would reject the zero-valued expense kind.
func validateKind(fl validator.FieldLevel) bool {
	switch fl.Field().Int() {
	case 0, 1:
		return true
	}
	return false
}
