package handlers

import (
	"finance-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// CustomValidator adapts the shared rule set to echo.Validator.
// Failures are returned unwrapped so the error handler can format each field.
type CustomValidator struct {
	rules *validation.Validator
}

func NewValidator() echo.Validator {
	return &CustomValidator{rules: validation.GetValidator()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.rules.Struct(i)
}
