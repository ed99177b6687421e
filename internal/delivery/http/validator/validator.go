// Package validator plugs go-playground/validator into echo.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

func New() *CustomValidator {
	return &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks struct tags. Failures keep the validator.ValidationErrors type for the error handler.
func (cv *CustomValidator) Validate(i any) error {
	return errors.WithStack(cv.validate.Struct(i))
}
