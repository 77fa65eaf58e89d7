// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can rely on `validate` struct tags after Bind.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *validator.Validate
}

// New returns a request validator backed by go-playground/validator.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	return errors.WithStack(v.validate.Struct(i))
}
