// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"nirogya/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"
)

// Validator wraps a shared validate instance for request structs.
type Validator struct {
	validate *playground.Validate
}

// New creates the Echo request validator.
func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate runs struct tag validation and maps failures to the
// VALIDATION_FAILED error so the error handler renders a 400.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return pkgerrors.Wrap(errors.ErrValidationFailed, err.Error())
	}

	return nil
}
