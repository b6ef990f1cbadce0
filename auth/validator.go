package auth

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ngongtopro/love-story-chat/errors"
	"github.com/samber/lo"
)

var validate = newValidator()

// newValidator reports fields by their label tag so messages read naturally.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

type LoginRequest struct {
	Username string `validate:"required" label:"Username"`
	Password string `validate:"required" label:"Password"`
}

type RegisterRequest struct {
	Username        string `validate:"required,max=150" label:"Username"`
	Email           string `validate:"required,email" label:"Email"`
	Password        string `validate:"required,min=8" label:"Password"`
	ConfirmPassword string `validate:"required" label:"Password confirmation"`
}

func ValidateLogin(req LoginRequest) error {
	return check(req)
}

func ValidateRegister(req RegisterRequest) error {
	if err := check(req); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return errors.ErrPasswordMismatch
	}
	return nil
}

func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return errors.Invalid(strings.Join(lo.Map(fieldErrors, func(fe validator.FieldError, _ int) string {
		return describe(fe)
	}), ", "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
