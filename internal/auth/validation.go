package auth

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
)

// Validator tags for the storefront form formats.
const (
	TagEmail = "storefront_email"
	TagPhone = "ru_phone"
)

// Messages shown when a form is rejected before it reaches the network.
const (
	MsgFillAllFields = "Please fill in all fields"
	MsgEmailNeedsAt  = "Email must contain the @ symbol"
	MsgInvalidEmail  = "Please enter a valid email address"
	MsgInvalidPhone  = "Please enter a valid phone number"
)

var validate = NewValidator()

// RegisterValidations adds the storefront email and masked phone tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation(TagPhone, func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
}

// NewValidator returns a validator that reports fields by their json name
// and knows the storefront tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// FormError turns validator output into one user-facing validation error.
// Missing fields win over malformed ones, as on the page.
func FormError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}

	details := map[string]string{}
	message := ""
	for _, fe := range errs {
		details[fe.Field()] = fe.Tag()
		if fe.Tag() == "required" {
			message = MsgFillAllFields
		}
	}
	if message == "" {
		switch errs[0].Tag() {
		case TagEmail:
			message = MsgInvalidEmail
		case TagPhone:
			message = MsgInvalidPhone
		default:
			message = "validation failed"
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(details)
}
