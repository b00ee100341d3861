package middlewares

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/spacetime/internal/apierror"
	"github.com/pkg/errors"
)

type schema struct {
	validate *validator.Validate
}

// NewValidator returns an echo.Validator based on `validate` struct tags.
// Reported fields are named after their JSON tag.
func NewValidator() echo.Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &schema{validate: v}
}

// Validate implements the echo.Validator interface.
// Only the first violation is reported.
func (s *schema) Validate(i any) error {
	err := s.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "could not validate params")
	}

	field := verrs[0].Field()
	switch verrs[0].Tag() {
	case "required":
		return apierror.Validation(field, fmt.Sprintf("%s is required.", field))
	case "uuid":
		return apierror.Validation(field, fmt.Sprintf("%s must be a valid UUID.", field))
	default:
		return apierror.Validation(field, fmt.Sprintf("%s is invalid.", field))
	}
}
