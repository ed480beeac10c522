package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// messages maps "field.tag" or "field" to the message returned for a failed rule.
type messages map[string]string

// check validates input and converts the first failed rule into a ValidationError.
func check(input any, msgs messages) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fe := fieldErrs[0]
	if msg, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return invalid(msg)
	}
	if msg, ok := msgs[fe.Field()]; ok {
		return invalid(msg)
	}

	return invalid(fe.Field() + " is invalid")
}
