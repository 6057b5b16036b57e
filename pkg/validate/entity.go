package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gnames/persload/pkg/schema"
	"github.com/go-playground/validator/v10"
)

var entity = newValidator()

func newValidator() *validator.Validate {
	res := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their column names
	res.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return res
}

// Person runs entity validation rules of a person candidate.
func Person(p *schema.Person) []FieldError {
	return structErrors(p)
}

// Office runs entity validation rules of an office.
func Office(o *schema.Office) []FieldError {
	return structErrors(o)
}

// Messages joins messages of field errors into one string.
func Messages(errs []FieldError) string {
	msgs := make([]string, len(errs))
	for i, v := range errs {
		msgs[i] = v.Field + ": " + v.Message
	}
	return strings.Join(msgs, "; ")
}

func structErrors(s any) []FieldError {
	err := entity.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "validación", Message: err.Error()}}
	}

	res := make([]FieldError, 0, len(verrs))
	for _, v := range verrs {
		res = append(res, FieldError{
			Field:   v.Field(),
			Value:   fmt.Sprintf("%v", v.Value()),
			Message: message(v),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field cannot be blank"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters",
			fe.Param())
	case "gte", "min":
		return fmt.Sprintf("ensure this value is greater than or equal to %s",
			fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
