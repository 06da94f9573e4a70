package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their json tag name, so that
// validation messages line up with the request payload keys.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Messages converts validator errors into a per-field message map. Non-validator
// errors yield a single catch-all entry so the caller always has something to render.
func Messages(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["payload"] = []string{"The given data was invalid."}
		return fields
	}

	for _, fe := range verrs {
		name := fe.Field()
		fields[name] = append(fields[name], message(name, fe))
	}

	return fields
}

// Selected builds the message used when a referenced record does not exist.
func Selected(field string) map[string][]string {
	return map[string][]string{field: {fmt.Sprintf("The selected %s is invalid.", field)}}
}

func message(name string, fe validator.FieldError) string {
	label := strings.ReplaceAll(name, "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", label)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}
