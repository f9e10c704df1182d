package validator

import (
	"errors"
	"fmt"

	val "github.com/go-playground/validator/v10"
)

// describe renders the first failed rule as a sentence a form can show.
func describe(fe val.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case "min", "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, param)
	default:
		return fe.Error()
	}
}

func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	return describe(valErrors[0])
}
