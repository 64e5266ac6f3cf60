package validation

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/tasktrackr/tasktrackr/internal/apperr"
)

var validate = validator.New()

// check runs v through the validator tags and records the first failure on
// field.
func check(ve *apperr.ValidationError, field string, v any, rules string) bool {
	err := validate.Var(v, rules)
	if err == nil {
		return true
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		ve.Add(field, fieldMessage(errs[0]))
	} else {
		ve.Add(field, err.Error())
	}
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgBlank
	case "max":
		return maxLenMessage(fe.Param())
	case "oneof":
		return strconv.Quote(fmt.Sprint(fe.Value())) + " is not a valid choice."
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "email":
		return "Enter a valid email address."
	}
	return "Invalid value."
}

func maxLenMessage(n string) string {
	return "Ensure this field has no more than " + n + " characters."
}
