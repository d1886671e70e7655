package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

// NewValidator returns a validator that reports JSON field names and
// compares decimal amounts numerically.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationError converts the first failing field into a client-facing message.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, describeFieldError(fieldErrs[0]))
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
}

func invalid(message string) error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	isLength := false
	switch fe.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		isLength = true
	}
	unit := "characters"
	if fe.Kind() != reflect.String {
		unit = "items"
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid", "uuid4":
		return field + " must be a valid id"
	case "numeric":
		return field + " must contain only digits"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		if isLength {
			return fmt.Sprintf("%s must have exactly %s %s", field, fe.Param(), unit)
		}
		return fmt.Sprintf("%s must equal %s", field, fe.Param())
	case "min":
		if isLength {
			return fmt.Sprintf("%s must be at least %s %s", field, fe.Param(), unit)
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isLength {
			return fmt.Sprintf("%s must be at most %s %s", field, fe.Param(), unit)
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	}
	return field + " is invalid"
}
