package structs

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	symbolRegex     = regexp.MustCompile(`^[A-Z0-9./-]{1,32}$`)
	pathSymbolRegex = regexp.MustCompile(`^[A-Z0-9.-]{1,32}$`)

	validate = newValidator()
)

// ValidationError is a client input error detected before any upstream call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
		return symbolRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}

	fe := vErrs[0]

	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	return &ValidationError{Field: field, Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "symbol":
		return "must be a ticker symbol (letters, digits, '.', '/', '-')"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "numeric", "number":
		return "must be a number"
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// NormalizeSymbol trims and upper-cases a symbol taken from a URL path.
func NormalizeSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if !pathSymbolRegex.MatchString(symbol) {
		return "", &ValidationError{Field: "symbol", Message: "must be a ticker symbol (letters, digits, '.', '-')"}
	}

	return symbol, nil
}
