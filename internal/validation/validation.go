package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ndewijer/Currency-Rate-Sync-Backend/internal/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateCurrencyCode checks that code is three upper-case ASCII letters.
func ValidateCurrencyCode(code string) error {
	if err := validate.Var(code, "required,len=3,alpha,uppercase"); err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrencyCode, code)
	}
	return nil
}

// ParseAmount parses a conversion amount, which must be a finite number >= 0.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: amount is required", apperrors.ErrInvalidAmount)
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidAmount, raw)
	}
	return amount, nil
}

// ValidateStruct runs the struct's `validate` tags and converts failures into an *Error
// keyed by the field's JSON name.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[jsonName(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "alpha":
		return "must contain letters only"
	case "uppercase":
		return "must be upper case"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
