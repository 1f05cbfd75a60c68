// AngelaMos | 2026
// validation.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// NewValidator returns a validator that reports JSON field names and can
// range-check decimal amounts with the numeric tags (gte, lte, ...).
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// ValidationFailure converts a validator error into a 400 AppError carrying
// the first failing field.
func ValidationFailure(err error) *AppError {
	field, msg := firstFieldError(err)
	return ValidationError(field, msg)
}

func firstFieldError(err error) (string, string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "invalid request"
	}

	fe := verrs[0]
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return field, field + " is required"
	case "email":
		return field, field + " must be a valid email address"
	case "min":
		if isCollectionKind(fe.Kind()) {
			return field, fmt.Sprintf(
				"%s must contain at least %s entries",
				field,
				fe.Param(),
			)
		}
		if fe.Kind() == reflect.String {
			return field, fmt.Sprintf(
				"%s must be at least %s characters",
				field,
				fe.Param(),
			)
		}
		return field, fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isCollectionKind(fe.Kind()) {
			return field, fmt.Sprintf(
				"%s must contain at most %s entries",
				field,
				fe.Param(),
			)
		}
		if fe.Kind() == reflect.String {
			return field, fmt.Sprintf(
				"%s must be at most %s characters",
				field,
				fe.Param(),
			)
		}
		return field, fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return field, fmt.Sprintf(
			"%s must be greater than or equal to %s",
			field,
			fe.Param(),
		)
	case "gt":
		return field, fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "eqfield":
		return field, "passwords don't match"
	case "oneof":
		return field, fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return field, fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read as items[0].quantity.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func isCollectionKind(k reflect.Kind) bool {
	switch k {
	case reflect.Slice, reflect.Map, reflect.Array:
		return true
	default:
		return false
	}
}

// DecodeJSON reads a size-limited JSON body into dst, rejecting trailing
// data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", ErrInvalidInput)
	}

	if dec.More() {
		return fmt.Errorf("decode body: trailing data: %w", ErrInvalidInput)
	}

	return nil
}
