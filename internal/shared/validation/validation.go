// Package validation runs ordered validation chains in front of every
// mutation. Field-level rules are expressed as `validate` struct tags and
// checked with go-playground/validator; cross-row rules (uniqueness,
// scheduling) are plain predicates. The first failing rule wins.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ticketeer/internal/shared/apperr"

	"github.com/go-playground/validator/v10"
)

// Rule is a single validation predicate over v.
type Rule[T any] func(ctx context.Context, v T) error

// Run applies rules in order and returns the first failure.
func Run[T any](ctx context.Context, v T, rules ...Rule[T]) error {
	for _, rule := range rules {
		if err := rule(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank rejects empty and whitespace-only strings
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Fields returns a Rule that checks the `validate` tags of v.
func Fields[T any](entity string) Rule[T] {
	return func(_ context.Context, v T) error {
		return Struct(entity, v)
	}
}

// Struct validates the tags of v and reports the first failing field as an
// apperr.ValidationError.
func Struct(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.Invalid(entity, fe.Field(), describe(fe))
	}
	return fmt.Errorf("validate %s: %w", entity, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
