package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator returns the shared validator with the custom tags registered.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("slug", isSlug); err != nil {
		panic(fmt.Sprintf("failed to register slug validation: %v", err))
	}
	return v
}

// checkVar validates a single value against validator tags and reports the
// failure as a violation of field.
func checkVar(field string, value any, tag string) *fieldViolation {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &fieldViolation{Field: field, Description: describe(verrs[0])}
	}
	return &fieldViolation{Field: field, Description: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be an email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "slug":
		return "must be lowercase letters, digits and dashes"
	case "gte", "lte":
		return "is out of range"
	}
	return "failed " + fe.Tag() + " check"
}

// violations collects the failed checks in order.
type violations []fieldViolation

func (v *violations) check(field string, value any, tag string) {
	if fv := checkVar(field, value, tag); fv != nil {
		*v = append(*v, *fv)
	}
}

func (v *violations) add(field, description string) {
	*v = append(*v, fieldViolation{Field: field, Description: description})
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return invalidArgument(v...)
}

// isSlug accepts lowercase letters, digits and inner hyphens.
func isSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

// clampLimit applies a default and an upper bound to a page size.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
