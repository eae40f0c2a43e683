// Package validation checks request payloads against the rule sets declared
// in their struct tags before any handler logic runs.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/go-playground/validator/v10"
)

// avatarPattern accepts http(s) URLs whose host has at least one dot and a
// top-level domain of two or more letters.
var avatarPattern = regexp.MustCompile(`^https?://(?:www\.)?[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}(?:/[A-Za-z0-9\-._~:/?#\[\]@!$&'()*+,;=]*)?#?$`)

// FieldError describes one failed rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validator evaluates `validate` struct tags.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the custom rules registered.
// Field names in reported errors come from `json` tags, or from `param`
// tags for route parameters.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})

	_ = v.RegisterValidation("avatar", func(fl validator.FieldLevel) bool {
		return avatarPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates s. A rule violation is returned as an InvalidInput
// *apperror.Error carrying a []FieldError; other failures are returned as is.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return apperror.InvalidInput(apperror.MsgValidation).WithDetails(fields)
}
