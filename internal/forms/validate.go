package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// ValidationError carries one message per failing field, keyed by the
// field's JSON name. It is returned both for local schema failures and for
// server-side uniqueness conflicts mapped onto a field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, empty when it passed.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// AsValidationError extracts *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Validator checks input structs against their validate tags. Each field
// reports only its first failing rule.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("specialisation", func(fl validator.FieldLevel) bool {
		return model.Specialisation(fl.Field().String()).Valid()
	})

	return &Validator{v: v}
}

// Struct validates in and returns *ValidationError on failure.
func (val *Validator) Struct(in any) error {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	ve := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := ve.Fields[fe.Field()]; seen {
			continue
		}
		ve.Fields[fe.Field()] = message(fe)
	}
	return ve
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	label := humanize(name)

	switch fe.Tag() {
	case "required", "required_without":
		return label + " is required"
	case "gt":
		if fe.Kind() == reflect.Int64 && fe.Param() == "0" {
			return label + " is required"
		}
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "email":
		return "Invalid email address"
	case "numeric":
		return label + " must contain only digits"
	case "len":
		if name == "phone" {
			return fmt.Sprintf("Phone number must be %s digits", fe.Param())
		}
		return fmt.Sprintf("%s must be exactly %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "specialisation":
		return "Select a valid specialisation"
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", label, strings.ToLower(humanize(toSnake(fe.Param()))))
	default:
		return label + " is invalid"
	}
}

// humanize turns "date_of_birth" into "Date of birth".
func humanize(jsonName string) string {
	s := strings.ReplaceAll(jsonName, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// toSnake maps a Go field name used in cross-field params, e.g. StartDate,
// onto its JSON spelling.
func toSnake(goName string) string {
	var b strings.Builder
	for i, r := range goName {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
