// Package validation checks request shapes with go-playground/validator and
// reports failures by their JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every *Error via errors.Is.
var ErrInvalid = errors.New("invalid input")

// FieldError describes a problem with a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects field problems for one input.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// New builds an *Error for a single field.
func New(field, format string, args ...any) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}

// Missing reports the given fields as required.
func Missing(fields ...string) *Error {
	e := &Error{}
	for _, f := range fields {
		e.Fields = append(e.Fields, FieldError{Field: f, Message: f + " is required"})
	}
	return e
}

// Merge joins several validation errors, skipping nils. It returns nil when
// nothing was reported.
func Merge(errs ...*Error) error {
	merged := &Error{}
	for _, e := range errs {
		if e != nil {
			merged.Fields = append(merged.Fields, e.Fields...)
		}
	}
	if len(merged.Fields) == 0 {
		return nil
	}
	return merged
}

var (
	instance *validator.Validate
	initOnce sync.Once
)

func get() *validator.Validate {
	initOnce.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "yaml"} {
				name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
	return instance
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldError(fe)})
	}
	return out
}

// Var validates a single value against a tag expression.
func Var(field string, value any, tag string) *Error {
	err := get().Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &Error{Fields: []FieldError{{Field: field, Message: describe(field, fe.Tag(), fe.Param())}}}
	}
	return New(field, "%s is invalid", field)
}

func fieldError(fe validator.FieldError) string {
	return describe(fe.Field(), fe.Tag(), fe.Param())
}

func describe(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}
