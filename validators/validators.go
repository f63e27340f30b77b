// Package validators checks request payloads against the schemas declared on
// the models request types. Every check is pure: no I/O, no side effects.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coreybb/tasker/models"
)

// Failure is returned when a payload does not satisfy its schema.
type Failure struct {
	Fields  []string // offending fields, by their JSON names
	Message string   // human-readable, never empty
}

func (f *Failure) Error() string {
	return f.Message
}

// IsFailure reports whether err is (or wraps) a validation Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "notblank", notBlank)
	mustRegister(v, "duedate", dueDate)
	return &Validator{v: v}
}

// mustRegister panics if a custom rule cannot be registered, so a broken
// schema fails at startup instead of silently dropping the rule.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validators: register %q: %v", tag, err))
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func dueDate(fl validator.FieldLevel) bool {
	_, err := models.ParseDueDate(fl.Field().String())
	return err == nil
}

// check runs the struct schema and folds all field errors into one Failure.
func (v *Validator) check(req any) error {
	err := v.v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Failure{Message: "invalid request: " + err.Error()}
	}
	fields := make([]string, 0, len(fieldErrs))
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, describe(fe))
	}
	return &Failure{Fields: fields, Message: strings.Join(msgs, "; ")}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "duedate":
		return fmt.Sprintf("%s must be a date or timestamp", fe.Field())
	default:
		return fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag())
	}
}
