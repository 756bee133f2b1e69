package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	sort.Strings(errMsgs)
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that reports json field names and knows the
// custom tags from rules.go.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// crossFieldValidator is implemented by DTOs with rules spanning fields.
type crossFieldValidator interface {
	Validate() map[string]string
}

// Validate checks struct tags and then the DTO's own cross-field rules.
// Failures come back as *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	customErrors := make(map[string]string)

	err := v.validate.Struct(i)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range validationErrors {
			customErrors[fieldPath(fe)] = v.getErrorMessage(fe)
		}
	}

	if cf, ok := i.(crossFieldValidator); ok {
		for field, msg := range cf.Validate() {
			if _, exists := customErrors[field]; !exists {
				customErrors[field] = msg
			}
		}
	}

	if len(customErrors) == 0 {
		return nil
	}
	return &ValidationError{Errors: customErrors}
}

// fieldPath drops the top-level struct name from the namespace, so nested
// errors read "educations[0].institution".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if dot := strings.Index(ns, "."); dot >= 0 {
		return ns[dot+1:]
	}
	return fe.Field()
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "unique":
		return "Values must not repeat"
	case "hhmm":
		return "Must be a time in HH:MM format"
	case "is-skill", "is-sea-rank", "is-emirate", "is-day", "is-people-mgmt",
		"is-education-level", "is-job-type", "is-work-environment", "is-job-value",
		"is-rating", "is-placement-area", "is-review-section", "is-user-role":
		return "Not an allowed value"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
