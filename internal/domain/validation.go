package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidationResult is the outcome of ValidateBug. Error is empty when IsValid.
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"-"`
}

// Err returns a *ValidationError for a failed result and nil otherwise.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return &ValidationError{Field: r.Field, Message: r.Error}
}

// ValidateBug decides whether p may be used to create a bug, or to update
// one when isUpdate is set. Updates are never rejected, including updates
// carrying a status or severity outside the enumerations. Creation checks
// run in field order and only the first failure is reported.
func ValidateBug(p BugPayload, isUpdate bool) ValidationResult {
	if isUpdate {
		return ValidationResult{IsValid: true}
	}

	err := payloadValidator.Struct(p.withoutEmptyEnums())
	if err == nil {
		return ValidationResult{IsValid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ValidationResult{Error: err.Error()}
	}

	field := fieldErrs[0].Field()
	return ValidationResult{Field: field, Error: validationMessage(field)}
}

// withoutEmptyEnums drops empty status and severity so that they count as
// omitted, the same as they do when defaults are filled in.
func (p BugPayload) withoutEmptyEnums() BugPayload {
	if p.Status != nil && *p.Status == "" {
		p.Status = nil
	}
	if p.Severity != nil && *p.Severity == "" {
		p.Severity = nil
	}
	return p
}

func validationMessage(field string) string {
	switch field {
	case "Title":
		return "Title is required"
	case "Description":
		return "Description is required"
	case "Status":
		return "Status must be one of: " + joinEnum(Statuses)
	case "Severity":
		return "Severity must be one of: " + joinEnum(Severities)
	default:
		return field + " is invalid"
	}
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
