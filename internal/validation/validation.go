// Package validation wraps go-playground/validator with user-facing messages.
// Field names in errors are the JSON names of the struct fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
)

// Validator checks tagged structs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports JSON field names.
func New() *Validator {
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
	// Registration of a fixed tag on a fresh instance cannot fail.
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{validate: v}
}

// maxBytes limits the encoded length of a string, unlike max which counts
// runes. bcrypt rejects inputs over 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct validates s. On failure it returns an *apperrors.AppError with code
// validation for the first failing field; Fields recovers the rest.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	first := verrs[0]
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeValidation,
		Message: Message(first),
		Field:   first.Field(),
		Cause:   &FieldErrors{errs: verrs},
	}
}

// FieldErrors carries every failing field of a validation pass.
type FieldErrors struct {
	errs validator.ValidationErrors
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.errs))
	for _, fe := range e.errs {
		parts = append(parts, fe.Field()+": "+Message(fe))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Map returns field name to message, keeping the first message per field.
func (e *FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(e.errs))
	for _, fe := range e.errs {
		if _, ok := out[fe.Field()]; !ok {
			out[fe.Field()] = Message(fe)
		}
	}
	return out
}

// Fields extracts every field message from an error returned by Struct.
func Fields(err error) map[string]string {
	var fe *FieldErrors
	if errors.As(err, &fe) {
		return fe.Map()
	}
	return nil
}

// Message renders a single field failure.
func Message(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s is too long.", label)
	case "eqfield":
		return fmt.Sprintf("%s must match %s.", label, strings.ToLower(Label(fe.Param())))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid."
	}
}

// Label turns a camelCase or Go field name into a sentence-case label,
// e.g. "companyName" becomes "Company name".
func Label(field string) string {
	var b strings.Builder
	prev := rune(0)
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) {
				b.WriteRune(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}
