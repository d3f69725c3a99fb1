// Package validation checks user submitted form data.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"portfolio.dev/internal/models"
)

// EmailPattern is the shape check used for contact email addresses.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field error messages shown next to the form inputs.
const (
	MsgName    = "Name must be at least 2 characters"
	MsgNameMax = "Name must be at most 100 characters"
	MsgEmail   = "Please enter a valid email address"
	MsgSubject = "Subject must be at most 200 characters"
	MsgMessage = "Message must be at least 10 characters"
	MsgMsgMax  = "Message must be at most 5000 characters"
)

// Result is the outcome of validating a form.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			return name
		})
		_ = validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
			return EmailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from every field.
func Normalize(d models.ContactFormData) models.ContactFormData {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Subject = strings.TrimSpace(d.Subject)
	d.Message = strings.TrimSpace(d.Message)
	return d
}

// ValidateContact checks a contact submission after trimming it.
func ValidateContact(d models.ContactFormData) Result {
	d = Normalize(d)

	err := instance().Struct(d)
	if err == nil {
		return Result{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Valid: false, Errors: map[string]string{"form": err.Error()}}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return Result{Valid: false, Errors: out}
}

func message(field, tag string) string {
	switch field {
	case "name":
		if tag == "max" {
			return MsgNameMax
		}
		return MsgName
	case "email":
		return MsgEmail
	case "subject":
		return MsgSubject
	case "message":
		if tag == "max" {
			return MsgMsgMax
		}
		return MsgMessage
	}
	return "Invalid value"
}
