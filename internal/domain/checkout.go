package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MsgNameTooShort    = "Full name must be at least 2 characters."
	MsgInvalidEmail    = "Please enter a valid email address."
	MsgAddressTooShort = "Address must be at least 5 characters."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.RegisterValidation("storeemail", func(fl validator.FieldLevel) bool {
		email := fl.Field().String()
		return emailPattern.MatchString(email) && strings.IndexFunc(email, isSpace) < 0
	})
	if err != nil {
		panic(fmt.Sprintf("register storeemail: %v", err))
	}

	return v
}

// isSpace widens RE2's ASCII-only \s to every Unicode space, including the BOM.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// ContactForm is the checkout form as submitted.
type ContactForm struct {
	Name    string `validate:"min=2"`
	Email   string `validate:"storeemail"`
	Address string `validate:"min=5"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f ContactForm) Trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Address: strings.TrimSpace(f.Address),
	}
}

type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is ordered like the form fields.
type FieldErrors []FieldError

// For returns the message for field, or "" when the field is valid.
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

var fieldMessages = map[string]FieldError{
	"Name":    {Field: "name", Message: MsgNameTooShort},
	"Email":   {Field: "email", Message: MsgInvalidEmail},
	"Address": {Field: "address", Message: MsgAddressTooShort},
}

// Validate runs every field rule and collects one error per failing field.
// The form is expected to be trimmed already.
func (f ContactForm) Validate() FieldErrors {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(fmt.Sprintf("formValidator.Struct: %v", err))
	}

	var result FieldErrors
	for _, fe := range verrs {
		if msg, ok := fieldMessages[fe.StructField()]; ok {
			result = append(result, msg)
		}
	}

	return result
}
