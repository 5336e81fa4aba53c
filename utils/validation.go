package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasNumber  = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail checks that the email has a plausible shape
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return FieldValidationErrors{{Field: "email", Message: "invalid email address"}}
	}
	return nil
}

// ValidatePhone checks an E.164-ish mobile number; empty is allowed
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return FieldValidationErrors{{Field: "mobile", Message: "invalid mobile number"}}
	}
	return nil
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) error {
	var errs FieldValidationErrors
	if len(password) < 8 {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasNumber.MatchString(password) {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must contain upper case, lower case and a digit"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IsBlankString reports whether the value is empty or whitespace only
func IsBlankString(value string) bool {
	return strings.TrimSpace(value) == ""
}
