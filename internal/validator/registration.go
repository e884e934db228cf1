// Package validator checks registration payloads against field-level
// rules and reports every violated rule, so a single call can drive
// exhaustive form feedback. Validation is pure: it never touches the
// database and never fails with an error of its own.
package validator

import (
	"regexp"
	"strings"
)

// FieldError names one violated rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of validating a registration input. Valid is
// true iff Errors is empty.
type Result struct {
	Valid  bool
	Errors []FieldError
}

// RegistrationInput is the payload accepted by the register endpoint.
type RegistrationInput struct {
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
)

const (
	maxEmailLen    = 254
	maxNameLen     = 50
	minPasswordLen = 8
	maxPasswordLen = 128
)

// ValidateRegistration applies every field rule and collects all
// violations; it does not short-circuit on the first error.
func ValidateRegistration(input RegistrationInput) Result {
	var errs []FieldError

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !emailRe.MatchString(input.Email) {
		errs = append(errs, FieldError{"email", "Invalid email format"})
	} else if len(input.Email) > maxEmailLen {
		errs = append(errs, FieldError{"email", "Email must be 254 characters or less"})
	}

	errs = append(errs, validateName("firstName", "First name", input.FirstName)...)
	errs = append(errs, validateName("lastName", "Last name", input.LastName)...)

	if input.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	} else {
		if len(input.Password) < minPasswordLen {
			errs = append(errs, FieldError{"password", "Password must be at least 8 characters long"})
		}
		if len(input.Password) > maxPasswordLen {
			errs = append(errs, FieldError{"password", "Password must be 128 characters or less"})
		}
		if !upperRe.MatchString(input.Password) {
			errs = append(errs, FieldError{"password", "Password must contain at least one uppercase letter"})
		}
		if !lowerRe.MatchString(input.Password) {
			errs = append(errs, FieldError{"password", "Password must contain at least one lowercase letter"})
		}
		if !digitRe.MatchString(input.Password) {
			errs = append(errs, FieldError{"password", "Password must contain at least one number"})
		}
		if !specialRe.MatchString(input.Password) {
			errs = append(errs, FieldError{"password", "Password must contain at least one special character"})
		}
	}

	// Mismatch is only reported for a non-empty confirmation, to avoid a
	// redundant "required" + "mismatch" pair on an empty field.
	if input.ConfirmPassword == "" {
		errs = append(errs, FieldError{"confirmPassword", "Password confirmation is required"})
	} else if input.Password != input.ConfirmPassword {
		errs = append(errs, FieldError{"confirmPassword", "Passwords do not match"})
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// validateName applies the shared first/last name rules. Length and
// charset are checked independently so both can be reported at once.
func validateName(field, label, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return []FieldError{{field, label + " is required"}}
	}
	var errs []FieldError
	if len(value) > maxNameLen {
		errs = append(errs, FieldError{field, label + " must be 50 characters or less"})
	}
	if !nameRe.MatchString(value) {
		errs = append(errs, FieldError{field, label + " can only contain letters, spaces, hyphens, and apostrophes"})
	}
	return errs
}
