package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/chatflow/chatflow-cli/internal/common"
)

// Field length bounds enforced before any update is sent.
const (
	NameMinLen     = 2
	NameMaxLen     = 50
	UsernameMinLen = 3
	UsernameMaxLen = 30
	PasswordMinLen = 8
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries the user-facing message for a rejected field.
// It matches common.ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrValidation }

// ValidateName checks the trimmed display name against its 2–50 bounds.
// Bounds count characters, not bytes, so multibyte names measure the way
// the user perceives them.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return &ValidationError{Field: "name", Message: "Name is required"}
	case utf8.RuneCountInString(name) < NameMinLen:
		return &ValidationError{Field: "name", Message: "Name must be at least 2 characters"}
	case utf8.RuneCountInString(name) > NameMaxLen:
		return &ValidationError{Field: "name", Message: "Name cannot exceed 50 characters"}
	}
	return nil
}

// ValidateUsername checks the trimmed username against its 3–30 bounds.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return &ValidationError{Field: "username", Message: "Username is required"}
	case utf8.RuneCountInString(username) < UsernameMinLen:
		return &ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	case utf8.RuneCountInString(username) > UsernameMaxLen:
		return &ValidationError{Field: "username", Message: "Username cannot exceed 30 characters"}
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	return nil
}

// ValidatePassword enforces the signup policy: at least 8 characters with
// one lowercase letter, one uppercase letter and one digit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return &ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return &ValidationError{
			Field:   "password",
			Message: "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		}
	}
	return nil
}

// ValidateSignup runs all signup field checks and returns the first failure.
func ValidateSignup(req SignupRequest) error {
	if err := ValidateName(req.Name); err != nil {
		return err
	}
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	return ValidatePassword(req.Password)
}
