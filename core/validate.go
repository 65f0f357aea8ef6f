package core

import (
	"net/mail"
	"strings"
	"unicode"
)

const weakPasswordMessage = "Password must be at least 8 characters long, contain at least 1 lowercase letter, 1 uppercase letter, 1 number, and 1 symbol"

// ValidateCreateUser checks a full user payload and returns the list of
// violations; an empty list means the input is acceptable.
func ValidateCreateUser(name, email, password string) []string {
	var violations []string
	if strings.TrimSpace(name) == "" {
		violations = append(violations, "Name is required")
	}
	if !isValidEmail(email) {
		violations = append(violations, "Email must be valid")
	}
	if !isStrongPassword(password) {
		violations = append(violations, weakPasswordMessage)
	}
	return violations
}

// ValidateUpdateUser checks only the supplied fields of a partial update.
func ValidateUpdateUser(name, email, password *string) []string {
	var violations []string
	if name != nil && strings.TrimSpace(*name) == "" {
		violations = append(violations, "Name is required")
	}
	if email != nil && !isValidEmail(*email) {
		violations = append(violations, "Email must be valid")
	}
	if password != nil && !isStrongPassword(*password) {
		violations = append(violations, weakPasswordMessage)
	}
	return violations
}

// ValidateLogin applies the same field rules to login input.
func ValidateLogin(email, password string) []string {
	var violations []string
	if !isValidEmail(email) {
		violations = append(violations, "Email must be valid")
	}
	if !isStrongPassword(password) {
		violations = append(violations, weakPasswordMessage)
	}
	return violations
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// isStrongPassword requires length >= 8 with at least one lowercase letter,
// one uppercase letter, one digit, and one symbol.
func isStrongPassword(pw string) bool {
	if len([]rune(pw)) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
