package services

import (
	"errors"
	"unicode"
)

const (
	minPasswordRunes = 8
	// bcrypt ignores everything after 72 bytes.
	maxPasswordBytes = 72
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength requires 8+ characters mixing upper case, lower
// case and digits, and no more than bcrypt can hash.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordRunes || len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
