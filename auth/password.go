package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted length for new passwords.
const MinPasswordLength = 6

var (
	// ErrInvalidCredentials is returned on a bad username/password pair.
	// The handler maps it to 401 without revealing which half was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooShort is returned when a new password is under the minimum.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// HashPassword derives a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateNewPassword enforces the password policy for changes.
func ValidateNewPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
