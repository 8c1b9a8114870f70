// Package account holds the identity and credential rules shared by the
// auth service and its clients.
package account

import (
	"net/mail"
	"strings"

	"github.com/BruksfildServices01/visit-tracker/internal/httperr"
)

const (
	MinPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	MaxPasswordBytes = 72
)

var (
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
	ErrEmailInUse         = httperr.ErrBusiness("email_already_in_use")
	ErrWeakPassword       = httperr.ErrBusiness("weak_password")
	ErrPasswordTooLong    = httperr.ErrBusiness("password_too_long")
	ErrInvalidEmail       = httperr.ErrBusiness("invalid_email")
	ErrPasswordMismatch   = httperr.ErrBusiness("password_mismatch")
	ErrUnauthorized       = httperr.ErrBusiness("unauthorized")
)

// Identity is the authenticated user.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks address syntax only; domain reachability is a
// separate, optional check.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateSignUp applies the sign-up rules in the order users see them.
func ValidateSignUp(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}
