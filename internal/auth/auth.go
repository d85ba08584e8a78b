// Package auth checks console credentials for the login route.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong user name or password. The two
// cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid user name or password")

// Credentials holds the configured login. An empty Credentials disables login.
type Credentials struct {
	User         string
	PasswordHash string
}

// Enabled reports whether a login is configured.
func (c Credentials) Enabled() bool {
	return c.User != "" && c.PasswordHash != ""
}

// Verify checks user and password against the configured login.
func (c Credentials) Verify(user, password string) error {
	if !c.Enabled() {
		return nil
	}
	if user != c.User {
		// Compare anyway so a wrong user name takes as long as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
		return ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("check password: %w", err)
	}
}

// Hash returns the bcrypt hash of password at the default cost.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
