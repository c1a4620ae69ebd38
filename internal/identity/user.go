// Package identity implements user registration, credential verification,
// and bearer token issuance for the catalog API.
package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const minPasswordLength = 4

// User is a registered account. The password is stored only as a bcrypt
// hash and never leaves the package.
type User struct {
	ID           uuid.UUID `json:"id"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials carries a username and plaintext password, the shape of both
// the register and login request bodies.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Validate checks registration requirements: both fields present and the
// password at least four characters.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.UserName) == "" {
		return ErrUserNameRequired
	}
	if len(c.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
