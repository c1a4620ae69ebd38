package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sarifworks/augments/pkg/middleware"
)

// Tokens issues and verifies the HMAC-signed bearer tokens used to access
// the catalog.
type Tokens struct {
	key []byte
	ttl time.Duration
}

type tokenClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// NewTokens creates a token service signing with key. Tokens expire after
// ttl.
func NewTokens(key []byte, ttl time.Duration) *Tokens {
	return &Tokens{key: key, ttl: ttl}
}

// Issue signs a token for the given user. The subject claim carries the
// user id and the name claim the username.
func (t *Tokens) Issue(user User, now time.Time) (string, error) {
	claims := tokenClaims{
		Name: user.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Verify parses and validates a signed token, rejecting any signing method
// other than the one Issue uses. It satisfies middleware.VerifyFunc.
func (t *Tokens) Verify(token string) (middleware.Principal, error) {
	claims := &tokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return middleware.Principal{}, fmt.Errorf("verify token: %w", err)
	}
	if !parsed.Valid {
		return middleware.Principal{}, fmt.Errorf("verify token: invalid claims")
	}

	return middleware.Principal{
		ID:   claims.Subject,
		Name: claims.Name,
	}, nil
}
