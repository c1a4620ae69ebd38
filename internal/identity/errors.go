package identity

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for identity operations. Login failures collapse to a
// single ErrInvalidCredentials so responses never reveal whether the
// username or the password was wrong.
var (
	ErrUserNameRequired   = errors.New("userName is required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrDuplicateUserName  = errors.New("userName is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidBody        = errors.New("invalid request body")
	ErrUserNotFound       = errors.New("user not found")
)

// MapHTTPStatus maps identity domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserNameRequired),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateUserName):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
