package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	ID   string
	Name string
}

type principalKey struct{}

// VerifyFunc validates a raw bearer token and returns the caller it
// identifies. Implementations decide the token format; the middleware
// only handles header extraction and the 401 response.
type VerifyFunc func(token string) (Principal, error)

// Bearer returns middleware that requires a valid "Authorization: Bearer"
// token on every request. The verified principal is stored on the request
// context for downstream handlers.
func Bearer(verify VerifyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			principal, err := verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom extracts the authenticated principal from a request context.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing bearer token"})
}
