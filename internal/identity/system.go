package identity

import "context"

// System defines the public contract for identity operations.
type System interface {
	Handler() *Handler

	Register(ctx context.Context, creds Credentials) (*User, error)
	Login(ctx context.Context, creds Credentials) (string, error)
	Find(ctx context.Context, userName string) (*User, error)
}
