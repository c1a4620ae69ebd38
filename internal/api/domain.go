package api

import (
	"github.com/sarifworks/augments/internal/augmentations"
	"github.com/sarifworks/augments/internal/identity"
	"github.com/sarifworks/augments/pkg/hypermedia"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Augmentations augmentations.System
	Identity      identity.System
}

// NewDomain creates all domain systems from the API runtime. The catalog's
// addressable routes register on the resolver so response links always
// reflect the mounted route table.
func NewDomain(runtime *Runtime) *Domain {
	resolver := hypermedia.NewResolver()
	augmentations.RegisterRoutes(resolver)

	augSystem := augmentations.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
		resolver,
		runtime.MaxUpload,
	)

	identitySystem := identity.New(
		runtime.Database.Connection(),
		runtime.Tokens,
		runtime.Logger,
	)

	return &Domain{
		Augmentations: augSystem,
		Identity:      identitySystem,
	}
}
