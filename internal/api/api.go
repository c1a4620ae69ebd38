// Package api assembles the service modules with all domain systems,
// middleware, and route registration.
package api

import (
	"net/http"

	"github.com/sarifworks/augments/internal/config"
	"github.com/sarifworks/augments/internal/infrastructure"
	"github.com/sarifworks/augments/pkg/middleware"
	"github.com/sarifworks/augments/pkg/module"
	"github.com/sarifworks/augments/pkg/routes"
)

// API holds the mounted modules of the service: the bearer-protected
// catalog and the open identity endpoints.
type API struct {
	Catalog  *module.Module
	Identity *module.Module
}

// New creates the service modules with all domain handlers and middleware.
// CORS wraps outermost so preflight requests short-circuit before auth.
func New(cfg *config.Config, infra *infrastructure.Infrastructure) (*API, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	catalogMux := http.NewServeMux()
	routes.Register(catalogMux, domain.Augmentations.Handler().Routes())

	catalog := module.New("/augmentations", catalogMux)
	catalog.Use(middleware.CORS(&cfg.API.CORS))
	catalog.Use(middleware.Logger(runtime.Logger))
	catalog.Use(middleware.Bearer(runtime.Tokens.Verify))

	identityMux := http.NewServeMux()
	routes.Register(identityMux, domain.Identity.Handler().Routes())

	ident := module.New("/identity", identityMux)
	ident.Use(middleware.CORS(&cfg.API.CORS))
	ident.Use(middleware.Logger(runtime.Logger))

	return &API{
		Catalog:  catalog,
		Identity: ident,
	}, nil
}
