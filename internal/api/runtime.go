package api

import (
	"github.com/sarifworks/augments/internal/config"
	"github.com/sarifworks/augments/internal/identity"
	"github.com/sarifworks/augments/internal/infrastructure"
	"github.com/sarifworks/augments/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// token service shared by the identity module and the catalog's auth
// middleware.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	MaxUpload  int64
	Tokens     *identity.Tokens
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Pagination: cfg.API.Pagination,
		MaxUpload:  cfg.API.MaxUploadSizeBytes(),
		Tokens:     identity.NewTokens([]byte(cfg.Auth.Key), cfg.Auth.TokenTTLDuration()),
	}
}
