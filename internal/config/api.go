package config

import (
	"fmt"
	"os"

	"github.com/sarifworks/augments/pkg/formatting"
	"github.com/sarifworks/augments/pkg/middleware"
	"github.com/sarifworks/augments/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "AUGMENTS_CORS_ENABLED",
	Origins:          "AUGMENTS_CORS_ORIGINS",
	AllowedMethods:   "AUGMENTS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "AUGMENTS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "AUGMENTS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "AUGMENTS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "AUGMENTS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "AUGMENTS_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds CORS, pagination, and upload settings.
type APIConfig struct {
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns the configured upload ceiling in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("AUGMENTS_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
