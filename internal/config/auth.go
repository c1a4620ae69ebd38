package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvAuthKey      = "AUGMENTS_AUTH_KEY"
	EnvAuthTokenTTL = "AUGMENTS_AUTH_TOKEN_TTL"
)

// AuthConfig holds token signing parameters. The key has no default: it
// must come from configuration or the environment.
type AuthConfig struct {
	Key      string `toml:"key"`
	TokenTTL string `toml:"token_ttl"`
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *AuthConfig) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Key != "" {
		c.Key = overlay.Key
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.TokenTTL == "" {
		c.TokenTTL = "168h" // 7 days
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthKey); v != "" {
		c.Key = v
	}
	if v := os.Getenv(EnvAuthTokenTTL); v != "" {
		c.TokenTTL = v
	}
}

func (c *AuthConfig) validate() error {
	if c.Key == "" {
		return fmt.Errorf("auth key is required")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	return nil
}
