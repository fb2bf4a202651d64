// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (hasher, token service, stores) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/shelf/pkg/query"
)

// Storage backends accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Shelf API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StoreDriver selects the repository implementation ("memory" or "postgres").
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`

	// Relational Database (PostgreSQL), required when StoreDriver is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional; enables the book cache when set.
	RedisURL     string        `env:"REDIS_URL"`
	BookCacheTTL time.Duration `env:"BOOK_CACHE_TTL" envDefault:"10m"`

	// Token signing
	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	TokenValidity time.Duration `env:"TOKEN_VALIDITY" envDefault:"1440h"`

	// PasswordIterations is the PBKDF2 work factor. Keep it high in production.
	PasswordIterations int `env:"PASSWORD_ITERATIONS" envDefault:"210000"`

	// Rate limiting (per client IP)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// ProxyCIDRs lists the reverse proxies (CIDRs or single addresses) whose
	// X-Real-IP / X-Forwarded-For headers are believed. Empty trusts nobody.
	ProxyCIDRs string `env:"TRUSTED_PROXIES"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var problems []error

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	default:
		problems = append(problems, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StorePostgres, c.StoreDriver))
	}

	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET must not be empty"))
	}
	if c.TokenValidity < time.Second {
		problems = append(problems, errors.New("TOKEN_VALIDITY must be at least 1s"))
	}
	if c.PasswordIterations < 1 {
		problems = append(problems, errors.New("PASSWORD_ITERATIONS must be at least 1"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		problems = append(problems, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	for _, entry := range query.StringSlice(c.ProxyCIDRs) {
		if _, err := parsePrefix(entry); err != nil {
			problems = append(problems, fmt.Errorf("TRUSTED_PROXIES: %w", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}

// TrustedProxies returns the parsed TRUSTED_PROXIES entries. Entries rejected
// by [Config.Validate] are skipped.
func (c *Config) TrustedProxies() []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range query.StringSlice(c.ProxyCIDRs) {
		if prefix, err := parsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}

// parsePrefix accepts "10.0.0.0/8" or a bare address, which is treated as a
// single-host prefix.
func parsePrefix(entry string) (netip.Prefix, error) {
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}

	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
