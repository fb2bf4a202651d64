// Copyright (c) 2026 Shelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelf/internal/platform/config"
)

/*
TestLoad_Defaults verifies the defaults applied when only the secret is provided.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 60*24*time.Hour, cfg.TokenValidity)
	assert.Equal(t, 210000, cfg.PasswordIterations)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_MissingSecret rejects a secret that is set but empty.
*/
func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

/*
TestValidate covers the cross-field rules.
*/
func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			StoreDriver:        config.StoreMemory,
			JWTSecret:          "secret",
			TokenValidity:      time.Hour,
			PasswordIterations: 1,
			RateLimitRPS:       1,
			RateLimitBurst:     1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{"valid", func(*config.Config) {}, false},
		{"postgres_without_dsn", func(c *config.Config) { c.StoreDriver = config.StorePostgres }, true},
		{"postgres_with_dsn", func(c *config.Config) {
			c.StoreDriver = config.StorePostgres
			c.DatabaseURL = "postgres://localhost/shelf"
		}, false},
		{"unknown_driver", func(c *config.Config) { c.StoreDriver = "sqlite" }, true},
		{"empty_secret", func(c *config.Config) { c.JWTSecret = "" }, true},
		{"zero_iterations", func(c *config.Config) { c.PasswordIterations = 0 }, true},
		{"sub_second_validity", func(c *config.Config) { c.TokenValidity = time.Millisecond }, true},
		{"trusted_proxies", func(c *config.Config) { c.ProxyCIDRs = "10.0.0.0/8, 192.0.2.7" }, false},
		{"bad_trusted_proxy", func(c *config.Config) { c.ProxyCIDRs = "10.0.0.0/8,proxy.internal" }, true},
		{"zero_burst", func(c *config.Config) { c.RateLimitBurst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := config.Config{ExtraOrigins: " https://a.example , ,https://b.example"}
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestTrustedProxies(t *testing.T) {
	cfg := config.Config{ProxyCIDRs: "10.1.2.3/8, 192.0.2.7 ,::ffff:198.51.100.1"}

	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.7/32"),
		netip.MustParsePrefix("198.51.100.1/32"),
	}, cfg.TrustedProxies())

	assert.Empty(t, (&config.Config{}).TrustedProxies())
}
