// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

An optional '.env' file is loaded with 'joho/godotenv' first, then 'caarlos0/env'
maps the process environment into a strongly-typed Go struct, providing early
validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and is passed to core components
(DB, Redis, token service) via constructors. No global variables hold it.
*/
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Inkpost API server.
type Config struct {
	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis), used for token revocation
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// BcryptCost is the work factor for password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// Cross-Origin Resource Sharing. Ignored in development, where every origin is allowed.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// TrustedProxies lists the IPs or CIDRs whose X-Real-IP / X-Forwarded-For
	// headers are believed. Requests from anywhere else are keyed by socket address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Tracing. TRACING_EXPORTER is "none" or "stdout".
	TracingServiceName string `env:"TRACING_SERVICE_NAME" envDefault:"inkpost-api"`
	TracingExporter    string `env:"TRACING_EXPORTER"     envDefault:"none"`
}

// Supported values of TRACING_EXPORTER.
const (
	TracingExporterNone   = "none"
	TracingExporterStdout = "stdout"
)

// # Configuration Loading

// Load reads an optional '.env' file and parses the environment into a [Config].
func Load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	return Parse()
}

// Parse maps the current process environment into a [Config] without touching '.env'.
func Parse() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	if c.TracingExporter != TracingExporterNone && c.TracingExporter != TracingExporterStdout {
		return fmt.Errorf("TRACING_EXPORTER must be %q or %q, got %q", TracingExporterNone, TracingExporterStdout, c.TracingExporter)
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

// AllowsOrigin reports whether a browser origin may call the API.
func (c *Config) AllowsOrigin(origin string) bool {
	if c.IsDevelopment() {
		return true
	}
	return slices.Contains(c.AllowedOrigins, origin)
}
