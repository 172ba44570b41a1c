// Copyright (c) 2026 eZunder. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. In development mode a
local .env file is honoured via 'joho/godotenv'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, AI) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the eZunder API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) — refresh-token rotation bookkeeping
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing secrets. Access and refresh tokens are signed with
	// independent keys so a leaked access secret cannot mint refresh tokens.
	AccessTokenSecret  string `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret string `env:"REFRESH_TOKEN_SECRET,required"`

	// Upstream generative model provider
	AIAPIKey  string `env:"AI_API_KEY,required"`
	AIBaseURL string `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	AIModel   string `env:"AI_MODEL"    envDefault:"gemini-1.5-flash"`

	// Cross-Origin Resource Sharing (exact origin allowed in production)
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A .env file in the working directory is merged first (without overriding
// already-exported variables) so local development does not require exporting
// every secret by hand. Absence of a required secret is a startup error.
func Load() (*Config, error) {

	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CORSOrigin returns the single origin allowed in production mode.
func (c *Config) CORSOrigin() string {
	return c.AllowedOrigin
}

// SlogLevel maps the LOG_LEVEL string onto a [slog.Level].
// Unknown values fall back to Info rather than failing startup.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
