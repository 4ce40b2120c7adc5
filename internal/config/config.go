// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the newsroom server.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env      : environment variable name of a scalar field.
type StructuredConfig struct {
	// App holds token signing and hashing keys and the application version.
	App App `envPrefix:"APP_"`

	// Auth holds the lockout policy and password reset settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound integrations (mail API).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level secrets and metadata.
type App struct {
	// TokenSignKey is the process-wide HMAC key of session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the session token TTL.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used to digest password reset tokens before
	// they are stored.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Auth holds the credential verifier policy.
type Auth struct {
	// LockThreshold is the number of consecutive failures that locks an account.
	// Env: AUTH_LOCK_THRESHOLD
	LockThreshold int `env:"LOCK_THRESHOLD"`

	// LockDuration is how long a lock lasts.
	// Env: AUTH_LOCK_DURATION
	LockDuration time.Duration `env:"LOCK_DURATION"`

	// ResetTokenDuration is the validity window of a password reset token.
	// Env: AUTH_RESET_TOKEN_DURATION
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION"`

	// ResetLinkBase is the front-end page the reset mail links to; the token
	// is appended as the "token" query parameter.
	// Env: AUTH_RESET_LINK_BASE
	ResetLinkBase string `env:"RESET_LINK_BASE"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database connection settings.
type DB struct {
	// DSN is either a PostgreSQL URL ("postgres://…") or a SQLite DSN
	// ("file:newsroom.db", "sqlite://newsroom.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds settings of the inbound HTTP transport.
type Server struct {
	// HTTPAddress is the "host:port" the server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Adapter holds the outbound mail API settings. With an empty MailAPIKey
// messages are only logged.
type Adapter struct {
	// Env: ADAPTER_MAIL_API_URL
	MailAPIURL string `env:"MAIL_API_URL"`
	// Env: ADAPTER_MAIL_API_KEY
	MailAPIKey string `env:"MAIL_API_KEY"`
	// Env: ADAPTER_MAIL_SECRET_KEY
	MailSecretKey string `env:"MAIL_SECRET_KEY"`
	// Env: ADAPTER_MAIL_SENDER_EMAIL
	MailSenderEmail string `env:"MAIL_SENDER_EMAIL"`
	// Env: ADAPTER_MAIL_SENDER_NAME
	MailSenderName string `env:"MAIL_SENDER_NAME"`
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// MailQueueSize is the capacity of the outbound mail queue.
	// Env: WORKERS_MAIL_QUEUE_SIZE
	MailQueueSize int `env:"MAIL_QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges and validates the configuration from
// environment variables, command-line flags, an optional JSON file and
// the built-in defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
