// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// gateway. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Server holds network addresses, timeouts and CORS settings.
	Server Server `envPrefix:"SERVER_"`

	// RateLimit holds the admission control thresholds.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Storage holds the user store connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds settings of outbound integrations: the access log sink
	// and the OAuth identity provider.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds settings of background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token lifecycle settings.
type App struct {
	// TokenSignKey is the shared HMAC secret used to sign and verify JWT
	// tokens. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token and
	// validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PrincipalLookupTimeout bounds the user store lookup performed for every
	// authenticated request. A lookup that exceeds it fails closed.
	// Env: APP_PRINCIPAL_LOOKUP_TIMEOUT
	PrincipalLookupTimeout time.Duration `env:"PRINCIPAL_LOOKUP_TIMEOUT"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health endpoint.
	// The endpoint is disabled when empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CORSAllowedOrigins lists origins allowed to call the gateway from a
	// browser. "*" allows any origin; "*.example.com" allows subdomains.
	// Env: SERVER_CORS_ALLOWED_ORIGINS (comma separated)
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// RateLimit holds the fixed-window admission control settings.
type RateLimit struct {
	// Limit is the number of requests admitted per identity per reset cycle.
	// Env: RATE_LIMIT_LIMIT
	Limit int `env:"LIMIT"`

	// BlockDuration is the nominal penalty applied to an identity that
	// exceeds Limit. A reset clears blocks regardless of this value.
	// Env: RATE_LIMIT_BLOCK_DURATION
	BlockDuration time.Duration `env:"BLOCK_DURATION"`

	// ResetInterval is the period after which all counters and blocks are
	// cleared.
	// Env: RATE_LIMIT_RESET_INTERVAL
	ResetInterval time.Duration `env:"RESET_INTERVAL"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the user store.
type DB struct {
	// DSN is the data source name of the user store. A "postgres://" or
	// "postgresql://" DSN selects PostgreSQL; a "file:" DSN or a path ending
	// in ".db" selects SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	// LogSink configures the external access log store.
	LogSink LogSink `envPrefix:"LOG_SINK_"`

	// OAuth configures the external identity provider.
	OAuth OAuth `envPrefix:"OAUTH_"`
}

// LogSink holds settings of the Elasticsearch-compatible access log store.
type LogSink struct {
	// URL is the base URL of the store. Forwarding is disabled when empty.
	// Env: ADAPTER_LOG_SINK_URL
	URL string `env:"URL"`

	// Index is the name of the index documents are written to.
	// Env: ADAPTER_LOG_SINK_INDEX
	Index string `env:"INDEX"`

	// RequestTimeout bounds a single write to the store.
	// Env: ADAPTER_LOG_SINK_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// OAuth holds the identity provider client settings.
type OAuth struct {
	// Provider is the provider tag appended to generated usernames.
	// Env: ADAPTER_OAUTH_PROVIDER
	Provider string `env:"PROVIDER"`

	// ClientID and ClientSecret are the OAuth client credentials.
	// Env: ADAPTER_OAUTH_CLIENT_ID, ADAPTER_OAUTH_CLIENT_SECRET
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// RedirectURL is the callback registered at the provider.
	// Env: ADAPTER_OAUTH_REDIRECT_URL
	RedirectURL string `env:"REDIRECT_URL"`

	// TokenURL is the provider endpoint exchanging an authorization code for
	// an access token.
	// Env: ADAPTER_OAUTH_TOKEN_URL
	TokenURL string `env:"TOKEN_URL"`

	// UserInfoURL is the provider endpoint returning the verified profile.
	// Env: ADAPTER_OAUTH_USER_INFO_URL
	UserInfoURL string `env:"USER_INFO_URL"`

	// RequestTimeout bounds every call to the provider.
	// Env: ADAPTER_OAUTH_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AccessLogQueueSize is the capacity of the buffer between the request
	// pipeline and the access log sink. Records are dropped when it is full.
	// Env: WORKERS_ACCESS_LOG_QUEUE_SIZE
	AccessLogQueueSize int `env:"ACCESS_LOG_QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Unset values are filled with defaults before validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withEnv().
		withFlags().
		withJSON().
		build()
}
