// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultHTTPAddress            = "0.0.0.0:8080"
	DefaultRequestTimeout         = 30 * time.Second
	DefaultTokenIssuer            = "go-api-gateway"
	DefaultTokenDuration          = 24 * time.Hour
	DefaultPrincipalLookupTimeout = 2 * time.Second
	DefaultRateLimit              = 60
	DefaultBlockDuration          = 10 * time.Minute
	DefaultResetInterval          = 60 * time.Second
	DefaultLogSinkIndex           = "api-gateway-logs"
	DefaultLogSinkRequestTimeout  = 5 * time.Second
	DefaultOAuthProvider          = "google"
	DefaultOAuthRequestTimeout    = 10 * time.Second
	DefaultAccessLogQueueSize     = 1024
)

// applyDefaults fills every zero-valued setting that has a sensible default.
// Secrets and DSNs have no defaults.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.PrincipalLookupTimeout == 0 {
		cfg.App.PrincipalLookupTimeout = DefaultPrincipalLookupTimeout
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = DefaultRateLimit
	}
	if cfg.RateLimit.BlockDuration == 0 {
		cfg.RateLimit.BlockDuration = DefaultBlockDuration
	}
	if cfg.RateLimit.ResetInterval == 0 {
		cfg.RateLimit.ResetInterval = DefaultResetInterval
	}
	if cfg.Adapter.LogSink.Index == "" {
		cfg.Adapter.LogSink.Index = DefaultLogSinkIndex
	}
	if cfg.Adapter.LogSink.RequestTimeout == 0 {
		cfg.Adapter.LogSink.RequestTimeout = DefaultLogSinkRequestTimeout
	}
	if cfg.Adapter.OAuth.Provider == "" {
		cfg.Adapter.OAuth.Provider = DefaultOAuthProvider
	}
	if cfg.Adapter.OAuth.RequestTimeout == 0 {
		cfg.Adapter.OAuth.RequestTimeout = DefaultOAuthRequestTimeout
	}
	if cfg.Workers.AccessLogQueueSize == 0 {
		cfg.Workers.AccessLogQueueSize = DefaultAccessLogQueueSize
	}
}
