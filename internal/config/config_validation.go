// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.PrincipalLookupTimeout <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.RateLimit.Limit <= 0 || cfg.RateLimit.BlockDuration <= 0 || cfg.RateLimit.ResetInterval <= 0 {
		return ErrInvalidRateLimitConfigs
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Workers.AccessLogQueueSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
