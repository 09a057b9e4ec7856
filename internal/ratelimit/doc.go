// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements the process-local admission control used by
// the gateway.
//
// A [Limiter] counts requests per client identity inside a single window
// that lasts until the next [Limiter.Reset]. Once an identity exceeds the
// limit it is blocked for the configured block duration. A reset replaces
// the whole window, which clears every counter and every block at once, so
// the effective block never outlives the reset interval.
//
// Resets are driven by workers.RateLimitResetWorker.
package ratelimit
