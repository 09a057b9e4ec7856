// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
)

// RateLimitResetWorker clears the rate limiter every interval.
type RateLimitResetWorker struct {
	limiter  Resetter
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewRateLimitResetWorker(limiter Resetter, interval time.Duration, m *metrics.Metrics, logger *logger.Logger) *RateLimitResetWorker {
	return &RateLimitResetWorker{
		limiter:  limiter,
		interval: interval,
		metrics:  m,
		logger:   logger,
	}
}

// Run resets the limiter on every tick until ctx is cancelled.
// A non-positive interval disables the worker.
func (w *RateLimitResetWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Msg("rate limit reset interval is not positive, reset worker disabled")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("rate limit reset worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("rate limit reset worker stopped")
			return
		case <-ticker.C:
			w.limiter.Reset()
			w.metrics.RecordRateLimitReset()
			w.logger.Debug().Msg("rate limiter reset")
		}
	}
}
