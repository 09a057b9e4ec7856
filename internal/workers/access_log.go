// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/models"
)

// AccessLogWorker forwards completed request records to the log sink.
// Sink failures are logged and counted; they never reach the client.
type AccessLogWorker struct {
	records     <-chan models.AccessLogRecord
	sink        adapter.LogSink
	sendTimeout time.Duration
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewAccessLogWorker(
	records <-chan models.AccessLogRecord,
	sink adapter.LogSink,
	sendTimeout time.Duration,
	m *metrics.Metrics,
	logger *logger.Logger,
) *AccessLogWorker {
	return &AccessLogWorker{
		records:     records,
		sink:        sink,
		sendTimeout: sendTimeout,
		metrics:     m,
		logger:      logger,
	}
}

// Run drains records until ctx is cancelled or the channel is closed.
// Records still queued at cancellation are flushed with a fresh deadline.
func (w *AccessLogWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case rec, ok := <-w.records:
			if !ok {
				return
			}
			w.send(ctx, rec)
		}
	}
}

func (w *AccessLogWorker) drain() {
	for {
		select {
		case rec, ok := <-w.records:
			if !ok {
				return
			}
			w.send(context.Background(), rec)
		default:
			return
		}
	}
}

func (w *AccessLogWorker) send(ctx context.Context, rec models.AccessLogRecord) {
	sendCtx := context.WithoutCancel(ctx)
	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(sendCtx, w.sendTimeout)
		defer cancel()
	}

	err := w.sink.Send(sendCtx, rec)
	w.metrics.RecordAccessLogSent(err)
	if err != nil {
		w.logger.Err(err).
			Str("service", rec.Service).
			Str("endpoint", rec.Endpoint).
			Int("status", rec.StatusCode).
			Msg("forwarding access log record failed")
	}
}
