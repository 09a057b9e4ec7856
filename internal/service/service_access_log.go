package service

import (
	"context"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/models"
)

type accessLogService struct {
	queue   chan models.AccessLogRecord
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewAccessLogService constructs an AccessLogService buffering up to
// cfg.AccessLogQueueSize records.
func NewAccessLogService(cfg config.Workers, m *metrics.Metrics, logger *logger.Logger) AccessLogService {
	return &accessLogService{
		queue:   make(chan models.AccessLogRecord, cfg.AccessLogQueueSize),
		metrics: m,
		logger:  logger,
	}
}

// Record implements AccessLogService.
func (s *accessLogService) Record(ctx context.Context, record models.AccessLogRecord) {
	select {
	case s.queue <- record:
	default:
		s.metrics.RecordAccessLogDropped()
		logger.FromContext(ctx).Warn().
			Str("service", record.Service).
			Str("endpoint", record.Endpoint).
			Msg("access log queue is full, record dropped")
	}
}

// Records implements AccessLogService.
func (s *accessLogService) Records() <-chan models.AccessLogRecord {
	return s.queue
}
