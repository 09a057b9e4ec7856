package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/models"
)

func TestAccessLogService_RecordEnqueues(t *testing.T) {
	svc := NewAccessLogService(config.Workers{AccessLogQueueSize: 2}, metrics.New(), logger.Nop())
	rec := models.AccessLogRecord{Service: "user-service", Endpoint: "/api/users/1", Method: "GET", StatusCode: 200, Timestamp: time.Now()}

	svc.Record(context.Background(), rec)

	select {
	case got := <-svc.Records():
		assert.Equal(t, rec, got)
	default:
		t.Fatal("record was not enqueued")
	}
}

func TestAccessLogService_FullQueue_DropsWithoutBlocking(t *testing.T) {
	svc := NewAccessLogService(config.Workers{AccessLogQueueSize: 1}, metrics.New(), logger.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			svc.Record(context.Background(), models.AccessLogRecord{StatusCode: 200 + i})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full queue")
	}

	require.Len(t, svc.Records(), 1)
	assert.Equal(t, 200, (<-svc.Records()).StatusCode)
}

func TestAccessLogService_NilMetrics(t *testing.T) {
	svc := NewAccessLogService(config.Workers{AccessLogQueueSize: 0}, nil, logger.Nop())

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), models.AccessLogRecord{})
	})
}
