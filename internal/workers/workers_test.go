// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/mock"
	"github.com/MKhiriev/go-api-gateway/models"
)

// blockingWorker is a test implementation of the Worker interface that
// records its start and returns when ctx is cancelled.
type blockingWorker struct {
	started atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Add(1)
	<-ctx.Done()
}

type countingResetter struct {
	resets atomic.Int32
}

func (c *countingResetter) Reset() {
	c.resets.Add(1)
}

func runAsync(ctx context.Context, w Worker) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

// ─────────────────────────────────────────────
// Workers
// ─────────────────────────────────────────────

func TestWorkers_Run_AllWorkersStartAndStop(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ws.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1 && w3.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	waitDone(t, done)
}

func TestWorkers_Run_Empty(t *testing.T) {
	// Should return immediately on an empty workers list
	NewWorkers().Run(context.Background())
	(&Workers{}).Run(context.Background())
}

// ─────────────────────────────────────────────
// RateLimitResetWorker
// ─────────────────────────────────────────────

func TestRateLimitResetWorker_ResetsOnEveryTick(t *testing.T) {
	resetter := &countingResetter{}
	w := NewRateLimitResetWorker(resetter, 10*time.Millisecond, metrics.New(), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, w)

	require.Eventually(t, func() bool { return resetter.resets.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	waitDone(t, done)
}

func TestRateLimitResetWorker_StopsOnCancel(t *testing.T) {
	resetter := &countingResetter{}
	w := NewRateLimitResetWorker(resetter, time.Hour, nil, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, w)
	cancel()
	waitDone(t, done)

	assert.Zero(t, resetter.resets.Load())
}

func TestRateLimitResetWorker_NonPositiveInterval_ReturnsImmediately(t *testing.T) {
	resetter := &countingResetter{}
	w := NewRateLimitResetWorker(resetter, 0, nil, logger.Nop())

	waitDone(t, runAsync(context.Background(), w))
	assert.Zero(t, resetter.resets.Load())
}

// ─────────────────────────────────────────────
// AccessLogWorker
// ─────────────────────────────────────────────

func TestAccessLogWorker_ForwardsRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockLogSink(ctrl)
	records := make(chan models.AccessLogRecord, 2)

	var mu sync.Mutex
	var got []models.AccessLogRecord
	sink.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec models.AccessLogRecord) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			mu.Lock()
			got = append(got, rec)
			mu.Unlock()
			return nil
		}).
		Times(2)

	records <- models.AccessLogRecord{Service: "user-service", StatusCode: 200}
	records <- models.AccessLogRecord{Service: "map-service", StatusCode: 404}
	close(records)

	w := NewAccessLogWorker(records, sink, time.Second, metrics.New(), logger.Nop())
	waitDone(t, runAsync(context.Background(), w))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, "user-service", got[0].Service)
	assert.Equal(t, "map-service", got[1].Service)
}

func TestAccessLogWorker_SinkFailure_KeepsGoing(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockLogSink(ctrl)
	records := make(chan models.AccessLogRecord, 3)

	gomock.InOrder(
		sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")),
		sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("connection refused")),
		sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
	)

	for i := 0; i < 3; i++ {
		records <- models.AccessLogRecord{StatusCode: 200}
	}
	close(records)

	w := NewAccessLogWorker(records, sink, 0, nil, logger.Nop())
	waitDone(t, runAsync(context.Background(), w))
}

func TestAccessLogWorker_FlushesQueueOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock.NewMockLogSink(ctrl)
	records := make(chan models.AccessLogRecord, 4)
	for i := 0; i < 4; i++ {
		records <- models.AccessLogRecord{StatusCode: 200}
	}

	sink.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.AccessLogRecord) error {
			assert.NoError(t, ctx.Err())
			return nil
		}).
		Times(4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewAccessLogWorker(records, sink, time.Second, nil, logger.Nop())
	waitDone(t, runAsync(ctx, w))

	assert.Empty(t, records)
}
