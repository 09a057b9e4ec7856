// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the gateway on a
// private registry exposed by [Metrics.Handler].
//
// All Record methods are safe on a nil *Metrics, which lets components run
// without instrumentation in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "api_gateway"

// Metrics holds all Prometheus metrics of the gateway.
type Metrics struct {
	rateLimitDecisions *prometheus.CounterVec
	rateLimitResets    prometheus.Counter

	pipelineOutcomes *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	accessLogDropped      prometheus.Counter
	accessLogSendFailures prometheus.Counter
	accessLogSent         prometheus.Counter

	registry *prometheus.Registry
}

// New creates the gateway metrics on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		rateLimitDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rate_limit",
				Name:      "decisions_total",
				Help:      "Total number of admission decisions by outcome",
			},
			[]string{"decision"},
		),

		rateLimitResets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "rate_limit",
				Name:      "resets_total",
				Help:      "Total number of rate limit window resets",
			},
		),

		pipelineOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "outcomes_total",
				Help:      "Total number of requests by service and final pipeline state",
			},
			[]string{"service", "state"},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"service", "method", "code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"service", "method"},
		),

		accessLogDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "access_log",
				Name:      "dropped_total",
				Help:      "Total number of access log records dropped because the queue was full",
			},
		),

		accessLogSendFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "access_log",
				Name:      "send_failures_total",
				Help:      "Total number of access log records the sink rejected",
			},
		),

		accessLogSent: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "access_log",
				Name:      "sent_total",
				Help:      "Total number of access log records delivered to the sink",
			},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.rateLimitDecisions,
		m.rateLimitResets,
		m.pipelineOutcomes,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.accessLogDropped,
		m.accessLogSendFailures,
		m.accessLogSent,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRateLimitDecision counts one admission decision ("allowed" or
// "blocked").
func (m *Metrics) RecordRateLimitDecision(decision string) {
	if m == nil {
		return
	}
	m.rateLimitDecisions.WithLabelValues(decision).Inc()
}

// RecordRateLimitReset counts one window reset.
func (m *Metrics) RecordRateLimitReset() {
	if m == nil {
		return
	}
	m.rateLimitResets.Inc()
}

// RecordRequest records the outcome of one request.
func (m *Metrics) RecordRequest(service, method, state string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.pipelineOutcomes.WithLabelValues(service, state).Inc()
	m.httpRequestsTotal.WithLabelValues(service, method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordAccessLogDropped counts a record dropped on a full queue.
func (m *Metrics) RecordAccessLogDropped() {
	if m == nil {
		return
	}
	m.accessLogDropped.Inc()
}

// RecordAccessLogSent counts one delivery attempt by result.
func (m *Metrics) RecordAccessLogSent(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.accessLogSendFailures.Inc()
		return
	}
	m.accessLogSent.Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
