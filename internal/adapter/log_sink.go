// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

type httpLogSink struct {
	client *utils.HTTPClient
	path   string
	logger *logger.Logger
}

// NewHTTPLogSink constructs a [LogSink] writing each record as a new
// document with POST {URL}/{Index}/_doc.
//
// Returns an error if cfg.URL is empty or cannot be parsed.
func NewHTTPLogSink(cfg config.LogSink, log *logger.Logger) (LogSink, error) {
	baseURL, err := normalizeBaseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid log sink url: %w", err)
	}

	return &httpLogSink{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		path:   "/" + url.PathEscape(cfg.Index) + "/_doc",
		logger: log,
	}, nil
}

// Send implements [LogSink].
func (s *httpLogSink) Send(ctx context.Context, record models.AccessLogRecord) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(s.path)
	if err != nil {
		return fmt.Errorf("log sink request: %w", err)
	}

	return mapHTTPError(resp)
}

type nopLogSink struct {
	logger *logger.Logger
}

// NewNopLogSink returns a [LogSink] that only writes records to the local
// debug log. It is used when no sink URL is configured.
func NewNopLogSink(log *logger.Logger) LogSink {
	return &nopLogSink{logger: log}
}

// Send implements [LogSink].
func (s *nopLogSink) Send(_ context.Context, record models.AccessLogRecord) error {
	s.logger.Debug().
		Str("service", record.Service).
		Str("endpoint", record.Endpoint).
		Str("method", record.Method).
		Int("status", record.StatusCode).
		Int64("elapsed_ms", record.ElapsedMs).
		Msg("access log")
	return nil
}
