// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the gateway.
//
// [LogSink] forwards access log records to an Elasticsearch-compatible
// document store and [IdentityProvider] exchanges an OAuth authorization code
// for a verified profile. Both are implemented over resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-api-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// LogSink stores access log records outside the gateway.
// Delivery is best effort; callers log and drop failed records.
type LogSink interface {
	Send(ctx context.Context, record models.AccessLogRecord) error
}

// IdentityProvider exchanges a credential issued by an external identity
// provider for the profile of the user who granted it.
type IdentityProvider interface {
	Exchange(ctx context.Context, credential string) (models.ExternalProfile, error)
}
