// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Errors mapped from upstream HTTP statuses.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

var (
	// ErrEmptyCredential is returned by [IdentityProvider.Exchange] when no
	// authorization code was supplied.
	ErrEmptyCredential = errors.New("empty credential")

	// ErrMissingAccessToken is returned when the token endpoint answers
	// without an access token.
	ErrMissingAccessToken = errors.New("identity provider returned no access token")

	// ErrProviderNotConfigured is returned by the identity provider used
	// when no OAuth endpoints are configured.
	ErrProviderNotConfigured = errors.New("identity provider is not configured")

	// ErrEmptyAddress is returned when an adapter is configured without a
	// base URL.
	ErrEmptyAddress = errors.New("empty address")
)
