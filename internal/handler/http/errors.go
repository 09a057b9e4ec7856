// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-api-gateway/internal/app"
)

// Response bodies of pipeline rejections.
const (
	tooManyRequestsMessage    = app.MsgTooManyRequests
	unauthorizedMessage       = app.MsgAuthenticationRequired
	forbiddenMessage          = app.MsgAccessDenied
	invalidCORSRequestMessage = app.MsgInvalidCORSRequest
)

var (
	// ErrMissingCode is returned by the OAuth callback when the request
	// carries no authorization code.
	ErrMissingCode = errors.New(app.MsgMissingCode)

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New(app.MsgInvalidJSON)
)
