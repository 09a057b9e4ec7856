// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the gateway writes into
// response bodies, kept in one place so every rejection is worded the same.
package app

const (
	// MsgTooManyRequests is the plain-text body of a rate limited response.
	MsgTooManyRequests = "Too many requests. Please try again later."

	// MsgAuthenticationRequired is returned when a route needs a caller and
	// none could be resolved from the request.
	MsgAuthenticationRequired = "authentication required"

	// MsgAccessDenied is returned when the caller's role does not satisfy
	// the route policy.
	MsgAccessDenied = "access denied"

	// MsgInvalidCORSRequest is returned for preflights from origins that are
	// not allowed.
	MsgInvalidCORSRequest = "Invalid CORS request"

	// MsgMissingCode is returned by the OAuth callback without a code.
	MsgMissingCode = "missing authorization code"

	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"
)
