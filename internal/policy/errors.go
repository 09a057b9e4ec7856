// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import "errors"

var (
	// ErrAuthenticationRequired is returned when a route needs a principal
	// and the request carries none.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrForbidden is returned when the principal's role is not allowed on
	// the route.
	ErrForbidden = errors.New("forbidden")
)
