// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// HealthStatusUp is reported by the health endpoint of a running gateway.
const HealthStatusUp = "UP"

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// StubResponse is returned by the placeholder business handlers mounted
// behind the admission pipeline. It echoes what the pipeline decided about
// the request.
type StubResponse struct {
	Service  string `json:"service"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`

	// UserID and Role are set for authenticated callers only.
	UserID int64 `json:"user_id,omitempty"`
	Role   Role  `json:"role,omitempty"`
}
