// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PipelineState is a step of the request admission pipeline.
type PipelineState string

const (
	StateStart                   PipelineState = "start"
	StateRateChecked             PipelineState = "rate_checked"
	StateRouteClassified         PipelineState = "route_classified"
	StateAuthResolved            PipelineState = "auth_resolved"
	StateAuthorizationChecked    PipelineState = "authorization_checked"
	StateDispatched              PipelineState = "dispatched"
	StateCompleted               PipelineState = "completed"
	StateRejectedByRateLimit     PipelineState = "rejected_by_rate_limit"
	StateRejectedUnauthenticated PipelineState = "rejected_unauthenticated"
	StateRejectedUnauthorized    PipelineState = "rejected_unauthorized"
)

// IsTerminal reports whether no further pipeline stage may run after s.
func (s PipelineState) IsTerminal() bool {
	switch s {
	case StateCompleted, StateRejectedByRateLimit, StateRejectedUnauthenticated, StateRejectedUnauthorized:
		return true
	default:
		return false
	}
}

// RequestContext is created at request entry and shared by every pipeline
// stage of a single request. It is discarded when the request ends.
type RequestContext struct {
	Path           string
	Method         string
	ClientIdentity string
	StartTime      time.Time

	// Service is the logical service the path was classified to.
	Service string

	// Principal is set once the caller has been authenticated.
	Principal *Principal

	// State is the last pipeline state reached by the request.
	State PipelineState
}
