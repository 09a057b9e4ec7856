// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

type ruleCtxKey struct{}

// advance records state on the request's pipeline record, if any.
func advance(r *http.Request, state models.PipelineState) {
	if rc := utils.GetRequestContext(r.Context()); rc != nil {
		rc.State = state
	}
}

// ruleFor returns the authorization rule stored by withRouteClassification,
// classifying the path itself when the stage did not run.
func (h *Handler) ruleFor(r *http.Request) policy.Rule {
	if rule, ok := r.Context().Value(ruleCtxKey{}).(policy.Rule); ok {
		return rule
	}
	return h.routes.Rule(r.URL.Path)
}

// withRouteClassification resolves the logical service and the
// authorization rule of the request path.
func (h *Handler) withRouteClassification(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service, rule := h.routes.Classify(r.URL.Path)
		if rc := utils.GetRequestContext(r.Context()); rc != nil {
			rc.Service = service
		}
		advance(r, models.StateRouteClassified)

		ctx := context.WithValue(r.Context(), ruleCtxKey{}, rule)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
