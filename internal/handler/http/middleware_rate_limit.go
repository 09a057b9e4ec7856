// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// withRateLimit admits the request by client IP. Rejected requests get 429
// with a fixed plain-text body and never reach a later stage.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := utils.ClientIP(r)
		if rc := utils.GetRequestContext(r.Context()); rc != nil {
			identity = rc.ClientIdentity
		}

		decision := h.limiter.Admit(identity)
		h.metrics.RecordRateLimitDecision(decision.String())

		if err := decision.Err(); err != nil {
			logger.FromRequest(r).Warn().Err(err).Str("client", identity).Msg("request rejected by rate limiter")
			advance(r, models.StateRejectedByRateLimit)
			utils.WriteText(w, tooManyRequestsMessage, statusFromError(err))
			return
		}

		advance(r, models.StateRateChecked)
		next.ServeHTTP(w, r)
	})
}
