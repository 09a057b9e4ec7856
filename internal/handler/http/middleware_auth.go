package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/service"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// authenticate resolves the caller of routes whose rule needs a principal.
//
// The request is rejected with 401 when:
//   - the "Authorization" header is absent or not a bearer token;
//   - the token is expired, badly signed or from another issuer;
//   - the token subject names no user;
//   - the user store is unavailable or slow (fail closed).
//
// Public routes pass through without inspecting the header.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.ruleFor(r).NeedsPrincipal() {
			advance(r, models.StateAuthResolved)
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		log := logger.FromRequest(r)

		result := h.services.AuthService.ValidateToken(ctx, r.Header.Get("Authorization"))
		if !result.Valid {
			log.Err(result.Reason).Msg("token rejected")
			h.rejectUnauthenticated(w, r)
			return
		}

		principal, err := h.services.AuthService.ResolvePrincipal(ctx, result.Subject)
		if err != nil {
			if errors.Is(err, service.ErrUpstreamUnavailable) {
				log.Err(err).Str("subject", result.Subject).Msg("principal lookup failed, rejecting")
			} else {
				log.Err(err).Str("subject", result.Subject).Msg("principal not resolved")
			}
			h.rejectUnauthenticated(w, r)
			return
		}

		if rc := utils.GetRequestContext(ctx); rc != nil {
			rc.Principal = &principal
		}
		advance(r, models.StateAuthResolved)

		next.ServeHTTP(w, r.WithContext(utils.WithPrincipal(ctx, principal)))
	})
}

// authorize applies the route's rule to the resolved principal. Passing
// requests are dispatched to the business handler.
func (h *Handler) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var principal *models.Principal
		if p, ok := utils.GetPrincipalFromContext(r.Context()); ok {
			principal = &p
		}

		rule := h.ruleFor(r)
		if err := rule.Allows(principal); err != nil {
			if errors.Is(err, policy.ErrAuthenticationRequired) {
				h.rejectUnauthenticated(w, r)
				return
			}
			logger.FromRequest(r).Warn().
				Int64("user_id", principal.UserID).
				Str("role", string(principal.Role)).
				Str("rule", rule.String()).
				Msg("request rejected by route policy")
			advance(r, models.StateRejectedUnauthorized)
			utils.WriteError(w, forbiddenMessage, statusFromError(err))
			return
		}

		advance(r, models.StateAuthorizationChecked)
		advance(r, models.StateDispatched)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	advance(r, models.StateRejectedUnauthenticated)
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
}
