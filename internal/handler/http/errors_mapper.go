package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/ratelimit"
	"github.com/MKhiriev/go-api-gateway/internal/service"
	"github.com/MKhiriev/go-api-gateway/internal/store"
)

// errorStatuses is scanned in order; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{ratelimit.ErrBlocked, http.StatusTooManyRequests},

	{service.ErrMissingBearer, http.StatusUnauthorized},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrPrincipalNotFound, http.StatusUnauthorized},
	{policy.ErrAuthenticationRequired, http.StatusUnauthorized},
	{policy.ErrForbidden, http.StatusForbidden},

	{ErrMissingCode, http.StatusBadRequest},
	{ErrInvalidJSON, http.StatusBadRequest},
	{service.ErrEmailNotVerified, http.StatusForbidden},
	{service.ErrInvalidExternalProfile, http.StatusBadGateway},
	{adapter.ErrProviderNotConfigured, http.StatusServiceUnavailable},
	{service.ErrIdentityExchangeFailed, http.StatusUnauthorized},
	{service.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
	{service.ErrTokenCreationFailed, http.StatusInternalServerError},

	{store.ErrEmailAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
