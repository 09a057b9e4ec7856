package http

import (
	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/ratelimit"
	"github.com/MKhiriev/go-api-gateway/internal/service"
)

// RateLimiter admits or rejects a client identity.
type RateLimiter interface {
	Admit(identity string) ratelimit.Decision
}

type Handler struct {
	services *service.Services
	limiter  RateLimiter
	routes   *policy.Table
	cors     *corsPolicy
	metrics  *metrics.Metrics

	logger *logger.Logger
}

func NewHandler(
	services *service.Services,
	limiter RateLimiter,
	routes *policy.Table,
	m *metrics.Metrics,
	cfg config.Server,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		routes:   routes,
		cors:     newCORSPolicy(cfg.CORSAllowedOrigins),
		metrics:  m,
		logger:   logger,
	}
}
