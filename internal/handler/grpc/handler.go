package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

// ServiceName is the name the gateway reports in gRPC health checks.
const ServiceName = "api-gateway"

// Handler serves the standard gRPC health checking protocol for
// orchestrators that probe over gRPC.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler returns a [Handler] reporting SERVING for the overall server
// and for [ServiceName].
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Shutdown switches every service to NOT_SERVING so that probes fail while
// the server drains.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
