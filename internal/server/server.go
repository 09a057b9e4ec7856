package server

import (
	"context"
	"time"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/handler"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

// ShutdownTimeout bounds the graceful shutdown of all transports.
const ShutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	if s.httpServer == nil && s.gRPCServer == nil {
		return errNoServersToRun
	}

	errs := make(chan error, 2)
	launch := func(name string, run func() error) {
		s.logger.Info().Msgf("Launching %s server", name)
		go func() {
			if err := run(); err != nil {
				errs <- err
			}
		}()
	}

	if s.httpServer != nil {
		launch("HTTP", s.httpServer.RunServer)
	}
	if s.gRPCServer != nil {
		launch("gRPC", s.gRPCServer.RunServer)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errs:
		s.logger.Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}

func (s *server) Shutdown(ctx context.Context) {
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}
