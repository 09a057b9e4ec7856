package service

import (
	"fmt"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/metrics"
	"github.com/MKhiriev/go-api-gateway/internal/store"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

type Services struct {
	AuthService      AuthService
	OAuthService     OAuthService
	AccessLogService AccessLogService
	AppInfoService   AppInfoService
}

func NewServices(
	storages *store.Storages,
	provider adapter.IdentityProvider,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	m *metrics.Metrics,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		OAuthService:     NewOAuthService(storages.UserRepository, provider, utils.NewUUIDGenerator(), cfg.Adapter.OAuth, logger),
		AccessLogService: NewAccessLogService(cfg.Workers, m, logger),
		AppInfoService:   appInfoService,
	}, nil
}
