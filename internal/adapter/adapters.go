package adapter

import (
	"fmt"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
)

// Adapters groups the outbound integrations of the gateway.
type Adapters struct {
	LogSink          LogSink
	IdentityProvider IdentityProvider
}

// NewAdapters builds every adapter from cfg. An integration whose endpoint is
// not configured is replaced by its inert variant: records go to the local
// log only and external logins fail with ErrProviderNotConfigured.
func NewAdapters(cfg config.Adapter, log *logger.Logger) (*Adapters, error) {
	adapters := &Adapters{}

	if cfg.LogSink.URL == "" {
		log.Warn().Msg("log sink url is not set, access log records stay local")
		adapters.LogSink = NewNopLogSink(log)
	} else {
		sink, err := NewHTTPLogSink(cfg.LogSink, log)
		if err != nil {
			return nil, fmt.Errorf("error creating log sink: %w", err)
		}
		adapters.LogSink = sink
	}

	if cfg.OAuth.TokenURL == "" || cfg.OAuth.UserInfoURL == "" {
		log.Warn().Msg("oauth endpoints are not set, external login disabled")
		adapters.IdentityProvider = NewDisabledIdentityProvider()
	} else {
		provider, err := NewOAuthIdentityProvider(cfg.OAuth, log)
		if err != nil {
			return nil, fmt.Errorf("error creating identity provider: %w", err)
		}
		adapters.IdentityProvider = provider
	}

	return adapters, nil
}
