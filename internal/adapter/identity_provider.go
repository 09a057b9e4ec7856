// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// tokenResponse is the subset of an OAuth 2.0 token response the gateway
// reads.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type oauthIdentityProvider struct {
	client *utils.HTTPClient
	cfg    config.OAuth
	logger *logger.Logger
}

// NewOAuthIdentityProvider constructs an [IdentityProvider] implementing the
// OAuth 2.0 authorization code flow: the code is exchanged at cfg.TokenURL
// and the resulting access token is used to read cfg.UserInfoURL.
func NewOAuthIdentityProvider(cfg config.OAuth, log *logger.Logger) (IdentityProvider, error) {
	if _, err := normalizeBaseURL(cfg.TokenURL); err != nil {
		return nil, fmt.Errorf("invalid oauth token url: %w", err)
	}
	if _, err := normalizeBaseURL(cfg.UserInfoURL); err != nil {
		return nil, fmt.Errorf("invalid oauth user info url: %w", err)
	}

	return &oauthIdentityProvider{
		client: utils.NewHTTPClient("", cfg.RequestTimeout),
		cfg:    cfg,
		logger: log,
	}, nil
}

// Exchange implements [IdentityProvider].
func (p *oauthIdentityProvider) Exchange(ctx context.Context, credential string) (models.ExternalProfile, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return models.ExternalProfile{}, ErrEmptyCredential
	}

	accessToken, err := p.exchangeCode(ctx, credential)
	if err != nil {
		return models.ExternalProfile{}, err
	}

	var profile models.ExternalProfile
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Accept", "application/json").
		SetResult(&profile).
		Get(p.cfg.UserInfoURL)
	if err != nil {
		return models.ExternalProfile{}, fmt.Errorf("user info request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ExternalProfile{}, fmt.Errorf("user info: %w", err)
	}

	profile.Email = strings.TrimSpace(profile.Email)
	profile.Provider = p.cfg.Provider

	return profile, nil
}

func (p *oauthIdentityProvider) exchangeCode(ctx context.Context, code string) (string, error) {
	var token tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     p.cfg.ClientID,
			"client_secret": p.cfg.ClientSecret,
			"redirect_uri":  p.cfg.RedirectURL,
		}).
		SetResult(&token).
		Post(p.cfg.TokenURL)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if token.AccessToken == "" {
		return "", ErrMissingAccessToken
	}

	return token.AccessToken, nil
}

type disabledIdentityProvider struct{}

// NewDisabledIdentityProvider returns an [IdentityProvider] that rejects every
// exchange with [ErrProviderNotConfigured].
func NewDisabledIdentityProvider() IdentityProvider {
	return disabledIdentityProvider{}
}

// Exchange implements [IdentityProvider].
func (disabledIdentityProvider) Exchange(context.Context, string) (models.ExternalProfile, error) {
	return models.ExternalProfile{}, ErrProviderNotConfigured
}
