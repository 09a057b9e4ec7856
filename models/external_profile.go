// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ExternalProfile is the verified identity returned by an external identity
// provider after a successful credential exchange.
type ExternalProfile struct {
	Email         string `json:"email"`
	DisplayName   string `json:"name"`
	EmailVerified bool   `json:"email_verified"`

	// Provider is the tag of the identity provider (e.g. "google").
	Provider string `json:"-"`
}

// OAuthCallback is the body accepted by the OAuth callback endpoint.
type OAuthCallback struct {
	Code string `json:"code"`
}

// LoginResponse is returned to the client after a successful external login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
