// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued by the gateway.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be returned in the Authorization header.
type Token struct {
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Subject is a cached copy of the "sub" claim of a validated token.
	Subject string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenResult is the outcome of validating an Authorization header.
// Validation failures are ordinary values: Valid is false and Reason
// holds the sentinel error describing the failure.
type TokenResult struct {
	Valid   bool
	Subject string
	Reason  error
}

// ValidToken builds a successful [TokenResult] for subject.
func ValidToken(subject string) TokenResult {
	return TokenResult{Valid: true, Subject: subject}
}

// InvalidToken builds a failed [TokenResult] carrying reason.
func InvalidToken(reason error) TokenResult {
	return TokenResult{Reason: reason}
}
