package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-api-gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme prefix required in the Authorization header.
const BearerPrefix = "Bearer "

// ErrNotBearer is returned by ParseBearerToken when the header is missing or
// does not carry a bearer token.
var ErrNotBearer = errors.New("authorization header is not a bearer token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a decimal string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Issuer and signKey must be non-empty and tokenDuration non-zero. A negative
// duration yields an already expired token.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("api-gateway", 42, time.Hour, "secret")
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString, Subject: claims.Subject}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key (any other
//     algorithm, including "none", is rejected)
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence
//
// The returned error wraps the jwt library error, so callers can match
// [jwt.ErrTokenExpired] or [jwt.ErrTokenSignatureInvalid] with errors.Is.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString, Subject: subject}, nil
}

// ParseBearerToken extracts the token from an Authorization header value.
// The value must start with the exact "Bearer " prefix followed by a
// non-empty token; anything else yields [ErrNotBearer].
func ParseBearerToken(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, BearerPrefix) {
		return "", ErrNotBearer
	}

	token := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, BearerPrefix))
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrNotBearer
	}

	return token, nil
}
