package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/store"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// authService is the concrete implementation of AuthService.
// It validates HMAC-SHA256 JWT tokens and resolves their subject against a
// UserRepository.
type authService struct {
	// userRepository is the data-access layer used to look up principals.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// lookupTimeout bounds a single principal lookup.
	lookupTimeout time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		lookupTimeout:  cfg.PrincipalLookupTimeout,
		logger:         logger,
	}
}

// ValidateToken implements AuthService.
//
// The header must carry the exact "Bearer " prefix; otherwise the token is
// not parsed at all and the result reason is ErrMissingBearer. Signature,
// algorithm, issuer and expiry are then verified. An elapsed expiry yields
// ErrTokenIsExpired, every other failure ErrTokenIsExpiredOrInvalid.
func (a *authService) ValidateToken(ctx context.Context, authorizationHeader string) models.TokenResult {
	log := logger.FromContext(ctx)

	rawToken, err := utils.ParseBearerToken(authorizationHeader)
	if err != nil {
		return models.InvalidToken(ErrMissingBearer)
	}

	token, err := utils.ValidateAndParseJWTToken(rawToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.InvalidToken(ErrTokenIsExpired)
		}
		return models.InvalidToken(ErrTokenIsExpiredOrInvalid)
	}

	return models.ValidToken(token.Subject)
}

// ResolvePrincipal implements AuthService.
//
// The subject must be a decimal user id. The lookup runs under the
// configured timeout; a timeout or store failure is reported as
// ErrUpstreamUnavailable so that callers fail closed.
func (a *authService) ResolvePrincipal(ctx context.Context, subject string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		log.Debug().Str("subject", subject).Msg("token subject is not a user id")
		return models.Principal{}, ErrPrincipalNotFound
	}

	lookupCtx := ctx
	if a.lookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, a.lookupTimeout)
		defer cancel()
	}

	user, err := a.userRepository.FindUserByID(lookupCtx, userID)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		log.Debug().Int64("user_id", userID).Msg("principal not found")
		return models.Principal{}, ErrPrincipalNotFound
	case err != nil:
		log.Err(err).Int64("user_id", userID).Msg("principal lookup failed")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	return user.Principal(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}
