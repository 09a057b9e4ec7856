package service

import (
	"context"

	"github.com/MKhiriev/go-api-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService authenticates requests.
type AuthService interface {
	// ValidateToken checks an Authorization header value. Validation
	// failures are reported in the result, never as panics.
	ValidateToken(ctx context.Context, authorizationHeader string) models.TokenResult

	// ResolvePrincipal loads the principal named by a validated token
	// subject. It returns ErrPrincipalNotFound or ErrUpstreamUnavailable on
	// failure and has no side effects.
	ResolvePrincipal(ctx context.Context, subject string) (models.Principal, error)

	// CreateToken issues a signed token for user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
}

// OAuthService provisions local accounts for users of an external identity
// provider.
type OAuthService interface {
	Login(ctx context.Context, credential string) (models.User, models.Principal, error)
}

// AccessLogService hands access log records to the background forwarder.
type AccessLogService interface {
	// Record enqueues record without blocking. Records are dropped when the
	// queue is full.
	Record(ctx context.Context, record models.AccessLogRecord)

	// Records is drained by workers.AccessLogWorker.
	Records() <-chan models.AccessLogRecord
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
