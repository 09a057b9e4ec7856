package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// ErrMissingBearer is the reason of a [models.TokenResult] for a missing
	// Authorization header or one without the "Bearer " prefix.
	ErrMissingBearer = errors.New("missing bearer token")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrPrincipalNotFound is returned when a token subject does not name an
	// existing user.
	ErrPrincipalNotFound = errors.New("principal not found")

	// ErrUpstreamUnavailable is returned when the user store failed or did
	// not answer within the lookup timeout.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidExternalProfile is returned when the identity provider
	// answers without an e-mail address.
	ErrInvalidExternalProfile = errors.New("external profile has no email")

	// ErrEmailNotVerified is returned when the identity provider has not
	// verified the profile e-mail.
	ErrEmailNotVerified = errors.New("external profile email is not verified")

	// ErrIdentityExchangeFailed wraps identity provider failures.
	ErrIdentityExchangeFailed = errors.New("identity provider exchange failed")
)
