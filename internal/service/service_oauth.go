package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-api-gateway/internal/adapter"
	"github.com/MKhiriev/go-api-gateway/internal/config"
	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/internal/store"
	"github.com/MKhiriev/go-api-gateway/models"
)

const (
	// usernameFallback replaces a display name with no usable characters.
	usernameFallback = "user"

	// usernameSuffixLength is the number of random hex characters appended
	// to generated usernames.
	usernameSuffixLength = 8

	maxUsernameBaseLength = 32
)

type suffixGenerator interface {
	ShortHex(n int) string
}

// oauthService provisions local accounts on external login.
type oauthService struct {
	userRepository store.UserRepository
	provider       adapter.IdentityProvider
	suffixes       suffixGenerator

	// providerTag is used when the provider does not tag its profiles.
	providerTag string

	logger *logger.Logger
}

// NewOAuthService constructs an OAuthService.
func NewOAuthService(
	userRepository store.UserRepository,
	provider adapter.IdentityProvider,
	suffixes suffixGenerator,
	cfg config.OAuth,
	logger *logger.Logger,
) OAuthService {
	return &oauthService{
		userRepository: userRepository,
		provider:       provider,
		suffixes:       suffixes,
		providerTag:    cfg.Provider,
		logger:         logger,
	}
}

// Login implements OAuthService.
//
// The credential is exchanged for a profile. A profile whose e-mail the
// provider has not verified is rejected before the store is read. A user
// unknown by e-mail is created with a generated username, role USER and a
// verified e-mail. A known user with an unverified e-mail is marked verified.
//
// Two first logins racing on the same e-mail are resolved by the store's
// unique e-mail constraint: the loser reads the winner's row.
func (s *oauthService) Login(ctx context.Context, credential string) (models.User, models.Principal, error) {
	log := logger.FromContext(ctx)

	profile, err := s.provider.Exchange(ctx, credential)
	if err != nil {
		log.Err(err).Msg("identity provider exchange failed")
		return models.User{}, models.Principal{}, fmt.Errorf("%w: %w", ErrIdentityExchangeFailed, err)
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return models.User{}, models.Principal{}, ErrInvalidExternalProfile
	}
	profile.Email = email
	if profile.Provider == "" {
		profile.Provider = s.providerTag
	}
	if !profile.EmailVerified {
		log.Warn().Str("provider", profile.Provider).Msg("identity provider did not verify the email")
		return models.User{}, models.Principal{}, ErrEmailNotVerified
	}

	user, err := s.userRepository.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		user, err = s.createUser(ctx, profile)
		if err != nil {
			return models.User{}, models.Principal{}, err
		}
	case err != nil:
		log.Err(err).Msg("user lookup by email failed")
		return models.User{}, models.Principal{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	if !user.EmailVerified {
		user.EmailVerified = true
		updated, updateErr := s.userRepository.UpdateUser(ctx, user)
		if updateErr != nil {
			log.Err(updateErr).Int64("user_id", user.UserID).Msg("marking email verified failed")
			return models.User{}, models.Principal{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, updateErr)
		}
		user = updated
	}

	return user, user.Principal(), nil
}

func (s *oauthService) createUser(ctx context.Context, profile models.ExternalProfile) (models.User, error) {
	log := logger.FromContext(ctx)

	newUser := models.User{
		Username:      GenerateUsername(profile.DisplayName, profile.Provider, s.suffixes.ShortHex(usernameSuffixLength)),
		Email:         profile.Email,
		DisplayName:   profile.DisplayName,
		EmailVerified: true,
		Role:          models.RoleUser,
		Provider:      profile.Provider,
	}

	created, err := s.userRepository.CreateUser(ctx, newUser)
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		log.Debug().Msg("concurrent first login, reading existing user")
		existing, findErr := s.userRepository.FindUserByEmail(ctx, profile.Email)
		if findErr != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, findErr)
		}
		return existing, nil
	case err != nil:
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	log.Info().Int64("user_id", created.UserID).Str("provider", created.Provider).Msg("provisioned user from external login")
	return created, nil
}

// GenerateUsername builds "<base>_<provider>_<suffix>". base is the display
// name reduced to lowercase letters and digits, or "user" when nothing is
// left.
func GenerateUsername(displayName, provider, suffix string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(displayName) {
		if b.Len() >= maxUsernameBaseLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}

	base := b.String()
	if base == "" {
		base = usernameFallback
	}

	return base + "_" + provider + "_" + suffix
}
