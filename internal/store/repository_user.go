// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-api-gateway/internal/logger"
	"github.com/MKhiriev/go-api-gateway/models"
)

// userColumns is the column list shared by every query returning a user.
// The order must match scanUser.
var userColumns = []string{
	"user_id",
	"username",
	"email",
	"display_name",
	"email_verified",
	"role",
	"provider",
	"created_at",
	"updated_at",
}

// userRepository is the SQL implementation of [UserRepository] for both
// PostgreSQL and SQLite. Queries are built with squirrel using the
// placeholder format of the connected dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// FindUserByID returns the user with the given id or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "FindUserByID", sq.Eq{"user_id": userID})
}

// FindUserByEmail returns the user owning email or [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "FindUserByEmail", sq.Eq{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository."+fn).Msg("error executing query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CreateUser inserts user and returns it with the store assigned id and
// timestamps.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	now := r.now().UTC()
	query, args, err := r.db.builder().
		Insert(user.TableName()).
		Columns("username", "email", "display_name", "email_verified", "role", "provider", "created_at", "updated_at").
		Values(user.Username, user.Email, user.DisplayName, user.EmailVerified, string(user.Role), user.Provider, now, now).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.db.isUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.CreateUser").Msg("email already exists")
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// UpdateUser overwrites the mutable fields of the user identified by
// user.UserID and returns the stored row.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Update(user.TableName()).
		SetMap(map[string]any{
			"username":       user.Username,
			"display_name":   user.DisplayName,
			"email_verified": user.EmailVerified,
			"role":           string(user.Role),
			"updated_at":     r.now().UTC(),
		}).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case err != nil:
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user models.User
		role string
	)
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.EmailVerified,
		&role,
		&user.Provider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	user.Role = models.ParseRole(role)

	return user, nil
}

func joinColumns() string {
	return strings.Join(userColumns, ", ")
}
