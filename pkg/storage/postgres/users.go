package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bookden/bookden/pkg/api"
	"github.com/bookden/bookden/pkg/storage"
)

// CreateUser persists a new user. The unique indexes on lower(email) and
// lower(username) make the database the final arbiter for concurrent
// registrations; violations surface as storage.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, user *api.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, profile_image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.ProfileImage, user.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID. The password hash is not selected.
func (s *Store) GetUserByID(ctx context.Context, id string) (*api.User, error) {
	var user api.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, profile_image, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Email, &user.ProfileImage, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, case-insensitively, including
// the password hash for credential verification.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	var user api.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, profile_image, created_at
		FROM users
		WHERE lower(email) = lower($1)
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.ProfileImage, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
// The password hash is not selected.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*api.User, error) {
	var user api.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, email, profile_image, created_at
		FROM users
		WHERE lower(username) = lower($1)
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.ProfileImage, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("querying user by username: %w", err)
	}
	return &user, nil
}
