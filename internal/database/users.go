package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

const userColumns = `id, fullname, username, email, password_hash, avatar_url, avatar_id,
	       cover_url, cover_id, refresh_token, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Fullname, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.AvatarID, &user.CoverURL, &user.CoverID,
		&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new user. A username or email collision surfaces as
// ErrDuplicate from the unique constraints.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, fullname, username, email, password_hash, avatar_url, avatar_id, cover_url, cover_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		user.ID, user.Fullname, user.Username, user.Email, user.PasswordHash,
		user.AvatarURL, user.AvatarID, user.CoverURL, user.CoverID,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.Pool.QueryRow(ctx, query, id))
}

// GetUserByUsername retrieves a user by its lowercased username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.Pool.QueryRow(ctx, query, username))
}

// GetUserByUsernameOrEmail matches the login identifier against either key.
func (r *Repository) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return scanUser(r.db.Pool.QueryRow(ctx, query, identifier))
}

// UpdateRefreshToken persists the single active refresh token for a user.
// A nil token clears it (logout).
func (r *Repository) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateAccountDetails updates fullname and email and returns the new row.
func (r *Repository) UpdateAccountDetails(ctx context.Context, userID, fullname, email string) (*models.User, error) {
	query := `
		UPDATE users SET fullname = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, userID, fullname, email))
	if isUniqueViolation(err) {
		return nil, ErrDuplicate
	}
	return user, err
}

// UpdateAvatar replaces the avatar asset reference and returns the new row.
func (r *Repository) UpdateAvatar(ctx context.Context, userID, url, assetID string) (*models.User, error) {
	query := `
		UPDATE users SET avatar_url = $2, avatar_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.Pool.QueryRow(ctx, query, userID, url, assetID))
}

// UpdateCover replaces the cover asset reference and returns the new row.
func (r *Repository) UpdateCover(ctx context.Context, userID, url, assetID string) (*models.User, error) {
	query := `
		UPDATE users SET cover_url = $2, cover_id = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	return scanUser(r.db.Pool.QueryRow(ctx, query, userID, url, assetID))
}
