package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// CreateTweet creates a new tweet.
func (r *Repository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.New().String()
	}

	query := `
		INSERT INTO tweets (id, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query, tweet.ID, tweet.Content, tweet.OwnerID).
		Scan(&tweet.CreatedAt, &tweet.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	return nil
}

// UpdateTweet edits an owned tweet; zero matched rows is ErrNotFound.
func (r *Repository) UpdateTweet(ctx context.Context, tweetID, ownerID, content string) (*models.Tweet, error) {
	query := `
		UPDATE tweets
		SET content = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, content, owner_id, created_at, updated_at
	`

	var tweet models.Tweet
	err := r.db.Pool.QueryRow(ctx, query, tweetID, ownerID, content).Scan(
		&tweet.ID, &tweet.Content, &tweet.OwnerID, &tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tweet: %w", err)
	}

	return &tweet, nil
}

// DeleteTweet removes an owned tweet.
func (r *Repository) DeleteTweet(ctx context.Context, tweetID, ownerID string) error {
	query := `DELETE FROM tweets WHERE id = $1 AND owner_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, tweetID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
