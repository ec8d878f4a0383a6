package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidtube/backend/pkg/models"
)

// CreateLike inserts a like for exactly one target. Duplicates are rejected
// by the partial unique indexes and surface as ErrDuplicate, which holds
// under concurrent duplicate requests. A target id with no backing row is
// rejected by the foreign keys and surfaces as ErrNotFound.
func (r *Repository) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = uuid.New().String()
	}

	query := `
		INSERT INTO likes (id, liker_id, video_id, comment_id, tweet_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		like.ID, like.LikerID, like.VideoID, like.CommentID, like.TweetID,
	).Scan(&like.CreatedAt)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

// DeleteLike removes the requester's like on the given target.
func (r *Repository) DeleteLike(ctx context.Context, like *models.Like) error {
	query := `
		DELETE FROM likes
		WHERE liker_id = $1
		  AND video_id IS NOT DISTINCT FROM $2
		  AND comment_id IS NOT DISTINCT FROM $3
		  AND tweet_id IS NOT DISTINCT FROM $4
	`

	tag, err := r.db.Pool.Exec(ctx, query, like.LikerID, like.VideoID, like.CommentID, like.TweetID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
