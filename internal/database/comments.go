package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// CreateComment creates a new comment on a video.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO comments (id, content, video_id, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.ID, comment.Content, comment.VideoID, comment.OwnerID,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// UpdateComment edits the requester's newest comment on a video. The filter
// is the (owner, video) pair; an owner can have several comments on one
// video, so the subselect pins the mutation to a single row. Zero matched
// rows is ErrNotFound.
func (r *Repository) UpdateComment(ctx context.Context, videoID, ownerID, content string) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET content = $3, updated_at = now()
		WHERE id = (
			SELECT id FROM comments
			WHERE video_id = $1 AND owner_id = $2
			ORDER BY created_at DESC
			LIMIT 1
		)
		RETURNING id, content, video_id, owner_id, created_at, updated_at
	`

	var comment models.Comment
	err := r.db.Pool.QueryRow(ctx, query, videoID, ownerID, content).Scan(
		&comment.ID, &comment.Content, &comment.VideoID, &comment.OwnerID,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &comment, nil
}

// DeleteComment removes the requester's newest comment on a video, one row
// per call.
func (r *Repository) DeleteComment(ctx context.Context, videoID, ownerID string) error {
	query := `
		DELETE FROM comments
		WHERE id = (
			SELECT id FROM comments
			WHERE video_id = $1 AND owner_id = $2
			ORDER BY created_at DESC
			LIMIT 1
		)
	`

	tag, err := r.db.Pool.Exec(ctx, query, videoID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
