package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

const videoColumns = `id, title, description, asset_id, asset_url, thumbnail_url, thumbnail_id,
	       duration, views, is_published, owner_id, created_at, updated_at`

func scanVideo(row pgx.Row) (*models.Video, error) {
	var video models.Video
	err := row.Scan(
		&video.ID, &video.Title, &video.Description, &video.AssetID, &video.AssetURL,
		&video.ThumbnailURL, &video.ThumbnailID, &video.Duration, &video.Views,
		&video.IsPublished, &video.OwnerID, &video.CreatedAt, &video.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video: %w", err)
	}
	return &video, nil
}

// CreateVideo creates a new video record
func (r *Repository) CreateVideo(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}

	query := `
		INSERT INTO videos (id, title, description, asset_id, asset_url, thumbnail_url, thumbnail_id, duration, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING views, is_published, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID, video.Title, video.Description, video.AssetID, video.AssetURL,
		video.ThumbnailURL, video.ThumbnailID, video.Duration, video.OwnerID,
	).Scan(&video.Views, &video.IsPublished, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetVideoByAssetID retrieves a video by its public asset id.
func (r *Repository) GetVideoByAssetID(ctx context.Context, assetID string) (*models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE asset_id = $1`
	return scanVideo(r.db.Pool.QueryRow(ctx, query, assetID))
}

// UpdateVideoDetails updates title, description and thumbnail, scoped to the
// owner. Zero matched rows (absent or not owned) is ErrNotFound.
func (r *Repository) UpdateVideoDetails(ctx context.Context, assetID, ownerID, title, description string, thumbnailURL, thumbnailID *string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET title = $3, description = $4, thumbnail_url = $5, thumbnail_id = $6, updated_at = now()
		WHERE asset_id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	return scanVideo(r.db.Pool.QueryRow(ctx, query, assetID, ownerID, title, description, thumbnailURL, thumbnailID))
}

// DeleteVideo removes an owner's video and returns the deleted row so the
// caller can clean up its assets.
func (r *Repository) DeleteVideo(ctx context.Context, assetID, ownerID string) (*models.Video, error) {
	query := `
		DELETE FROM videos
		WHERE asset_id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	return scanVideo(r.db.Pool.QueryRow(ctx, query, assetID, ownerID))
}

// TogglePublishStatus atomically flips is_published, scoped to the owner.
// Applying it twice restores the original value.
func (r *Repository) TogglePublishStatus(ctx context.Context, assetID, ownerID string) (*models.Video, error) {
	query := `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = now()
		WHERE asset_id = $1 AND owner_id = $2
		RETURNING ` + videoColumns

	return scanVideo(r.db.Pool.QueryRow(ctx, query, assetID, ownerID))
}
