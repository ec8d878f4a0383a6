package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

func scanPlaylist(row pgx.Row) (*models.Playlist, error) {
	var playlist models.Playlist
	err := row.Scan(
		&playlist.ID, &playlist.Name, &playlist.Description, &playlist.OwnerID,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}
	return &playlist, nil
}

// CreatePlaylist creates a playlist seeded with one video.
func (r *Repository) CreatePlaylist(ctx context.Context, playlist *models.Playlist, videoID string) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO playlists (id, name, description, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, playlist.ID, playlist.Name, playlist.Description, playlist.OwnerID).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)
	`, playlist.ID, videoID); err != nil {
		return fmt.Errorf("failed to seed playlist video: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit playlist: %w", err)
	}

	return nil
}

// touchPlaylist is the owner-scope gate for playlist mutations: zero matched
// rows means absent or not owned, reported identically.
func (r *Repository) touchPlaylist(ctx context.Context, playlistID, ownerID string) (*models.Playlist, error) {
	query := `
		UPDATE playlists SET updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, name, description, owner_id, created_at, updated_at
	`
	return scanPlaylist(r.db.Pool.QueryRow(ctx, query, playlistID, ownerID))
}

// AddPlaylistVideo adds a video to an owned playlist, deduplicating on the
// composite primary key.
func (r *Repository) AddPlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error) {
	playlist, err := r.touchPlaylist(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Pool.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("failed to add playlist video: %w", err)
	}

	return playlist, nil
}

// RemovePlaylistVideo removes a video from an owned playlist. A video not in
// the playlist is ErrNotFound.
func (r *Repository) RemovePlaylistVideo(ctx context.Context, playlistID, ownerID, videoID string) (*models.Playlist, error) {
	playlist, err := r.touchPlaylist(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Pool.Exec(ctx, `
		DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2
	`, playlistID, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove playlist video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return playlist, nil
}
