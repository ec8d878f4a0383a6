package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vidtube/backend/pkg/models"
)

// Read-model queries. Each joins normalized rows into a projection for a
// single response; nothing here mutates state except RecordView.

// VideoListParams filters and orders the public video feed.
type VideoListParams struct {
	Query    string // case-insensitive substring over title/description
	OwnerID  string
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

// CommentListParams selects one video's comment page.
type CommentListParams struct {
	VideoID  string
	ViewerID string // empty for anonymous viewers
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

const videoWithOwnerColumns = `v.id, v.title, v.description, v.asset_id, v.asset_url, v.thumbnail_url,
	       v.duration, v.views, v.is_published, v.created_at,
	       u.id, u.username, u.fullname, u.avatar_url`

func scanVideoWithOwner(row pgx.Row) (*models.VideoWithOwner, error) {
	var v models.VideoWithOwner
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.AssetID, &v.AssetURL, &v.ThumbnailURL,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan video view: %w", err)
	}
	return &v, nil
}

// GetChannelProfile builds the public channel page for a username. The two
// subscription counts come from the same edge table read in both directions;
// IsSubscribed is computed for the requesting viewer (false when anonymous).
func (r *Repository) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	query := `
		SELECT u.id, u.fullname, u.username, u.email, u.avatar_url, u.cover_url,
		       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id),
		       (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
		       EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
		FROM users u
		WHERE u.username = $1
	`

	var profile models.ChannelProfile
	err := r.db.Pool.QueryRow(ctx, query, username, viewerID).Scan(
		&profile.ID, &profile.Fullname, &profile.Username, &profile.Email,
		&profile.Avatar, &profile.CoverImage,
		&profile.SubscriberCount, &profile.SubscribedToCount, &profile.IsSubscribed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel profile: %w", err)
	}

	return &profile, nil
}

// ListVideos returns the paginated video feed joined with owner display
// fields. Filters are optional; sorting is restricted to the allow-list.
func (r *Repository) ListVideos(ctx context.Context, params VideoListParams) (*models.VideoPage, error) {
	page, limit := normalizePage(params.Page, params.Limit, 10)

	where := "TRUE"
	args := []interface{}{}
	if params.Query != "" {
		args = append(args, "%"+params.Query+"%")
		where += fmt.Sprintf(" AND (v.title ILIKE $%d OR v.description ILIKE $%d)", len(args), len(args))
	}
	if params.OwnerID != "" {
		args = append(args, params.OwnerID)
		where += fmt.Sprintf(" AND v.owner_id = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT count(*) FROM videos v WHERE ` + where
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	orderBy := videoSortColumn(params.SortBy) + " " + sortDirection(params.SortType)
	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf(`
		SELECT `+videoWithOwnerColumns+`
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoWithOwner{}
	for rows.Next() {
		v, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read videos: %w", rows.Err())
	}

	return &models.VideoPage{
		Videos:     videos,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

// GetVideoWithOwner fetches a single video by its public asset id, joined
// with the owner's display fields.
func (r *Repository) GetVideoWithOwner(ctx context.Context, assetID string) (*models.VideoWithOwner, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.asset_id = $1
	`
	return scanVideoWithOwner(r.db.Pool.QueryRow(ctx, query, assetID))
}

// ListComments returns one video's paginated comment list: like count plus
// whether the viewer liked each comment, and owner display fields.
func (r *Repository) ListComments(ctx context.Context, params CommentListParams) (*models.CommentPage, error) {
	page, limit := normalizePage(params.Page, params.Limit, 20)

	var total int64
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE video_id = $1`, params.VideoID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	orderBy := commentSortColumn(params.SortBy) + " " + sortDirection(params.SortType)
	query := fmt.Sprintf(`
		SELECT c.id, c.content, c.created_at,
		       count(l.id) AS like_count,
		       COALESCE(bool_or(l.liker_id = $2), FALSE) AS is_liked,
		       u.id, u.username, u.fullname, u.avatar_url
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		LEFT JOIN likes l ON l.comment_id = c.id
		WHERE c.video_id = $1
		GROUP BY c.id, u.id
		ORDER BY %s
		LIMIT $3 OFFSET $4
	`, orderBy)

	rows, err := r.db.Pool.Query(ctx, query, params.VideoID, params.ViewerID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.CommentView{}
	for rows.Next() {
		var c models.CommentView
		err := rows.Scan(
			&c.ID, &c.Content, &c.CreatedAt, &c.LikeCount, &c.IsLiked,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.Fullname, &c.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment view: %w", err)
		}
		comments = append(comments, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read comments: %w", rows.Err())
	}

	return &models.CommentPage{
		Comments:   comments,
		Pagination: buildPagination(page, limit, total),
	}, nil
}

// ListTweets returns a user's tweets with like counts and owner display
// fields, newest first.
func (r *Repository) ListTweets(ctx context.Context, ownerID string) ([]models.TweetView, error) {
	query := `
		SELECT t.id, t.content, t.created_at,
		       count(l.id) AS like_count,
		       u.id, u.username, u.fullname, u.avatar_url
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		LEFT JOIN likes l ON l.tweet_id = t.id
		WHERE t.owner_id = $1
		GROUP BY t.id, u.id
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}
	defer rows.Close()

	tweets := []models.TweetView{}
	for rows.Next() {
		var t models.TweetView
		err := rows.Scan(
			&t.ID, &t.Content, &t.CreatedAt, &t.LikeCount,
			&t.Owner.ID, &t.Owner.Username, &t.Owner.Fullname, &t.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tweet view: %w", err)
		}
		tweets = append(tweets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read tweets: %w", rows.Err())
	}

	return tweets, nil
}

// GetLikeSummary aggregates likes for a single target. The aggregate always
// yields one row, so a target with no likes comes back as {0, false}.
func (r *Repository) GetLikeSummary(ctx context.Context, target *models.Like) (*models.LikeSummary, error) {
	query := `
		SELECT count(*), COALESCE(bool_or(liker_id = $4), FALSE)
		FROM likes
		WHERE video_id IS NOT DISTINCT FROM $1
		  AND comment_id IS NOT DISTINCT FROM $2
		  AND tweet_id IS NOT DISTINCT FROM $3
	`

	var summary models.LikeSummary
	err := r.db.Pool.QueryRow(ctx, query,
		target.VideoID, target.CommentID, target.TweetID, target.LikerID,
	).Scan(&summary.LikeCount, &summary.IsLiked)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize likes: %w", err)
	}

	return &summary, nil
}

// GetPlaylistDetail builds the nested playlist view: playlist → videos →
// video owner, filtered by playlist id and/or owner. Field whitelists are
// fixed at each nesting level. No match is ErrNotFound.
func (r *Repository) GetPlaylistDetail(ctx context.Context, playlistID, ownerID string) ([]models.PlaylistDetail, error) {
	query := `
		SELECT p.id, p.name, p.description,
		       u.id, u.username, u.fullname, u.avatar_url
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE ($1 = '' OR p.id = $1)
		  AND ($2 = '' OR p.owner_id = $2)
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, playlistID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.PlaylistDetail{}
	for rows.Next() {
		var p models.PlaylistDetail
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description,
			&p.Owner.ID, &p.Owner.Username, &p.Owner.Fullname, &p.Owner.Avatar,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist view: %w", err)
		}
		playlists = append(playlists, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read playlists: %w", rows.Err())
	}

	if len(playlists) == 0 {
		return nil, ErrNotFound
	}

	for i := range playlists {
		videos, err := r.playlistVideos(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Videos = videos
	}

	return playlists, nil
}

func (r *Repository) playlistVideos(ctx context.Context, playlistID string) ([]models.VideoWithOwner, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.added_at
	`

	rows, err := r.db.Pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist videos: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoWithOwner{}
	for rows.Next() {
		v, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read playlist videos: %w", rows.Err())
	}

	return videos, nil
}

// GetWatchHistory returns the user's watched videos, most recent first, each
// joined with its owner's display fields.
func (r *Repository) GetWatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	query := `
		SELECT ` + videoWithOwnerColumns + `
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	defer rows.Close()

	videos := []models.VideoWithOwner{}
	for rows.Next() {
		v, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("failed to read watch history: %w", rows.Err())
	}

	return videos, nil
}

// RecordView upserts a watch-history entry (bumping recency on rewatch) and
// increments the video's view counter.
func (r *Repository) RecordView(ctx context.Context, userID, videoID string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`, userID, videoID); err != nil {
		return fmt.Errorf("failed to record watch history: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE videos SET views = views + 1 WHERE id = $1
	`, videoID); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return tx.Commit(ctx)
}
