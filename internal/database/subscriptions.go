package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vidtube/backend/pkg/models"
)

// CreateSubscription inserts a channel/subscriber edge. A duplicate edge is
// rejected by the unique index and surfaces as ErrDuplicate; there is no
// pre-check read.
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}

	query := `
		INSERT INTO subscriptions (id, channel_id, subscriber_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, sub.ID, sub.ChannelID, sub.SubscriberID).Scan(&sub.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// DeleteSubscription removes a channel/subscriber edge.
func (r *Repository) DeleteSubscription(ctx context.Context, channelID, subscriberID string) error {
	query := `DELETE FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, channelID, subscriberID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
