package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/mailloop/sendonce/internal/domain"
)

// sendOnceRepository implements domain.SendOnceRepository for PostgreSQL
type sendOnceRepository struct {
	db *sql.DB
}

// NewSendOnceRepository creates a new PostgreSQL send-once settings repository
func NewSendOnceRepository(db *sql.DB) domain.SendOnceRepository {
	return &sendOnceRepository{db: db}
}

// GetEnabled returns the send-once flag for a campaign; campaigns without a
// row default to false.
func (r *sendOnceRepository) GetEnabled(ctx context.Context, campaignID int64) (bool, error) {
	query := `
		SELECT enabled
		FROM send_once_campaigns
		WHERE campaign_id = $1
	`

	var enabled bool
	err := r.db.QueryRowContext(ctx, query, campaignID).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get send-once flag: %w", err)
	}

	return enabled, nil
}

// GetEnabledBatch returns the flag for every requested id in a single query.
// Ids without a row come back false, so the result always has one entry per
// input id.
func (r *sendOnceRepository) GetEnabledBatch(ctx context.Context, campaignIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(campaignIDs))
	for _, id := range campaignIDs {
		result[id] = false
	}
	if len(campaignIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT campaign_id, enabled
		FROM send_once_campaigns
		WHERE campaign_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(campaignIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to batch get send-once flags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id int64
		var enabled bool
		if err := rows.Scan(&id, &enabled); err != nil {
			return nil, fmt.Errorf("failed to scan send-once flag: %w", err)
		}
		result[id] = enabled
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating send-once rows: %w", err)
	}

	return result, nil
}

// SetEnabled inserts or updates the flag for a campaign
func (r *sendOnceRepository) SetEnabled(ctx context.Context, campaignID int64, enabled bool) error {
	query := `
		INSERT INTO send_once_campaigns (campaign_id, enabled, date_added)
		VALUES ($1, $2, $3)
		ON CONFLICT (campaign_id)
		DO UPDATE SET enabled = EXCLUDED.enabled
	`

	_, err := r.db.ExecContext(ctx, query, campaignID, enabled, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set send-once flag: %w", err)
	}

	return nil
}
