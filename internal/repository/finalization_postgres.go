package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mailloop/sendonce/internal/domain"
)

// finalizationRepository implements domain.FinalizationRepository for PostgreSQL
type finalizationRepository struct {
	db *sql.DB
}

// NewFinalizationRepository creates a new PostgreSQL finalization record repository
func NewFinalizationRepository(db *sql.DB) domain.FinalizationRepository {
	return &finalizationRepository{db: db}
}

// CreateRecord inserts the finalization record for a campaign. The unique
// constraint on campaign_id arbitrates concurrent finalize attempts: the
// insert is ON CONFLICT DO NOTHING, and zero affected rows means another
// actor already finalized the campaign. That case returns (false, nil), not
// an error.
func (r *finalizationRepository) CreateRecord(ctx context.Context, record *domain.FinalizationRecord) (bool, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.FinalizedAt.IsZero() {
		record.FinalizedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO send_once_records (id, campaign_id, finalized_at, sent_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.CampaignID,
		record.FinalizedAt,
		record.SentCount,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create finalization record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// Exists reports whether a finalization record exists for the campaign.
// Always reads fresh; callers rely on this to avoid stale already-finalized
// checks.
func (r *finalizationRepository) Exists(ctx context.Context, campaignID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM send_once_records WHERE campaign_id = $1
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, campaignID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check finalization record existence: %w", err)
	}

	return exists, nil
}

// GetRecord retrieves the finalization record for a campaign
func (r *finalizationRepository) GetRecord(ctx context.Context, campaignID int64) (*domain.FinalizationRecord, error) {
	query := `
		SELECT id, campaign_id, finalized_at, sent_count
		FROM send_once_records
		WHERE campaign_id = $1
	`

	record := &domain.FinalizationRecord{}
	err := r.db.QueryRowContext(ctx, query, campaignID).Scan(
		&record.ID,
		&record.CampaignID,
		&record.FinalizedAt,
		&record.SentCount,
	)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrRecordNotFound{CampaignID: campaignID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finalization record: %w", err)
	}

	return record, nil
}
