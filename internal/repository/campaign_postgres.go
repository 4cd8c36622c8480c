package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mailloop/sendonce/internal/domain"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// campaignRepository implements domain.CampaignRepository for PostgreSQL
type campaignRepository struct {
	db *sql.DB
}

// NewCampaignRepository creates a new PostgreSQL campaign repository
func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &campaignRepository{db: db}
}

// campaignSelectFields returns the common SELECT fields for campaign queries
func campaignSelectFields() []string {
	return []string{
		"c.id",
		"c.name",
		"c.campaign_type",
		"c.is_published",
		"c.publish_down",
		"c.sent_count",
		"c.variant_parent_id",
		"c.category_id",
	}
}

// scanCampaign scans a row into a Campaign struct
func scanCampaign(scanner interface {
	Scan(dest ...interface{}) error
}) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var publishDown sql.NullTime
	var variantParentID sql.NullInt64
	var categoryID sql.NullInt64

	err := scanner.Scan(
		&campaign.ID,
		&campaign.Name,
		&campaign.Type,
		&campaign.IsPublished,
		&publishDown,
		&campaign.SentCount,
		&variantParentID,
		&categoryID,
	)
	if err != nil {
		return nil, err
	}

	if publishDown.Valid {
		campaign.PublishDown = &publishDown.Time
	}
	if variantParentID.Valid {
		campaign.VariantParentID = &variantParentID.Int64
	}
	if categoryID.Valid {
		campaign.CategoryID = &categoryID.Int64
	}

	return campaign, nil
}

// GetCampaign retrieves a campaign by id
func (r *campaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	query, args, err := psql.
		Select(campaignSelectFields()...).
		From("campaigns c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build campaign query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCampaignNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaign, nil
}

// ListFinalizationCandidates returns published, send-once-enabled segment
// campaigns that do not yet have a finalization record. The page size bounds
// memory and lock duration for one pass; leftovers are picked up by the next
// pass.
func (r *campaignRepository) ListFinalizationCandidates(ctx context.Context, limit int) ([]*domain.Campaign, error) {
	query, args, err := psql.
		Select(campaignSelectFields()...).
		From("campaigns c").
		Join("send_once_campaigns soc ON soc.campaign_id = c.id").
		Where(sq.Eq{
			"soc.enabled":     true,
			"c.is_published":  true,
			"c.campaign_type": domain.CampaignTypeSegment,
		}).
		Where("NOT EXISTS (SELECT 1 FROM send_once_records sor WHERE sor.campaign_id = c.id)").
		OrderBy("c.id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list finalization candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var campaigns []*domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return campaigns, nil
}

// ListVariantFamily returns the root id plus every id whose variant parent
// is the root, sorted ascending.
func (r *campaignRepository) ListVariantFamily(ctx context.Context, rootID int64) ([]int64, error) {
	query := `
		SELECT id
		FROM campaigns
		WHERE id = $1 OR variant_parent_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variant family: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan variant family id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variant family rows: %w", err)
	}

	return ids, nil
}

// DisableCampaign unpublishes the campaign and stamps publish_down. These
// two columns are the only writes this subsystem makes to the campaigns
// table.
func (r *campaignRepository) DisableCampaign(ctx context.Context, id int64, disabledAt time.Time) error {
	query := `
		UPDATE campaigns
		SET is_published = FALSE, publish_down = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, disabledAt)
	if err != nil {
		return fmt.Errorf("failed to disable campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ErrCampaignNotFound{ID: id}
	}

	return nil
}

// ListFinalizedStillPublished finds campaigns holding a finalization record
// while still published: the disable half of a finalize was lost. These are
// resolved by re-running only the disable step.
func (r *campaignRepository) ListFinalizedStillPublished(ctx context.Context) ([]int64, error) {
	query := `
		SELECT c.id
		FROM campaigns c
		INNER JOIN send_once_records sor ON sor.campaign_id = c.id
		WHERE c.is_published = TRUE
		ORDER BY c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list partially finalized campaigns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan campaign id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ids, nil
}
