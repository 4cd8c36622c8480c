package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/mailloop/sendonce/internal/domain"
)

// recipientRepository implements domain.RecipientRepository for PostgreSQL
type recipientRepository struct {
	db *sql.DB
}

// NewRecipientRepository creates a new PostgreSQL recipient repository
func NewRecipientRepository(db *sql.DB) domain.RecipientRepository {
	return &recipientRepository{db: db}
}

// pendingCountQuery counts distinct recipients reachable through the
// included segments of ANY campaign in the variant group that are excluded
// by none of the five predicates. Every predicate is evaluated against the
// whole id set: a delivery outcome on a sibling variant satisfies the group.
//
// $1 = group campaign ids, $2 = channel, $3 = non-terminal queue statuses.
const pendingCountQuery = `
	SELECT COUNT(DISTINCT sc.contact_id)
	FROM segment_contacts sc
	INNER JOIN campaign_segments cs
		ON cs.segment_id = sc.segment_id
		AND cs.campaign_id = ANY($1)
		AND cs.excluded = FALSE
	WHERE sc.manually_removed = FALSE
		AND NOT EXISTS (
			SELECT 1
			FROM channel_opt_outs cho
			WHERE cho.contact_id = sc.contact_id
				AND cho.channel = $2
		)
		AND NOT EXISTS (
			SELECT 1
			FROM message_outcomes mo
			WHERE mo.campaign_id = ANY($1)
				AND mo.contact_id = sc.contact_id
		)
		AND NOT EXISTS (
			SELECT 1
			FROM message_queue mq
			WHERE mq.campaign_id = ANY($1)
				AND mq.contact_id = sc.contact_id
				AND mq.status = ANY($3)
		)
		AND NOT EXISTS (
			SELECT 1
			FROM segment_contacts xsc
			INNER JOIN campaign_segments xcs
				ON xcs.segment_id = xsc.segment_id
				AND xcs.campaign_id = ANY($1)
				AND xcs.excluded = TRUE
			WHERE xsc.contact_id = sc.contact_id
				AND xsc.manually_removed = FALSE
		)
		AND NOT EXISTS (
			SELECT 1
			FROM category_opt_outs cato
			INNER JOIN campaigns cc
				ON cc.category_id = cato.category_id
			WHERE cc.id = ANY($1)
				AND cato.contact_id = sc.contact_id
		)
`

// CountPending returns the pending recipient count for a full variant group.
func (r *recipientRepository) CountPending(ctx context.Context, campaignIDs []int64) (int64, error) {
	if len(campaignIDs) == 0 {
		return 0, fmt.Errorf("campaignIDs must not be empty")
	}

	var count int64
	err := r.db.QueryRowContext(
		ctx,
		pendingCountQuery,
		pq.Array(campaignIDs),
		domain.ChannelEmail,
		pq.Array(domain.NonTerminalQueueStatuses),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending recipients: %w", err)
	}

	return count, nil
}
