// Package schema defines the side tables owned by the send-once subsystem.
// The campaigns, segment and delivery tables belong to the mail platform and
// are never created here.
package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// TableDefinitions contains the SQL statements to create the side tables.
// The UNIQUE constraint on send_once_records.campaign_id is load-bearing: it
// is the subsystem's only concurrency-control primitive.
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS send_once_campaigns (
		campaign_id BIGINT PRIMARY KEY,
		enabled BOOLEAN NOT NULL DEFAULT FALSE,
		date_added TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS send_once_records (
		id UUID PRIMARY KEY,
		campaign_id BIGINT NOT NULL UNIQUE,
		finalized_at TIMESTAMPTZ NOT NULL,
		sent_count BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_send_once_records_campaign_id
		ON send_once_records (campaign_id)`,
}

// EnsureSendOnceTables creates the side tables if they do not exist.
func EnsureSendOnceTables(ctx context.Context, db *sql.DB) error {
	for _, statement := range TableDefinitions {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to ensure send-once tables: %w", err)
		}
	}
	return nil
}
