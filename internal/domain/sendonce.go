package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_sendonce_repository.go -package mocks github.com/mailloop/sendonce/internal/domain SendOnceRepository

// SendOnceSetting is one row of the send_once_campaigns side table. The flag
// lives outside the campaigns table so the external schema stays untouched.
type SendOnceSetting struct {
	CampaignID int64
	Enabled    bool
	DateAdded  time.Time
}

// SendOnceStatus is the read model the campaign editor renders: the flag
// plus whether finalization already happened (which freezes the field).
type SendOnceStatus struct {
	CampaignID  int64
	Enabled     bool
	Finalized   bool
	FinalizedAt *time.Time
}

// SendOnceRepository owns the send_once_campaigns side table.
type SendOnceRepository interface {
	// GetEnabled returns the flag for a campaign; false when no row exists
	GetEnabled(ctx context.Context, campaignID int64) (bool, error)

	// GetEnabledBatch returns the flag for each id in one query. Ids without
	// a row are present in the result as false. Callers that serialize many
	// campaigns batch-fetch per request instead of memoizing process-wide.
	GetEnabledBatch(ctx context.Context, campaignIDs []int64) (map[int64]bool, error)

	// SetEnabled inserts or updates the flag for a campaign
	SetEnabled(ctx context.Context, campaignID int64, enabled bool) error
}

// ErrCampaignFinalized is returned when an edit is attempted on a campaign
// that already completed its send-once pass.
type ErrCampaignFinalized struct {
	ID int64
}

// Error returns the error message
func (e *ErrCampaignFinalized) Error() string {
	return fmt.Sprintf("campaign %d is finalized; send-once can no longer be changed", e.ID)
}
