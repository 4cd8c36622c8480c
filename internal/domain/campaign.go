package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_campaign_repository.go -package mocks github.com/mailloop/sendonce/internal/domain CampaignRepository

// CampaignTypeSegment is the only campaign type eligible for send-once
// finalization. Other types (transactional, automation) never terminate.
const CampaignTypeSegment = "segment"

// Campaign is the finalizer's read model of a campaign. The campaigns table
// is owned by the mail platform; this subsystem only ever writes the
// is_published and publish_down columns, and only through DisableCampaign.
type Campaign struct {
	ID              int64
	Name            string
	Type            string
	IsPublished     bool
	PublishDown     *time.Time
	SentCount       int64
	VariantParentID *int64
	CategoryID      *int64
}

// VariantRootID returns the id at the root of the campaign's A/B family:
// the parent for a child variant, the campaign itself otherwise.
func (c *Campaign) VariantRootID() int64 {
	if c.VariantParentID != nil {
		return *c.VariantParentID
	}
	return c.ID
}

// VariantGroup is the full A/B-test family of a campaign: parent plus all
// children, or a singleton for a standalone campaign. MemberIDs is sorted
// ascending so that resolving any member yields an identical group.
type VariantGroup struct {
	Key       string
	MemberIDs []int64
}

// NewVariantGroup builds a group from an ascending-sorted member id slice.
// The key is the sorted ids joined with "," and is used to deduplicate
// groups within a single batch pass.
func NewVariantGroup(memberIDs []int64) VariantGroup {
	parts := make([]string, len(memberIDs))
	for i, id := range memberIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return VariantGroup{
		Key:       strings.Join(parts, ","),
		MemberIDs: memberIDs,
	}
}

// GroupStatus classifies one variant group after a completion check.
type GroupStatus string

const (
	// GroupStatusPending means at least one recipient is still awaiting delivery.
	GroupStatusPending GroupStatus = "pending"
	// GroupStatusNotStarted means nothing has been sent yet; a zero pending
	// count alone never finalizes a campaign that has not sent anything.
	GroupStatusNotStarted GroupStatus = "not_started"
	// GroupStatusCompletable means the group finished delivering and may be finalized.
	GroupStatusCompletable GroupStatus = "completable"
	// GroupStatusError means the completion check itself failed; the group is
	// treated as unknown, never as complete.
	GroupStatusError GroupStatus = "error"
)

// VariantGroupResult is the outcome of evaluating one variant group.
type VariantGroupResult struct {
	Group          VariantGroup
	TotalSentCount int64
	PendingCount   int64
	Status         GroupStatus
	EvalError      string
}

// IsComplete reports whether the group finished delivering and should be finalized.
func (r *VariantGroupResult) IsComplete() bool {
	return r.Status == GroupStatusCompletable
}

// CampaignRepository provides access to the externally owned campaigns table.
type CampaignRepository interface {
	// GetCampaign retrieves a campaign by id
	GetCampaign(ctx context.Context, id int64) (*Campaign, error)

	// ListFinalizationCandidates returns published segment campaigns with the
	// send-once flag enabled and no finalization record yet, ordered by id,
	// at most limit rows
	ListFinalizationCandidates(ctx context.Context, limit int) ([]*Campaign, error)

	// ListVariantFamily returns the ids of the root campaign and every
	// campaign whose variant parent is the root, sorted ascending
	ListVariantFamily(ctx context.Context, rootID int64) ([]int64, error)

	// DisableCampaign unpublishes the campaign and stamps publish_down
	DisableCampaign(ctx context.Context, id int64, disabledAt time.Time) error

	// ListFinalizedStillPublished returns ids holding a finalization record
	// while still published, i.e. the disable step was lost after the record
	// insert succeeded
	ListFinalizedStillPublished(ctx context.Context) ([]int64, error)
}

// ErrCampaignNotFound is an error type for when a campaign is not found
type ErrCampaignNotFound struct {
	ID int64
}

// Error returns the error message
func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign not found with id: %d", e.ID)
}
