package domain

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_finalization_repository.go -package mocks github.com/mailloop/sendonce/internal/domain FinalizationRepository

// FinalizationRecord marks that a send-once campaign completed its single
// delivery pass. Existence of the record is the sole source of truth for
// "finalized"; publish state is not trusted because unrelated actors can
// flip it. Records are created exactly once and never updated or deleted.
type FinalizationRecord struct {
	ID          string
	CampaignID  int64
	FinalizedAt time.Time
	SentCount   int64
}

// FinalizationRepository owns the send_once_records table. The unique
// constraint on campaign_id is the only concurrency-control primitive in the
// subsystem: of any number of concurrent finalize attempts, exactly one
// insert wins.
type FinalizationRepository interface {
	// CreateRecord inserts the record. Returns false with a nil error when a
	// record for the campaign already exists (the insert lost the race).
	CreateRecord(ctx context.Context, record *FinalizationRecord) (bool, error)

	// Exists reports whether a finalization record exists for the campaign
	Exists(ctx context.Context, campaignID int64) (bool, error)

	// GetRecord retrieves the record for a campaign, or ErrRecordNotFound
	GetRecord(ctx context.Context, campaignID int64) (*FinalizationRecord, error)
}

// FinalizationOutcome classifies the finalize attempt for one campaign.
type FinalizationOutcome string

const (
	// OutcomeFinalized means the record was created and the campaign disabled.
	OutcomeFinalized FinalizationOutcome = "finalized"
	// OutcomeAlreadyFinalized means another actor won the insert; no writes
	// were performed. This is the expected concurrent-finalization signal,
	// not an error.
	OutcomeAlreadyFinalized FinalizationOutcome = "already_finalized"
	// OutcomePartialFailure means the record insert succeeded but the disable
	// step failed. The campaign is finalized on record but still published;
	// operator follow-up is required and the disable step is never retried
	// blindly.
	OutcomePartialFailure FinalizationOutcome = "partial_failure"
	// OutcomeFailed means the record insert itself failed; nothing was written.
	OutcomeFailed FinalizationOutcome = "failed"
)

// MemberOutcome is the finalize result for a single group member.
type MemberOutcome struct {
	CampaignID int64
	Outcome    FinalizationOutcome
	Err        error
}

// GroupOutcome aggregates member outcomes for one variant group.
type GroupOutcome struct {
	Members        []MemberOutcome
	FinalizedCount int
}

// HasPartialFailure reports whether any member ended in the
// record-inserted-but-still-published state.
func (g *GroupOutcome) HasPartialFailure() bool {
	for _, m := range g.Members {
		if m.Outcome == OutcomePartialFailure {
			return true
		}
	}
	return false
}

// ErrRecordNotFound is an error type for when a finalization record is not found
type ErrRecordNotFound struct {
	CampaignID int64
}

// Error returns the error message
func (e *ErrRecordNotFound) Error() string {
	return fmt.Sprintf("finalization record not found for campaign: %d", e.CampaignID)
}

// ErrPartialFinalization signals a record insert whose follow-up disable
// step failed. Loud by design: it must be distinguishable from ordinary
// failures in logs so an operator can re-run just the disable step.
type ErrPartialFinalization struct {
	CampaignID int64
	Err        error
}

// Error returns the error message
func (e *ErrPartialFinalization) Error() string {
	return fmt.Sprintf("campaign %d has a finalization record but the disable step failed: %v", e.CampaignID, e.Err)
}

func (e *ErrPartialFinalization) Unwrap() error {
	return e.Err
}
