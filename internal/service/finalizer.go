package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// Finalizer performs the irreversible half of send-once: it writes the
// finalization record and deactivates the campaign. Concurrent invocations
// for the same campaign are safe because the record insert is arbitrated by
// the unique constraint on campaign_id; exactly one attempt wins and the
// losers observe AlreadyFinalized.
type Finalizer struct {
	campaignRepo     domain.CampaignRepository
	finalizationRepo domain.FinalizationRepository
	logger           logger.Logger
}

// NewFinalizer creates a new finalizer
func NewFinalizer(
	campaignRepo domain.CampaignRepository,
	finalizationRepo domain.FinalizationRepository,
	logger logger.Logger,
) *Finalizer {
	return &Finalizer{
		campaignRepo:     campaignRepo,
		finalizationRepo: finalizationRepo,
		logger:           logger,
	}
}

// FinalizeGroup finalizes every member of a completed variant group. Members
// are independent: a failure on one does not stop the others, and a member
// already finalized by a concurrent run is skipped without error.
func (f *Finalizer) FinalizeGroup(ctx context.Context, result domain.VariantGroupResult, observedAt time.Time) domain.GroupOutcome {
	outcome := domain.GroupOutcome{}

	for _, id := range result.Group.MemberIDs {
		member := f.finalizeMember(ctx, id, observedAt)
		outcome.Members = append(outcome.Members, member)
		if member.Outcome == domain.OutcomeFinalized {
			outcome.FinalizedCount++
		}
	}

	return outcome
}

// finalizeMember runs the insert-record-then-disable sequence for one
// campaign. The order matters: the record is the source of truth, so it goes
// first; a lost disable leaves a detectable record-exists-but-published
// state instead of a silently re-sendable campaign. A disable failure after
// a successful insert is surfaced as a partial failure and never retried
// here, since a blind retry could double-disable concurrently modified
// state.
func (f *Finalizer) finalizeMember(ctx context.Context, id int64, observedAt time.Time) domain.MemberOutcome {
	campaign, err := f.campaignRepo.GetCampaign(ctx, id)
	if err != nil {
		var notFound *domain.ErrCampaignNotFound
		if errors.As(err, &notFound) {
			f.logger.WithField("campaign_id", id).
				Warn("Campaign vanished before finalization, skipping")
		}
		return domain.MemberOutcome{
			CampaignID: id,
			Outcome:    domain.OutcomeFailed,
			Err:        fmt.Errorf("failed to load campaign %d: %w", id, err),
		}
	}

	record := &domain.FinalizationRecord{
		CampaignID:  id,
		FinalizedAt: observedAt,
		SentCount:   campaign.SentCount,
	}

	created, err := f.finalizationRepo.CreateRecord(ctx, record)
	if err != nil {
		return domain.MemberOutcome{
			CampaignID: id,
			Outcome:    domain.OutcomeFailed,
			Err:        err,
		}
	}
	if !created {
		// Another run won the insert. Not an error, and no disable here:
		// the winner owns the disable step.
		f.logger.WithField("campaign_id", id).
			Info("Campaign already finalized by a concurrent run")
		return domain.MemberOutcome{
			CampaignID: id,
			Outcome:    domain.OutcomeAlreadyFinalized,
		}
	}

	if err := f.campaignRepo.DisableCampaign(ctx, id, observedAt); err != nil {
		partial := &domain.ErrPartialFinalization{CampaignID: id, Err: err}
		f.logger.WithFields(map[string]interface{}{
			"campaign_id": id,
			"error":       err.Error(),
		}).Error("PARTIAL FINALIZATION: record created but disable failed, operator follow-up required")
		return domain.MemberOutcome{
			CampaignID: id,
			Outcome:    domain.OutcomePartialFailure,
			Err:        partial,
		}
	}

	f.logger.WithFields(map[string]interface{}{
		"campaign_id":   id,
		"campaign_name": campaign.Name,
		"sent_count":    campaign.SentCount,
		"publish_down":  observedAt.Format(time.RFC3339),
	}).Info("Finalized send-once campaign")

	return domain.MemberOutcome{
		CampaignID: id,
		Outcome:    domain.OutcomeFinalized,
	}
}

// FinalizeOne runs the finalize sequence for a single campaign outside any
// group context, used by the event-triggered path.
func (f *Finalizer) FinalizeOne(ctx context.Context, id int64, observedAt time.Time) domain.MemberOutcome {
	return f.finalizeMember(ctx, id, observedAt)
}

// ReconcilePartial resolves partial finalizations: campaigns that hold a
// finalization record but are still published. Only the disable step is
// re-run, stamped with the original finalization time so the invariant
// "publish_down set together with the record" is restored. Returns the
// number of campaigns repaired.
func (f *Finalizer) ReconcilePartial(ctx context.Context) (int, error) {
	ids, err := f.campaignRepo.ListFinalizedStillPublished(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find partially finalized campaigns: %w", err)
	}

	repaired := 0
	for _, id := range ids {
		record, err := f.finalizationRepo.GetRecord(ctx, id)
		if err != nil {
			f.logger.WithFields(map[string]interface{}{
				"campaign_id": id,
				"error":       err.Error(),
			}).Error("Failed to load finalization record during reconciliation")
			continue
		}

		if err := f.campaignRepo.DisableCampaign(ctx, id, record.FinalizedAt); err != nil {
			f.logger.WithFields(map[string]interface{}{
				"campaign_id": id,
				"error":       err.Error(),
			}).Error("Failed to re-run disable step during reconciliation")
			continue
		}

		f.logger.WithField("campaign_id", id).
			Info("Reconciled partially finalized campaign")
		repaired++
	}

	return repaired, nil
}
