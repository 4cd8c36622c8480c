package service

import (
	"context"
	"time"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// BroadcastCompleteService is the event-triggered finalization path: the
// delivery engine signals that a dispatch batch for one campaign finished,
// and the same completion check + finalize sequence runs for that campaign
// without waiting for the next periodic pass.
//
// Unlike the batch path, the pending check here deliberately covers the
// single campaign id, not its variant group. An A/B family that completes
// through this path is picked up group-aware by the next batch pass.
type BroadcastCompleteService struct {
	campaignRepo     domain.CampaignRepository
	sendOnceRepo     domain.SendOnceRepository
	finalizationRepo domain.FinalizationRepository
	recipientRepo    domain.RecipientRepository
	finalizer        *Finalizer
	logger           logger.Logger
}

// NewBroadcastCompleteService creates a new event-triggered finalizer
func NewBroadcastCompleteService(
	campaignRepo domain.CampaignRepository,
	sendOnceRepo domain.SendOnceRepository,
	finalizationRepo domain.FinalizationRepository,
	recipientRepo domain.RecipientRepository,
	finalizer *Finalizer,
	logger logger.Logger,
) *BroadcastCompleteService {
	return &BroadcastCompleteService{
		campaignRepo:     campaignRepo,
		sendOnceRepo:     sendOnceRepo,
		finalizationRepo: finalizationRepo,
		recipientRepo:    recipientRepo,
		finalizer:        finalizer,
		logger:           logger,
	}
}

// OnDeliveryBatchComplete handles the completion signal for one campaign.
// It never returns an error: the triggering delivery pipeline must not be
// aborted by anything that happens here, so failures are logged and
// swallowed.
func (s *BroadcastCompleteService) OnDeliveryBatchComplete(ctx context.Context, campaignID int64) {
	if err := s.process(ctx, campaignID); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"campaign_id": campaignID,
			"error":       err.Error(),
		}).Error("Failed to process delivery batch completion")
	}
}

func (s *BroadcastCompleteService) process(ctx context.Context, campaignID int64) error {
	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	if campaign.Type != domain.CampaignTypeSegment {
		return nil
	}

	if !campaign.IsPublished {
		s.logger.WithField("campaign_id", campaignID).
			Debug("Campaign is no longer published, skipping")
		return nil
	}

	enabled, err := s.sendOnceRepo.GetEnabled(ctx, campaignID)
	if err != nil {
		return err
	}
	if !enabled {
		return nil
	}

	// Read fresh every time; a cached answer could miss a finalization that
	// happened since the broadcast started.
	finalized, err := s.finalizationRepo.Exists(ctx, campaignID)
	if err != nil {
		return err
	}
	if finalized {
		s.logger.WithField("campaign_id", campaignID).
			Debug("Campaign already has a finalization record, skipping")
		return nil
	}

	pending, err := s.recipientRepo.CountPending(ctx, []int64{campaignID})
	if err != nil {
		return err
	}
	if pending > 0 {
		s.logger.WithFields(map[string]interface{}{
			"campaign_id": campaignID,
			"pending":     pending,
		}).Debug("Campaign still has pending recipients")
		return nil
	}

	if campaign.SentCount == 0 {
		s.logger.WithField("campaign_id", campaignID).
			Debug("Campaign has not sent anything yet, skipping")
		return nil
	}

	outcome := s.finalizer.FinalizeOne(ctx, campaignID, time.Now().UTC())
	switch outcome.Outcome {
	case domain.OutcomeFailed, domain.OutcomePartialFailure:
		return outcome.Err
	}

	return nil
}
