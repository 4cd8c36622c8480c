package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// SendOnceService is the surface the campaign editor and the dispatch
// pipeline consume: reading and writing the per-campaign send-once flag,
// reporting finalization state, and the pre-send safety check that blocks
// re-sends of a finalized campaign that got re-published by hand.
//
// The desired flag value always arrives as an explicit parameter on the
// call; there is no request-scoped side channel between deserialization and
// save.
type SendOnceService struct {
	sendOnceRepo     domain.SendOnceRepository
	finalizationRepo domain.FinalizationRepository
	campaignRepo     domain.CampaignRepository
	logger           logger.Logger
}

// NewSendOnceService creates a new send-once settings service
func NewSendOnceService(
	sendOnceRepo domain.SendOnceRepository,
	finalizationRepo domain.FinalizationRepository,
	campaignRepo domain.CampaignRepository,
	logger logger.Logger,
) *SendOnceService {
	return &SendOnceService{
		sendOnceRepo:     sendOnceRepo,
		finalizationRepo: finalizationRepo,
		campaignRepo:     campaignRepo,
		logger:           logger,
	}
}

// GetEnabled returns the send-once flag for a campaign
func (s *SendOnceService) GetEnabled(ctx context.Context, campaignID int64) (bool, error) {
	return s.sendOnceRepo.GetEnabled(ctx, campaignID)
}

// GetEnabledBatch returns the flag for many campaigns in one query, for
// callers that serialize a list of campaigns in a single request.
func (s *SendOnceService) GetEnabledBatch(ctx context.Context, campaignIDs []int64) (map[int64]bool, error) {
	return s.sendOnceRepo.GetEnabledBatch(ctx, campaignIDs)
}

// SetEnabled updates the flag. Edits on an already-finalized campaign are
// rejected: finalization is irreversible and the editor renders the field
// immutable once it happened.
func (s *SendOnceService) SetEnabled(ctx context.Context, campaignID int64, enabled bool) error {
	if _, err := s.campaignRepo.GetCampaign(ctx, campaignID); err != nil {
		return err
	}

	finalized, err := s.finalizationRepo.Exists(ctx, campaignID)
	if err != nil {
		return fmt.Errorf("failed to check finalization state: %w", err)
	}
	if finalized {
		return &domain.ErrCampaignFinalized{ID: campaignID}
	}

	if err := s.sendOnceRepo.SetEnabled(ctx, campaignID, enabled); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"campaign_id": campaignID,
		"enabled":     enabled,
	}).Info("Updated send-once flag")

	return nil
}

// Status returns what the editor needs to render the field: the flag plus
// whether (and when) the campaign was finalized.
func (s *SendOnceService) Status(ctx context.Context, campaignID int64) (*domain.SendOnceStatus, error) {
	enabled, err := s.sendOnceRepo.GetEnabled(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	status := &domain.SendOnceStatus{
		CampaignID: campaignID,
		Enabled:    enabled,
	}

	record, err := s.finalizationRepo.GetRecord(ctx, campaignID)
	if err != nil {
		var notFound *domain.ErrRecordNotFound
		if errors.As(err, &notFound) {
			return status, nil
		}
		return nil, err
	}

	status.Finalized = true
	status.FinalizedAt = &record.FinalizedAt
	return status, nil
}

// IsSendBlocked reports whether dispatch for the campaign must be refused.
// A finalized segment campaign stays blocked even if someone re-publishes
// it: the finalization record, not the publish state, is authoritative.
func (s *SendOnceService) IsSendBlocked(ctx context.Context, campaignID int64) (bool, error) {
	campaign, err := s.campaignRepo.GetCampaign(ctx, campaignID)
	if err != nil {
		return false, err
	}

	if campaign.Type != domain.CampaignTypeSegment {
		return false, nil
	}

	finalized, err := s.finalizationRepo.Exists(ctx, campaignID)
	if err != nil {
		return false, fmt.Errorf("failed to check finalization state: %w", err)
	}

	if finalized {
		s.logger.WithFields(map[string]interface{}{
			"campaign_id":   campaignID,
			"campaign_name": campaign.Name,
		}).Warn("Blocked re-send of finalized send-once campaign")
	}

	return finalized, nil
}
