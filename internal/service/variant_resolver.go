package service

import (
	"context"
	"fmt"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// VariantResolver expands a campaign id into its full A/B-test family.
// A send-once completion check is only meaningful over the whole family:
// a recipient served by sibling variant B counts against variant A too.
type VariantResolver struct {
	campaignRepo domain.CampaignRepository
	logger       logger.Logger
}

// NewVariantResolver creates a new variant resolver
func NewVariantResolver(campaignRepo domain.CampaignRepository, logger logger.Logger) *VariantResolver {
	return &VariantResolver{
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// Resolve returns the variant group containing id: the variant root (the
// parent for a child, the campaign itself otherwise) plus every campaign
// parented on that root, sorted ascending. Resolving any member of a family
// yields the identical group, which is what makes the group key usable for
// per-pass deduplication.
func (r *VariantResolver) Resolve(ctx context.Context, id int64) (domain.VariantGroup, error) {
	campaign, err := r.campaignRepo.GetCampaign(ctx, id)
	if err != nil {
		return domain.VariantGroup{}, fmt.Errorf("failed to resolve variant group for campaign %d: %w", id, err)
	}

	rootID := campaign.VariantRootID()

	memberIDs, err := r.campaignRepo.ListVariantFamily(ctx, rootID)
	if err != nil {
		return domain.VariantGroup{}, fmt.Errorf("failed to resolve variant group for campaign %d: %w", id, err)
	}

	// A child whose parent row vanished still resolves to itself.
	if len(memberIDs) == 0 {
		memberIDs = []int64{id}
	}

	return domain.NewVariantGroup(memberIDs), nil
}
