package service

import (
	"context"
	"errors"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// CompletionDetector decides, per variant group, whether delivery has
// completed. A group is complete when no recipient is pending AND at least
// one message went out; a zero-sent group (scheduled but never started,
// or targeting empty segments) is reported as not started, never finalized.
type CompletionDetector struct {
	resolver      *VariantResolver
	campaignRepo  domain.CampaignRepository
	recipientRepo domain.RecipientRepository
	logger        logger.Logger
}

// NewCompletionDetector creates a new completion detector
func NewCompletionDetector(
	resolver *VariantResolver,
	campaignRepo domain.CampaignRepository,
	recipientRepo domain.RecipientRepository,
	logger logger.Logger,
) *CompletionDetector {
	return &CompletionDetector{
		resolver:      resolver,
		campaignRepo:  campaignRepo,
		recipientRepo: recipientRepo,
		logger:        logger,
	}
}

// FindCompletedGroups evaluates the candidate campaigns of one batch pass.
// Candidates sharing a variant family are evaluated once: for an A/B test
// both parent and child appear as separate candidates, and without the
// group-key dedupe each family would be double-evaluated. A failure for one
// group never stops evaluation of the rest.
func (d *CompletionDetector) FindCompletedGroups(ctx context.Context, candidates []*domain.Campaign) []domain.VariantGroupResult {
	sentByID := make(map[int64]int64, len(candidates))
	for _, candidate := range candidates {
		sentByID[candidate.ID] = candidate.SentCount
	}

	seen := make(map[string]bool)
	var results []domain.VariantGroupResult

	for _, candidate := range candidates {
		group, err := d.resolver.Resolve(ctx, candidate.ID)
		if err != nil {
			var notFound *domain.ErrCampaignNotFound
			if errors.As(err, &notFound) {
				// Vanished between the candidate query and processing.
				d.logger.WithField("campaign_id", candidate.ID).
					Warn("Candidate campaign no longer exists, skipping")
				continue
			}
			results = append(results, domain.VariantGroupResult{
				Group:     domain.NewVariantGroup([]int64{candidate.ID}),
				Status:    domain.GroupStatusError,
				EvalError: err.Error(),
			})
			continue
		}

		if seen[group.Key] {
			continue
		}
		seen[group.Key] = true

		results = append(results, d.evaluateGroup(ctx, group, sentByID))
	}

	return results
}

// evaluateGroup computes pending and total-sent counts for one group. Any
// data-access failure yields a GroupStatusError result: an unknown pending
// count is never treated as zero.
func (d *CompletionDetector) evaluateGroup(ctx context.Context, group domain.VariantGroup, sentByID map[int64]int64) domain.VariantGroupResult {
	result := domain.VariantGroupResult{Group: group}

	pending, err := d.recipientRepo.CountPending(ctx, group.MemberIDs)
	if err != nil {
		result.Status = domain.GroupStatusError
		result.EvalError = err.Error()
		return result
	}
	result.PendingCount = pending

	totalSent, err := d.totalSentCount(ctx, group, sentByID)
	if err != nil {
		result.Status = domain.GroupStatusError
		result.EvalError = err.Error()
		return result
	}
	result.TotalSentCount = totalSent

	switch {
	case pending > 0:
		result.Status = domain.GroupStatusPending
	case totalSent == 0:
		result.Status = domain.GroupStatusNotStarted
	default:
		result.Status = domain.GroupStatusCompletable
	}

	return result
}

// totalSentCount sums sent counts across the group. Members that were part
// of the candidate page are read from it; siblings outside the page (e.g. an
// unpublished variant) are fetched individually.
func (d *CompletionDetector) totalSentCount(ctx context.Context, group domain.VariantGroup, sentByID map[int64]int64) (int64, error) {
	var total int64
	for _, id := range group.MemberIDs {
		if sent, ok := sentByID[id]; ok {
			total += sent
			continue
		}
		campaign, err := d.campaignRepo.GetCampaign(ctx, id)
		if err != nil {
			return 0, err
		}
		total += campaign.SentCount
	}
	return total, nil
}
