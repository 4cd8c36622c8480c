package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/pkg/logger"
)

// Runner orchestrates one finalization pass: fetch a bounded page of
// candidates, detect completed variant groups, finalize them, report. Each
// invocation is stateless; everything that matters across passes lives in
// the send_once_records table, so overlapping passes are safe and a killed
// pass needs no cleanup.
type Runner struct {
	campaignRepo domain.CampaignRepository
	detector     *CompletionDetector
	finalizer    *Finalizer
	pageSize     int
	logger       logger.Logger
}

// NewRunner creates a new batch runner
func NewRunner(
	campaignRepo domain.CampaignRepository,
	detector *CompletionDetector,
	finalizer *Finalizer,
	pageSize int,
	logger logger.Logger,
) *Runner {
	return &Runner{
		campaignRepo: campaignRepo,
		detector:     detector,
		finalizer:    finalizer,
		pageSize:     pageSize,
		logger:       logger,
	}
}

// RunOnce executes one pass. In preview mode everything is evaluated and
// reported but nothing is written. The returned error covers process-level
// failure only (the candidate query); per-group failures are counted in the
// summary and never abort the pass.
func (r *Runner) RunOnce(ctx context.Context, mode domain.RunMode) (domain.RunSummary, error) {
	summary := domain.RunSummary{}

	if mode == domain.RunModePreview {
		r.logger.Info("Running in preview mode - no changes will be made")
	}

	candidates, err := r.campaignRepo.ListFinalizationCandidates(ctx, r.pageSize)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch finalization candidates: %w", err)
	}

	if len(candidates) == 0 {
		r.logger.Info("No send-once campaigns pending finalization")
		return summary, nil
	}

	r.logger.WithField("candidates", len(candidates)).
		Info("Checking send-once campaigns for completion")

	results := r.detector.FindCompletedGroups(ctx, candidates)
	summary.GroupsEvaluated = len(results)

	now := time.Now().UTC()

	for _, result := range results {
		groupLogger := r.logger.WithField("group", result.Group.Key)

		switch result.Status {
		case domain.GroupStatusPending:
			groupLogger.WithField("pending", result.PendingCount).
				Info("Group still has pending recipients, skipping")

		case domain.GroupStatusNotStarted:
			groupLogger.Info("Group has not sent anything yet, skipping")

		case domain.GroupStatusError:
			summary.GroupErrors++
			groupLogger.WithField("error", result.EvalError).
				Error("Failed to evaluate group, skipping")

		case domain.GroupStatusCompletable:
			if mode == domain.RunModePreview {
				summary.GroupsFinalized++
				groupLogger.WithField("total_sent", result.TotalSentCount).
					Info("Group is complete, would finalize (preview)")
				continue
			}

			outcome := r.finalizer.FinalizeGroup(ctx, result, now)
			summary.CampaignsFinalized += outcome.FinalizedCount
			if outcome.HasPartialFailure() {
				summary.PartialFailures++
			}
			if outcome.FinalizedCount > 0 {
				summary.GroupsFinalized++
				groupLogger.WithFields(map[string]interface{}{
					"total_sent": result.TotalSentCount,
					"finalized":  outcome.FinalizedCount,
				}).Info("Group finalized")
			} else {
				groupLogger.Info("Group already finalized by a concurrent run")
			}
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"groups_evaluated":    summary.GroupsEvaluated,
		"groups_finalized":    summary.GroupsFinalized,
		"campaigns_finalized": summary.CampaignsFinalized,
		"partial_failures":    summary.PartialFailures,
		"group_errors":        summary.GroupErrors,
	}).Info("Finalization pass complete")

	return summary, nil
}
