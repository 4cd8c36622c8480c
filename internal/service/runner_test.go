package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mailloop/sendonce/internal/domain"
	"github.com/mailloop/sendonce/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runnerFixture struct {
	runner           *Runner
	campaignRepo     *mocks.MockCampaignRepository
	recipientRepo    *mocks.MockRecipientRepository
	finalizationRepo *mocks.MockFinalizationRepository
}

func newRunnerFixture(ctrl *gomock.Controller, pageSize int) runnerFixture {
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockRecipientRepo := mocks.NewMockRecipientRepository(ctrl)
	mockFinalizationRepo := mocks.NewMockFinalizationRepository(ctrl)
	log := quietLogger(ctrl)

	resolver := NewVariantResolver(mockCampaignRepo, log)
	detector := NewCompletionDetector(resolver, mockCampaignRepo, mockRecipientRepo, log)
	finalizer := NewFinalizer(mockCampaignRepo, mockFinalizationRepo, log)

	return runnerFixture{
		runner:           NewRunner(mockCampaignRepo, detector, finalizer, pageSize, log),
		campaignRepo:     mockCampaignRepo,
		recipientRepo:    mockRecipientRepo,
		finalizationRepo: mockFinalizationRepo,
	}
}

func TestRunner_RunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes a completed campaign end to end", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		candidate := &domain.Campaign{ID: 10, Name: "Newsletter", Type: domain.CampaignTypeSegment, IsPublished: true, SentCount: 5}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{candidate}, nil)

		// Detection: resolve the group, count pending.
		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(10)).Return(candidate, nil).Times(2)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(10)).Return([]int64{10}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{10}).Return(int64(0), nil)

		// Finalization: record first, then disable.
		f.finalizationRepo.EXPECT().CreateRecord(ctx, gomock.Any()).Return(true, nil)
		f.campaignRepo.EXPECT().DisableCampaign(ctx, int64(10), gomock.Any()).Return(nil)

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.GroupsEvaluated)
		assert.Equal(t, 1, summary.GroupsFinalized)
		assert.Equal(t, 1, summary.CampaignsFinalized)
		assert.Equal(t, 0, summary.PartialFailures)
	})

	t.Run("second pass finds nothing to do", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		// A finalized campaign drops out of the candidate query, so a re-run
		// of the pass is a no-op.
		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return(nil, nil)

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, domain.RunSummary{}, summary)
	})

	t.Run("preview mode writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		candidate := &domain.Campaign{ID: 10, SentCount: 5}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{candidate}, nil)
		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(10)).Return(candidate, nil)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(10)).Return([]int64{10}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{10}).Return(int64(0), nil)
		// No CreateRecord or DisableCampaign expectations: any write fails the test.

		summary, err := f.runner.RunOnce(ctx, domain.RunModePreview)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.GroupsFinalized)
		assert.Equal(t, 0, summary.CampaignsFinalized)
	})

	t.Run("finalizes several complete groups in one pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		first := &domain.Campaign{ID: 20, SentCount: 5}
		second := &domain.Campaign{ID: 21, SentCount: 3}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{first, second}, nil)

		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(20)).Return(first, nil).Times(2)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(20)).Return([]int64{20}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{20}).Return(int64(0), nil)

		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(21)).Return(second, nil).Times(2)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(21)).Return([]int64{21}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{21}).Return(int64(0), nil)

		f.finalizationRepo.EXPECT().CreateRecord(ctx, gomock.Any()).Return(true, nil).Times(2)
		f.campaignRepo.EXPECT().DisableCampaign(ctx, int64(20), gomock.Any()).Return(nil)
		f.campaignRepo.EXPECT().DisableCampaign(ctx, int64(21), gomock.Any()).Return(nil)

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.GroupsFinalized)
		assert.Equal(t, 2, summary.CampaignsFinalized)
	})

	t.Run("incomplete groups are skipped without writes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		candidate := &domain.Campaign{ID: 10, SentCount: 5}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{candidate}, nil)
		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(10)).Return(candidate, nil)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(10)).Return([]int64{10}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{10}).Return(int64(4), nil)

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.GroupsEvaluated)
		assert.Equal(t, 0, summary.GroupsFinalized)
	})

	t.Run("evaluation errors are counted, not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		candidate := &domain.Campaign{ID: 10, SentCount: 5}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{candidate}, nil)
		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(10)).Return(candidate, nil)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(10)).Return([]int64{10}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{10}).
			Return(int64(0), errors.New("boom"))

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.GroupErrors)
		assert.Equal(t, 0, summary.GroupsFinalized)
	})

	t.Run("partial failures are surfaced in the summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		candidate := &domain.Campaign{ID: 10, SentCount: 5}

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return([]*domain.Campaign{candidate}, nil)
		f.campaignRepo.EXPECT().GetCampaign(ctx, int64(10)).Return(candidate, nil).Times(2)
		f.campaignRepo.EXPECT().ListVariantFamily(ctx, int64(10)).Return([]int64{10}, nil)
		f.recipientRepo.EXPECT().CountPending(ctx, []int64{10}).Return(int64(0), nil)
		f.finalizationRepo.EXPECT().CreateRecord(ctx, gomock.Any()).Return(true, nil)
		f.campaignRepo.EXPECT().DisableCampaign(ctx, int64(10), gomock.Any()).
			Return(errors.New("deadlock"))

		summary, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.PartialFailures)
		// The disable never landed, so the member does not count as finalized.
		assert.Equal(t, 0, summary.CampaignsFinalized)
	})

	t.Run("candidate query failure aborts the pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newRunnerFixture(ctrl, 50)

		f.campaignRepo.EXPECT().ListFinalizationCandidates(ctx, 50).
			Return(nil, errors.New("connection refused"))

		_, err := f.runner.RunOnce(ctx, domain.RunModeApply)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch finalization candidates")
	})
}
