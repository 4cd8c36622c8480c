package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaign_VariantRootID(t *testing.T) {
	t.Run("standalone campaign is its own root", func(t *testing.T) {
		c := &Campaign{ID: 10}
		assert.Equal(t, int64(10), c.VariantRootID())
	})

	t.Run("child variant resolves to its parent", func(t *testing.T) {
		parentID := int64(20)
		c := &Campaign{ID: 21, VariantParentID: &parentID}
		assert.Equal(t, int64(20), c.VariantRootID())
	})
}

func TestNewVariantGroup(t *testing.T) {
	t.Run("singleton", func(t *testing.T) {
		group := NewVariantGroup([]int64{10})
		assert.Equal(t, "10", group.Key)
		assert.Equal(t, []int64{10}, group.MemberIDs)
	})

	t.Run("family key joins sorted ids", func(t *testing.T) {
		group := NewVariantGroup([]int64{20, 21, 22})
		assert.Equal(t, "20,21,22", group.Key)
	})
}

func TestVariantGroupResult_IsComplete(t *testing.T) {
	tests := []struct {
		status   GroupStatus
		complete bool
	}{
		{GroupStatusCompletable, true},
		{GroupStatusPending, false},
		{GroupStatusNotStarted, false},
		{GroupStatusError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &VariantGroupResult{Status: tt.status}
			assert.Equal(t, tt.complete, r.IsComplete())
		})
	}
}

func TestGroupOutcome_HasPartialFailure(t *testing.T) {
	t.Run("clean group", func(t *testing.T) {
		outcome := &GroupOutcome{Members: []MemberOutcome{
			{CampaignID: 20, Outcome: OutcomeFinalized},
			{CampaignID: 21, Outcome: OutcomeAlreadyFinalized},
		}}
		assert.False(t, outcome.HasPartialFailure())
	})

	t.Run("one partial member taints the group", func(t *testing.T) {
		outcome := &GroupOutcome{Members: []MemberOutcome{
			{CampaignID: 20, Outcome: OutcomeFinalized},
			{CampaignID: 21, Outcome: OutcomePartialFailure},
		}}
		assert.True(t, outcome.HasPartialFailure())
	})
}

func TestErrPartialFinalization_Unwrap(t *testing.T) {
	cause := errors.New("deadlock")
	err := &ErrPartialFinalization{CampaignID: 10, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "campaign 10 has a finalization record")
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "campaign not found with id: 99",
		(&ErrCampaignNotFound{ID: 99}).Error())
	assert.Equal(t, "finalization record not found for campaign: 10",
		(&ErrRecordNotFound{CampaignID: 10}).Error())
	assert.Equal(t, "campaign 10 is finalized; send-once can no longer be changed",
		(&ErrCampaignFinalized{ID: 10}).Error())
}
