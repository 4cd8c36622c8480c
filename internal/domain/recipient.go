package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_recipient_repository.go -package mocks github.com/mailloop/sendonce/internal/domain RecipientRepository

// ChannelEmail is the channel key used for global opt-out checks.
const ChannelEmail = "email"

// NonTerminalQueueStatuses are the outbound queue states that still count a
// recipient as pending: the message exists but has not reached a final state.
var NonTerminalQueueStatuses = []string{"pending", "scheduled", "retrying"}

// RecipientRepository computes pending-recipient counts against the segment
// and delivery tables owned by the mail platform. All reads, no writes, and
// no locks: the tables are allowed to change between the count and any
// decision taken on it.
type RecipientRepository interface {
	// CountPending returns the number of distinct recipients still awaiting
	// delivery for a variant group. campaignIDs MUST be the full group; a
	// subset under-counts, because a recipient served by a sibling variant
	// must count against every member's completion.
	//
	// A recipient is pending iff it is a non-manually-removed member of a
	// segment included by any group campaign and none of these apply:
	//   1. a global opt-out for the email channel
	//   2. a delivery outcome (success or failure) for any group campaign
	//   3. an outbound queue entry in a non-terminal status for any group campaign
	//   4. membership in a segment explicitly excluded by any group campaign
	//   5. an opt-out of a category associated with any group campaign
	//
	// An error means "unknown", never "zero pending"; callers must fail
	// closed and skip finalization.
	CountPending(ctx context.Context, campaignIDs []int64) (int64, error)
}
