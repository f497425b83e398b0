package session

import "context"

// Store holds per-user browse state: the daily connection-request counter and
// the set of profiles skipped during the current search session. Backed by
// Redis, so counters survive a bot restart.
type Store interface {
	// ConsumeQuota atomically takes one slot from the user's daily budget.
	// Returns false without incrementing when the budget is spent. The
	// counter is scoped to the current calendar day.
	ConsumeQuota(ctx context.Context, userID int64, limit int) (bool, error)
	ResetSkipped(ctx context.Context, userID int64) error
	AddSkipped(ctx context.Context, userID, skippedID int64) error
	ListSkipped(ctx context.Context, userID int64) ([]int64, error)
}
