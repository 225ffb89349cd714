package domain

import "context"

// Signals aggregates the raw creator-performance metrics the score is
// computed from. Absent collaborator data defaults to zero values.
type Signals struct {
	ConnectedPlatforms int   `json:"connected_platforms"`
	TotalFollowers     int64 `json:"total_followers"`
	EngagementScore    int   `json:"engagement_score"`
	ConsistencyScore   int   `json:"consistency_score"`
	Conversions        int   `json:"conversions"`
	ProductsInShop     int   `json:"products_in_shop"`
}

// SignalSource fetches the raw scoring inputs for a user from the
// collaborator subsystems. Implementations do not check consent; that
// is the caller's responsibility.
type SignalSource interface {
	CollectSignals(ctx context.Context, userID string) (Signals, error)
}
