package models

// Badge is an achievement definition.
type Badge struct {
	Code        string
	Name        string
	Description string
}

// AwardedBadge records that a profile earned a badge.
type AwardedBadge struct {
	ProfileID string
	Code      string
	AwardedAt int64
}

// ThankYouNote is sent by a user to someone who helped return an item.
type ThankYouNote struct {
	ID        string
	TenantID  string
	FromID    string
	ToID      string
	ItemID    string
	Message   string
	CreatedAt int64
}

// LeaderboardEntry is one row of the tenant leaderboard.
type LeaderboardEntry struct {
	ProfileID   string
	DisplayName string
	Points      int64
	Returned    int64
}
