package api

type GetDashboardRequest struct {
	// Bucket is "day" (default) or "week".
	Bucket string `json:"bucket,omitempty"`
	// Days of history to chart, default 30.
	Days int `json:"days,omitempty"`
}

type DashboardSummary struct {
	TotalItems     int            `json:"total_items"`
	Lost           int            `json:"lost"`
	Found          int            `json:"found"`
	ByStatus       map[string]int `json:"by_status"`
	RecoveryRate   float64        `json:"recovery_rate"`
	OpenClaims     int            `json:"open_claims"`
	AcceptedClaims int            `json:"accepted_claims"`
}

type ChartPoint struct {
	Start int64 `json:"start"`
	Lost  int   `json:"lost"`
	Found int   `json:"found"`
}

type GetDashboardResponse struct {
	Summary  *DashboardSummary `json:"summary"`
	Series   []*ChartPoint     `json:"series"`
	MyPoints int64             `json:"my_points"`
	MyBadges []*Badge          `json:"my_badges"`
	Unread   int64             `json:"unread"`
}

type GetLeaderboardRequest struct {
	Limit int `json:"limit,omitempty"`
}

type GetLeaderboardResponse struct {
	Entries []*LeaderboardEntry `json:"entries"`
}

type ListBadgesRequest struct {
	// ProfileID defaults to the caller.
	ProfileID string `json:"profile_id,omitempty"`
}

type ListBadgesResponse struct {
	Catalogue []*Badge `json:"catalogue"`
	Awarded   []*Badge `json:"awarded"`
}

type SendThanksRequest struct {
	ToID    string `json:"to_id"`
	ItemID  string `json:"item_id,omitempty"`
	Message string `json:"message"`
}

type SendThanksResponse struct {
	Note *ThankYouNote `json:"note"`
}

type ListThanksRequest struct {
	// ProfileID defaults to the caller.
	ProfileID string `json:"profile_id,omitempty"`
}

type ListThanksResponse struct {
	Notes []*ThankYouNote `json:"notes"`
}
