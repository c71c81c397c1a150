// Package stats holds the pure aggregation behind the dashboard, the
// leaderboard and badge awards. Nothing here touches storage.
package stats

import "github.com/mmynk/lostfound/internal/models"

// Summary is the dashboard overview for a set of items and claims.
type Summary struct {
	TotalItems int
	Lost       int
	Found      int
	ByStatus   map[models.ModerationStatus]int

	// RecoveryRate is recovered items over all items, 0 when there are none.
	RecoveryRate float64

	OpenClaims     int
	AcceptedClaims int
	RejectedClaims int
}

// Summarize counts items by kind and status and claims by state.
func Summarize(items []models.Item, claims []models.Claim) Summary {
	s := Summary{ByStatus: make(map[models.ModerationStatus]int)}

	for _, it := range items {
		s.TotalItems++
		switch it.Kind {
		case models.KindLost:
			s.Lost++
		case models.KindFound:
			s.Found++
		}
		s.ByStatus[it.Status]++
	}

	for _, c := range claims {
		switch c.State {
		case models.ClaimOpen:
			s.OpenClaims++
		case models.ClaimAccepted:
			s.AcceptedClaims++
		case models.ClaimRejected:
			s.RejectedClaims++
		}
	}

	if s.TotalItems > 0 {
		s.RecoveryRate = float64(s.ByStatus[models.StatusRecovered]) / float64(s.TotalItems)
	}
	return s
}
