package stats

import (
	"sort"
	"strings"

	"github.com/mmynk/lostfound/internal/models"
)

// RankedEntry is a leaderboard row with its position.
type RankedEntry struct {
	Rank int
	models.LeaderboardEntry
}

// RankLeaderboard orders entries by points descending, then display name
// (case-insensitive) and id ascending, and assigns dense ranks: equal points
// share a rank and the next distinct score takes the following rank.
func RankLeaderboard(entries []models.LeaderboardEntry) []RankedEntry {
	sorted := make([]models.LeaderboardEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		an, bn := strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)
		if an != bn {
			return an < bn
		}
		return a.ProfileID < b.ProfileID
	})

	ranked := make([]RankedEntry, len(sorted))
	rank := 0
	for i, e := range sorted {
		if i == 0 || e.Points != sorted[i-1].Points {
			rank++
		}
		ranked[i] = RankedEntry{Rank: rank, LeaderboardEntry: e}
	}
	return ranked
}
