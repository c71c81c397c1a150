package stats

import "github.com/mmynk/lostfound/internal/models"

// Badge codes.
const (
	BadgeFirstReport = "first_report"
	BadgeFirstReturn = "first_return"
	BadgeFiveReturns = "five_returns"
	BadgeHelpful     = "helpful"
)

// Point awards.
const (
	PointsPerReturn  int64 = 10
	PointsPerThanks  int64 = 2
	helpfulThreshold       = 3
)

// Catalogue lists every badge the server can award.
func Catalogue() []models.Badge {
	return []models.Badge{
		{Code: BadgeFirstReport, Name: "First Report", Description: "Reported a lost or found item."},
		{Code: BadgeFirstReturn, Name: "First Return", Description: "Helped return an item to its owner."},
		{Code: BadgeFiveReturns, Name: "Campus Hero", Description: "Helped return five items."},
		{Code: BadgeHelpful, Name: "Helpful", Description: "Received three thank-you notes."},
	}
}

// Activity is what badges are earned from.
type Activity struct {
	Reported       int64
	Returned       int64
	ThanksReceived int64
}

// EvaluateBadges returns the codes of every badge the activity qualifies
// for, in catalogue order. Callers award idempotently, so already held
// badges may be returned again.
func EvaluateBadges(a Activity) []string {
	var codes []string
	if a.Reported >= 1 {
		codes = append(codes, BadgeFirstReport)
	}
	if a.Returned >= 1 {
		codes = append(codes, BadgeFirstReturn)
	}
	if a.Returned >= 5 {
		codes = append(codes, BadgeFiveReturns)
	}
	if a.ThanksReceived >= helpfulThreshold {
		codes = append(codes, BadgeHelpful)
	}
	return codes
}
