package models

// ClaimState tracks an ownership claim on an item.
type ClaimState string

const (
	ClaimOpen     ClaimState = "open"
	ClaimAccepted ClaimState = "accepted"
	ClaimRejected ClaimState = "rejected"
)

// Claim is a request by a user to recover (or return) an item.
type Claim struct {
	ID         string
	ItemID     string
	TenantID   string
	ClaimantID string
	Message    string
	State      ClaimState
	CreatedAt  int64
	ResolvedAt int64
	ResolvedBy string
}
