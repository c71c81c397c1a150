package models

// NotificationType classifies notifications for client rendering.
type NotificationType string

const (
	NotifyClaimCreated  NotificationType = "claim_created"
	NotifyClaimResolved NotificationType = "claim_resolved"
	NotifyNewMessage    NotificationType = "new_message"
	NotifyItemModerated NotificationType = "item_moderated"
	NotifyBadgeAwarded  NotificationType = "badge_awarded"
	NotifyThankYou      NotificationType = "thank_you"
	NotifyPossibleMatch NotificationType = "possible_match"
)

// Notification is a per-user inbox entry.
type Notification struct {
	ID     string
	UserID string
	Type   NotificationType
	Title  string
	Body   string

	// Data carries ids the client needs to navigate, e.g. {"item_id": "..."}.
	Data map[string]string

	CreatedAt int64

	// ReadAt is zero while unread.
	ReadAt int64
}
