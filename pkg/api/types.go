// Package api defines the messages exchanged with the lostfound RPC
// services. Timestamps are Unix seconds; zero means unset.
package api

// Tenant is a campus.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Profile is the public view of a user.
type Profile struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Points      int64  `json:"points"`
	CreatedAt   int64  `json:"created_at"`
}

// Preferences are the display and notification settings of a user.
type Preferences struct {
	Theme              string  `json:"theme"`
	HighContrast       bool    `json:"high_contrast"`
	ReduceMotion       bool    `json:"reduce_motion"`
	FontScale          float64 `json:"font_scale"`
	EmailNotifications bool    `json:"email_notifications"`
}

// Item is a lost or found report.
type Item struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	OwnerID     string `json:"owner_id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	Status      string `json:"status"`
	OccurredAt  int64  `json:"occurred_at,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Match is an item scored against a query item or image.
type Match struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}

// Claim is a request to recover or return an item.
type Claim struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	ClaimantID string `json:"claimant_id"`
	Message    string `json:"message"`
	State      string `json:"state"`
	CreatedAt  int64  `json:"created_at"`
	ResolvedAt int64  `json:"resolved_at,omitempty"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}

// Conversation is a chat about an item.
type Conversation struct {
	ID            string   `json:"id"`
	ItemID        string   `json:"item_id"`
	Participants  []string `json:"participants"`
	CreatedAt     int64    `json:"created_at"`
	LastMessageAt int64    `json:"last_message_at,omitempty"`
}

// Message is one chat message. Seq orders messages within a conversation.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	Seq            int64  `json:"seq"`
	CreatedAt      int64  `json:"created_at"`
}

// Notification is an inbox entry.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt int64             `json:"created_at"`
	ReadAt    int64             `json:"read_at,omitempty"`
}

// Badge is an achievement. AwardedAt is set when listing a user's badges.
type Badge struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AwardedAt   int64  `json:"awarded_at,omitempty"`
}

// ThankYouNote is a message of thanks between users.
type ThankYouNote struct {
	ID        string `json:"id"`
	FromID    string `json:"from_id"`
	ToID      string `json:"to_id"`
	ItemID    string `json:"item_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	ProfileID   string `json:"profile_id"`
	DisplayName string `json:"display_name"`
	Points      int64  `json:"points"`
	Returned    int64  `json:"returned"`
}

// Backup describes a tenant snapshot.
type Backup struct {
	ID           string `json:"id"`
	CreatedBy    string `json:"created_by"`
	SizeBytes    int64  `json:"size_bytes"`
	ProfileCount int64  `json:"profile_count"`
	ItemCount    int64  `json:"item_count"`
	CreatedAt    int64  `json:"created_at"`
	DownloadPath string `json:"download_path"`
}

// Change tells a subscriber that a resource changed and should be
// refetched. Op "resync" means changes were missed.
type Change struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Table    string `json:"table"`
	Op       string `json:"op"`
	RowID    string `json:"row_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
	At       int64  `json:"at"`
}

// Change ops.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpResync = "resync"
)
