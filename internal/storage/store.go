// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/lostfound/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint would be violated
	// or a row is no longer in the state an update expects.
	ErrConflict = errors.New("conflict")
)

// TenantStore persists campuses.
type TenantStore interface {
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	// CreateTenantWithAdmin creates tenant and admin, its first profile, in
	// one transaction. Either both rows exist afterwards or neither does.
	CreateTenantWithAdmin(ctx context.Context, tenant *models.Tenant, admin *models.Profile) error
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	ListTenants(ctx context.Context) ([]*models.Tenant, error)
}

// ProfileStore persists accounts.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*models.Profile, error)
	ListProfiles(ctx context.Context, tenantID string) ([]*models.Profile, error)

	// UpdateProfile writes display name, role, avatar and preferences.
	UpdateProfile(ctx context.Context, profile *models.Profile) error

	// DeleteProfile removes the profile and everything it owns.
	DeleteProfile(ctx context.Context, id string) error

	// AddPoints adjusts the point balance and returns the new total.
	AddPoints(ctx context.Context, id string, delta int64) (int64, error)
}

// ItemStore persists lost and found reports.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error)
	SetItemStatus(ctx context.Context, id string, status models.ModerationStatus) (*models.Item, error)
}

// ClaimStore persists claims.
type ClaimStore interface {
	CreateClaim(ctx context.Context, claim *models.Claim) error
	GetClaim(ctx context.Context, id string) (*models.Claim, error)
	ListClaimsByItem(ctx context.Context, itemID string) ([]*models.Claim, error)
	ListClaimsByClaimant(ctx context.Context, claimantID string) ([]*models.Claim, error)
	ListClaimsByTenant(ctx context.Context, tenantID string) ([]*models.Claim, error)

	// ResolveClaim moves an open claim to accepted or rejected. Resolving a
	// claim that is no longer open returns ErrConflict.
	ResolveClaim(ctx context.Context, id string, state models.ClaimState, resolvedBy string) (*models.Claim, error)

	// AcceptClaim accepts an open claim, marks its approved item recovered,
	// credits points to the helper and rejects the item's other open claims
	// in one transaction. It returns ErrConflict when the claim is no longer
	// open or the item is no longer approved.
	AcceptClaim(ctx context.Context, id, resolvedBy string, helper HelperFunc, points int64) (*Acceptance, error)
}

// HelperFunc picks the profile credited for returning item.
type HelperFunc func(item *models.Item, accepted *models.Claim) string

// Acceptance is the outcome of AcceptClaim.
type Acceptance struct {
	Claim    *models.Claim
	Item     *models.Item
	Helper   string
	Points   int64
	Rejected []*models.Claim
}

// ChatStore persists conversations and messages.
type ChatStore interface {
	// FindConversation returns the conversation about itemID whose participant
	// set equals participants, or ErrNotFound.
	FindConversation(ctx context.Context, itemID string, participants []string) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) error

	// ListMessages returns messages with Seq greater than afterSeq, oldest first.
	ListMessages(ctx context.Context, conversationID string, afterSeq int64, limit int) ([]*models.Message, error)
}

// NotificationStore persists per-user inbox entries.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}

// RewardStore persists badges, thank-you notes and the leaderboard inputs.
type RewardStore interface {
	UpsertBadge(ctx context.Context, badge *models.Badge) error
	ListBadges(ctx context.Context) ([]*models.Badge, error)

	// AwardBadge is idempotent; it reports whether the badge was newly awarded.
	AwardBadge(ctx context.Context, profileID, code string) (bool, error)
	ListAwardedBadges(ctx context.Context, profileID string) ([]*models.AwardedBadge, error)

	CreateThankYouNote(ctx context.Context, note *models.ThankYouNote) error
	ListThankYouNotes(ctx context.Context, toID string) ([]*models.ThankYouNote, error)
	CountThankYouNotes(ctx context.Context, toID string) (int64, error)

	// CountReturned counts accepted claims in which the profile was the
	// helping party.
	CountReturned(ctx context.Context, profileID string) (int64, error)

	// Leaderboard returns up to limit profiles of the tenant with their points
	// and returned counts, unordered.
	Leaderboard(ctx context.Context, tenantID string, limit int) ([]models.LeaderboardEntry, error)
}

// BackupStore persists tenant exports.
type BackupStore interface {
	CreateBackup(ctx context.Context, backup *models.Backup, payload []byte) error
	ListBackups(ctx context.Context, tenantID string) ([]*models.Backup, error)
	GetBackup(ctx context.Context, id string) (*models.Backup, []byte, error)
}

// FileStore persists uploaded blobs.
type FileStore interface {
	PutFile(ctx context.Context, file *models.StoredFile) error
	GetFile(ctx context.Context, id string) (*models.StoredFile, error)
	DeleteFile(ctx context.Context, id string) error
}

// Store defines the full storage surface.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	TenantStore
	ProfileStore
	ItemStore
	ClaimStore
	ChatStore
	NotificationStore
	RewardStore
	BackupStore
	FileStore

	// Close releases any resources held by the store.
	Close() error
}
