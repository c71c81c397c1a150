// Package realtime fans row-change events out to subscribers keyed by
// resource.
//
// A subscriber registers a callback for one resource key and refetches the
// resource when it is called. Delivery is at-least-once per key: when a
// subscriber falls behind, its pending changes collapse into a single
// OpResync change, which tells it to refetch everything it shows.
package realtime

import (
	"errors"
	"fmt"
	"strings"
)

// Op is the kind of row change.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	// OpResync means "changes were missed, refetch".
	OpResync Op = "resync"
)

// Change describes one row change on a table, addressed to a resource key.
type Change struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Table    string `json:"table"`
	Op       Op     `json:"op"`
	RowID    string `json:"row_id,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`

	// Origin identifies the hub that first published the change.
	Origin string `json:"origin"`

	// At is the publish time in Unix milliseconds.
	At int64 `json:"at"`
}

// Resource kinds used in keys.
const (
	KindProfile       = "profile"
	KindNotifications = "notifications"
	KindItems         = "items"
	KindClaims        = "claims"
	KindConversation  = "conversation"
	KindConversations = "conversations"
)

// Table names carried in changes.
const (
	TableProfiles      = "profiles"
	TableItems         = "items"
	TableClaims        = "claims"
	TableConversations = "conversations"
	TableMessages      = "messages"
	TableNotifications = "notifications"
	TableBadges        = "awarded_badges"
)

// ErrInvalidKey is returned by ParseKey for malformed keys.
var ErrInvalidKey = errors.New("invalid resource key")

// ProfileKey addresses changes to one profile row.
func ProfileKey(userID string) string { return KindProfile + ":" + userID }

// NotificationsKey addresses a user's inbox.
func NotificationsKey(userID string) string { return KindNotifications + ":" + userID }

// ItemsKey addresses the item list of a tenant.
func ItemsKey(tenantID string) string { return KindItems + ":" + tenantID }

// ClaimsKey addresses the claims on one item.
func ClaimsKey(itemID string) string { return KindClaims + ":" + itemID }

// ConversationKey addresses the messages of one conversation.
func ConversationKey(conversationID string) string { return KindConversation + ":" + conversationID }

// ConversationsKey addresses a user's conversation list.
func ConversationsKey(userID string) string { return KindConversations + ":" + userID }

// ParseKey splits a resource key into kind and id.
func ParseKey(key string) (kind, id string, err error) {
	kind, id, ok := strings.Cut(key, ":")
	if !ok || id == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	switch kind {
	case KindProfile, KindNotifications, KindItems, KindClaims, KindConversation, KindConversations:
		return kind, id, nil
	}
	return "", "", fmt.Errorf("%w: unknown kind %q", ErrInvalidKey, kind)
}
