package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/storage"
)

// participantKey is the canonical form of a participant set.
func participantKey(participants []string) string {
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// FindConversation looks up the conversation about an item between exactly
// the given participants.
func (s *SQLiteStore) FindConversation(ctx context.Context, itemID string, participants []string) (*models.Conversation, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM conversations WHERE item_id = ? AND participant_key = ?",
		itemID, participantKey(participants),
	).Scan(&id)
	if err != nil {
		return nil, notFound(err, "conversation", itemID)
	}
	return s.GetConversation(ctx, id)
}

// CreateConversation persists a conversation and its participants.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.ID == "" {
		conv.ID = newID()
	}
	if conv.CreatedAt == 0 {
		conv.CreatedAt = now()
	}
	sort.Strings(conv.Participants)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO conversations (id, tenant_id, item_id, participant_key, created_at, last_message_at)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		conv.ID, conv.TenantID, conv.ItemID, participantKey(conv.Participants), conv.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("conversation for item %s: %w", conv.ItemID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, p := range conv.Participants {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO conversation_participants (conversation_id, profile_id) VALUES (?, ?)",
			conv.ID, p,
		); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetConversation retrieves a conversation with its participants.
func (s *SQLiteStore) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	conv := &models.Conversation{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, tenant_id, item_id, created_at, last_message_at FROM conversations WHERE id = ?", id,
	).Scan(&conv.ID, &conv.TenantID, &conv.ItemID, &conv.CreatedAt, &conv.LastMessageAt)
	if err != nil {
		return nil, notFound(err, "conversation", id)
	}

	participants, err := s.loadParticipants(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	conv.Participants = participants[id]
	return conv, nil
}

// ListConversations returns the user's conversations, most recently active first.
func (s *SQLiteStore) ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.tenant_id, c.item_id, c.created_at, c.last_message_at
		 FROM conversations c
		 JOIN conversation_participants p ON p.conversation_id = c.id
		 WHERE p.profile_id = ?
		 ORDER BY MAX(c.last_message_at, c.created_at) DESC, c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	var convs []*models.Conversation
	var ids []string
	for rows.Next() {
		conv := &models.Conversation{}
		if err := rows.Scan(&conv.ID, &conv.TenantID, &conv.ItemID, &conv.CreatedAt, &conv.LastMessageAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		convs = append(convs, conv)
		ids = append(ids, conv.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	participants, err := s.loadParticipants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, conv := range convs {
		conv.Participants = participants[conv.ID]
	}
	return convs, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT conversation_id, profile_id FROM conversation_participants
		 WHERE conversation_id IN (`+placeholders(len(ids))+`)
		 ORDER BY conversation_id, profile_id`,
		stringArgs(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var convID, profileID string
		if err := rows.Scan(&convID, &profileID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out[convID] = append(out[convID], profileID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return out, nil
}

// CreateMessage appends a message and assigns its sequence number.
func (s *SQLiteStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.CreatedAt == 0 {
		msg.CreatedAt = now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = ?",
		msg.ConversationID,
	).Scan(&msg.Seq); err != nil {
		return fmt.Errorf("failed to allocate message sequence: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO messages (id, conversation_id, sender_id, body, created_at, seq) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.ConversationID, msg.SenderID, msg.Body, msg.CreatedAt, msg.Seq,
	); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE conversations SET last_message_at = ? WHERE id = ?",
		msg.CreatedAt, msg.ConversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	if err := requireAffected(res, "conversation", msg.ConversationID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListMessages returns messages after afterSeq, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, conversationID string, afterSeq int64, limit int) ([]*models.Message, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, sender_id, body, seq, created_at FROM messages
		 WHERE conversation_id = ? AND seq > ?
		 ORDER BY seq LIMIT ?`,
		conversationID, afterSeq, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.Seq, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return msgs, nil
}
