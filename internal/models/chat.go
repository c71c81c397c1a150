package models

// Conversation is a thread between users about one item.
type Conversation struct {
	ID           string
	TenantID     string
	ItemID       string
	Participants []string
	CreatedAt    int64

	// LastMessageAt is zero until the first message is sent.
	LastMessageAt int64
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Message is one chat message.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Body           string

	// Seq orders messages within a conversation, starting at 1.
	Seq       int64
	CreatedAt int64
}
