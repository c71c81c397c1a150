package api

// StartConversationRequest opens (or reuses) a conversation about ItemID
// between the caller and ParticipantID, which defaults to the item owner.
type StartConversationRequest struct {
	ItemID        string `json:"item_id"`
	ParticipantID string `json:"participant_id,omitempty"`
}

type StartConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

type ListConversationsRequest struct{}

type ListConversationsResponse struct {
	Conversations []*Conversation `json:"conversations"`
}

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}

type ListMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	AfterSeq       int64  `json:"after_seq,omitempty"`
	Limit          int    `json:"limit,omitempty"`
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}
