package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/contact"
	"github.com/mmynk/lostfound/internal/models"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

// ChatService implements the ChatService RPC interface.
type ChatService struct {
	apiconnect.UnimplementedChatServiceHandler
	store  storage.Store
	events *events
	logger *slog.Logger
}

// NewChatService creates a new ChatService.
func NewChatService(store storage.Store, publisher Publisher, logger *slog.Logger) *ChatService {
	return &ChatService{
		store:  store,
		events: newEvents(store, publisher, logger),
		logger: logger,
	}
}

// StartConversation returns the conversation about an item between the
// caller and another user, creating it on first use. One side must own the
// item unless the caller is an admin.
func (s *ChatService) StartConversation(ctx context.Context, req *connect.Request[api.StartConversationRequest]) (*connect.Response[api.StartConversationResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.ItemID == "" {
		return nil, invalidArgument(fieldViolation{Field: "item_id", Description: "is required"})
	}

	item, err := s.store.GetItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !c.canSeeItem(item) {
		return nil, toConnectError(storage.ErrNotFound)
	}

	other := req.Msg.ParticipantID
	if other == "" {
		other = item.OwnerID
	}
	if other == c.UserID {
		return nil, invalidArgument(fieldViolation{Field: "participant_id", Description: "must be another user"})
	}
	if item.OwnerID != c.UserID && item.OwnerID != other && !c.isAdmin() {
		return nil, toConnectError(errForbidden)
	}
	peer, err := s.store.GetProfile(ctx, other)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := c.sameTenant(peer.TenantID); err != nil {
		return nil, toConnectError(err)
	}

	participants := []string{c.UserID, other}
	conv, err := s.store.FindConversation(ctx, item.ID, participants)
	if errors.Is(err, storage.ErrNotFound) {
		conv = &models.Conversation{TenantID: c.TenantID, ItemID: item.ID, Participants: participants}
		err = s.store.CreateConversation(ctx, conv)
		if errors.Is(err, storage.ErrConflict) {
			// Lost the race to the other participant.
			conv, err = s.store.FindConversation(ctx, item.ID, participants)
		} else if err == nil {
			for _, p := range conv.Participants {
				s.events.publish(realtime.Change{
					Key:      realtime.ConversationsKey(p),
					Table:    realtime.TableConversations,
					Op:       realtime.OpInsert,
					RowID:    conv.ID,
					TenantID: conv.TenantID,
				})
			}
			s.logger.Info("Conversation started", "conversation_id", conv.ID, "item_id", item.ID)
		}
	}
	if err != nil {
		s.logger.Error("StartConversation failed", "item_id", item.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.StartConversationResponse{Conversation: toAPIConversation(conv)}), nil
}

// ListConversations lists the caller's conversations, most recent first.
func (s *ChatService) ListConversations(ctx context.Context, req *connect.Request[api.ListConversationsRequest]) (*connect.Response[api.ListConversationsResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	convs, err := s.store.ListConversations(ctx, c.UserID)
	if err != nil {
		s.logger.Error("ListConversations failed", "user_id", c.UserID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Conversation, len(convs))
	for i, conv := range convs {
		out[i] = toAPIConversation(conv)
	}
	return connect.NewResponse(&api.ListConversationsResponse{Conversations: out}), nil
}

func (s *ChatService) loadConversation(ctx context.Context, c caller, id string) (*models.Conversation, error) {
	if id == "" {
		return nil, invalidArgument(fieldViolation{Field: "conversation_id", Description: "is required"})
	}
	conv, err := s.store.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.sameTenant(conv.TenantID); err != nil {
		return nil, err
	}
	if !conv.HasParticipant(c.UserID) {
		return nil, errNotParticipant
	}
	return conv, nil
}

// SendMessage appends a message and notifies the other participants.
func (s *ChatService) SendMessage(ctx context.Context, req *connect.Request[api.SendMessageRequest]) (*connect.Response[api.SendMessageResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	body := strings.TrimSpace(req.Msg.Body)
	var v violations
	v.check("body", body, "required,max=4000")
	if err := v.err(); err != nil {
		return nil, err
	}

	conv, err := s.loadConversation(ctx, c, req.Msg.ConversationID)
	if err != nil {
		return nil, toConnectError(err)
	}

	msg := &models.Message{ConversationID: conv.ID, SenderID: c.UserID, Body: body}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("SendMessage failed", "conversation_id", conv.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.events.publish(realtime.Change{
		Key:      realtime.ConversationKey(conv.ID),
		Table:    realtime.TableMessages,
		Op:       realtime.OpInsert,
		RowID:    msg.ID,
		TenantID: conv.TenantID,
	})
	preview := contact.Preview(body, 120)
	for _, p := range conv.Participants {
		s.events.publish(realtime.Change{
			Key:      realtime.ConversationsKey(p),
			Table:    realtime.TableConversations,
			Op:       realtime.OpUpdate,
			RowID:    conv.ID,
			TenantID: conv.TenantID,
		})
		if p == c.UserID {
			continue
		}
		s.events.notify(ctx, p, models.NotifyNewMessage, "New message", preview,
			map[string]string{"conversation_id": conv.ID, "item_id": conv.ItemID})
	}

	s.logger.Debug("Message sent", "conversation_id", conv.ID, "seq", msg.Seq)
	return connect.NewResponse(&api.SendMessageResponse{Message: toAPIMessage(msg)}), nil
}

// ListMessages pages through a conversation by sequence number.
func (s *ChatService) ListMessages(ctx context.Context, req *connect.Request[api.ListMessagesRequest]) (*connect.Response[api.ListMessagesResponse], error) {
	c, err := callerFrom(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.AfterSeq < 0 {
		return nil, invalidArgument(fieldViolation{Field: "after_seq", Description: "must not be negative"})
	}
	conv, err := s.loadConversation(ctx, c, req.Msg.ConversationID)
	if err != nil {
		return nil, toConnectError(err)
	}

	msgs, err := s.store.ListMessages(ctx, conv.ID, req.Msg.AfterSeq, clampLimit(req.Msg.Limit, 50, 200))
	if err != nil {
		s.logger.Error("ListMessages failed", "conversation_id", conv.ID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Message, len(msgs))
	for i, m := range msgs {
		out[i] = toAPIMessage(m)
	}
	return connect.NewResponse(&api.ListMessagesResponse{Messages: out}), nil
}
