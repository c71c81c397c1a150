package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

const (
	maxSubscribeKeys = 32
	streamBuffer     = 64
)

var (
	errKeyForbidden = errors.New("not allowed to watch this key")
	errShuttingDown = errors.New("server is shutting down")
)

// ChangeSource is the observer side of the realtime hub.
type ChangeSource interface {
	Subscribe(key string, onChange func(realtime.Change)) realtime.Token
	Unsubscribe(tok realtime.Token)
}

// RealtimeService streams change notifications for resource keys.
type RealtimeService struct {
	apiconnect.UnimplementedRealtimeServiceHandler
	store  storage.Store
	source ChangeSource
	logger *slog.Logger

	quit     chan struct{}
	quitOnce sync.Once
}

// NewRealtimeService creates a new RealtimeService.
func NewRealtimeService(store storage.Store, source ChangeSource, logger *slog.Logger) *RealtimeService {
	return &RealtimeService{store: store, source: source, logger: logger, quit: make(chan struct{})}
}

// Shutdown ends every open stream. Later subscriptions fail with
// Unavailable.
func (s *RealtimeService) Shutdown() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Subscribe streams changes for the requested keys until the client goes
// away. The stream opens with one resync per key so the client loads its
// initial state through the same path it uses for refetching.
func (s *RealtimeService) Subscribe(ctx context.Context, req *connect.Request[api.SubscribeRequest], stream *connect.ServerStream[api.SubscribeResponse]) error {
	c, err := callerFrom(ctx)
	if err != nil {
		return toConnectError(err)
	}

	select {
	case <-s.quit:
		return connect.NewError(connect.CodeUnavailable, errShuttingDown)
	default:
	}

	keys := dedupe(req.Msg.Keys)
	if len(keys) == 0 || len(keys) > maxSubscribeKeys {
		return invalidArgument(fieldViolation{Field: "keys", Description: "must name between 1 and 32 keys"})
	}
	for _, key := range keys {
		if err := s.authorize(ctx, c, key); err != nil {
			s.logger.Warn("Subscribe denied", "user_id", c.UserID, "key", key, "error", err)
			if errors.Is(err, realtime.ErrInvalidKey) {
				return invalidArgument(fieldViolation{Field: "keys", Description: err.Error()})
			}
			if errors.Is(err, errKeyForbidden) {
				return connect.NewError(connect.CodePermissionDenied, err)
			}
			return toConnectError(err)
		}
	}

	changes := make(chan realtime.Change, streamBuffer)
	done := make(chan struct{})
	tokens := make([]realtime.Token, 0, len(keys))
	defer func() {
		close(done)
		for _, tok := range tokens {
			s.source.Unsubscribe(tok)
		}
	}()
	for _, key := range keys {
		// Blocking here backs up the hub's per-subscriber queue, which
		// collapses into a resync instead of growing.
		tok := s.source.Subscribe(key, func(ch realtime.Change) {
			select {
			case changes <- ch:
			case <-done:
			}
		})
		if tok == 0 {
			return connect.NewError(connect.CodeUnavailable, errors.New("realtime hub is shut down"))
		}
		tokens = append(tokens, tok)
	}

	for _, key := range keys {
		resync := realtime.Change{Key: key, Op: realtime.OpResync, TenantID: c.TenantID, At: time.Now().UnixMilli()}
		if err := stream.Send(&api.SubscribeResponse{Change: ToAPIChange(resync)}); err != nil {
			return err
		}
	}
	s.logger.Debug("Subscribed", "user_id", c.UserID, "keys", len(keys))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case ch := <-changes:
			if err := stream.Send(&api.SubscribeResponse{Change: ToAPIChange(ch)}); err != nil {
				return err
			}
		}
	}
}

// authorize checks that the caller may watch key.
func (s *RealtimeService) authorize(ctx context.Context, c caller, key string) error {
	kind, id, err := realtime.ParseKey(key)
	if err != nil {
		return err
	}
	switch kind {
	case realtime.KindNotifications, realtime.KindConversations:
		if id != c.UserID {
			return errKeyForbidden
		}
	case realtime.KindItems:
		if id != c.TenantID {
			return errKeyForbidden
		}
	case realtime.KindProfile:
		p, err := s.store.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		return c.sameTenant(p.TenantID)
	case realtime.KindClaims:
		item, err := s.store.GetItem(ctx, id)
		if err != nil {
			return err
		}
		if !c.canSeeItem(item) {
			return storage.ErrNotFound
		}
	case realtime.KindConversation:
		conv, err := s.store.GetConversation(ctx, id)
		if err != nil {
			return err
		}
		if err := c.sameTenant(conv.TenantID); err != nil {
			return err
		}
		if !conv.HasParticipant(c.UserID) {
			return errKeyForbidden
		}
	default:
		return realtime.ErrInvalidKey
	}
	return nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
