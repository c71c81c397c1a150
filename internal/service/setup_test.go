package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/storage/sqlite"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
	"golang.org/x/crypto/bcrypt"
)

// fakeAI stands in for the inference service.
type fakeAI struct {
	mu       sync.Mutex
	faces    int
	faceErr  error
	imageHit string
}

func (f *fakeAI) EnhanceDescription(_ context.Context, text string) (string, error) {
	return "Enhanced: " + text, nil
}

func (f *fakeAI) SearchByImage(_ context.Context, _ []byte, _ string, candidates []inference.Candidate, limit int) ([]inference.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []inference.Match
	for _, c := range candidates {
		if c.ID == f.imageHit {
			out = append(out, inference.Match{ItemID: c.ID, Score: 0.9})
		}
	}
	// ids the matcher made up are dropped by the service
	out = append(out, inference.Match{ItemID: "bogus", Score: 0.5})
	return out, nil
}

func (f *fakeAI) Match(_ context.Context, item inference.Candidate, candidates []inference.Candidate, limit int) ([]inference.Match, error) {
	return inference.LocalMatch(item, candidates, limit), nil
}

func (f *fakeAI) DetectFaces(context.Context, []byte, string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faces, f.faceErr
}

func (f *fakeAI) setImageHit(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageHit = id
}

func (f *fakeAI) setFaces(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faces = n
}

// bearer attaches a session token to unary and streaming calls.
type bearer string

func (b bearer) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if b != "" {
			req.Header().Set("Authorization", "Bearer "+string(b))
		}
		return next(ctx, req)
	}
}

func (b bearer) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return func(ctx context.Context, spec connect.Spec) connect.StreamingClientConn {
		conn := next(ctx, spec)
		if b != "" {
			conn.RequestHeader().Set("Authorization", "Bearer "+string(b))
		}
		return conn
	}
}

func (b bearer) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}

// clients groups every service client for one session.
type clients struct {
	Auth          apiconnect.AuthServiceClient
	Profile       apiconnect.ProfileServiceClient
	Items         apiconnect.ItemServiceClient
	Claims        apiconnect.ClaimServiceClient
	Chat          apiconnect.ChatServiceClient
	Notifications apiconnect.NotificationServiceClient
	Rewards       apiconnect.RewardServiceClient
	Backups       apiconnect.BackupServiceClient
	Realtime      apiconnect.RealtimeServiceClient
}

type testEnv struct {
	url   string
	store *sqlite.SQLiteStore
	hub   *realtime.Hub
	ai    *fakeAI
}

// setupTestServer starts every service behind the production interceptors
// on a temporary database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := SeedBadges(context.Background(), store); err != nil {
		t.Fatalf("failed to seed badges: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret-test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	hub := realtime.NewHub(realtime.HubOptions{Logger: logger})
	ai := &fakeAI{faces: 1}

	opts := connect.WithInterceptors(
		middleware.NewAuthInterceptor(jwtManager, logger, PublicProcedures()...).WithAccountCheck(AccountExists(store)),
		middleware.NewLoggingInterceptor(logger),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, logger), opts))
	mux.Handle(apiconnect.NewProfileServiceHandler(NewProfileService(store, authenticator, ai, hub, logger), opts))
	mux.Handle(apiconnect.NewItemServiceHandler(NewItemService(store, ai, hub, logger), opts))
	mux.Handle(apiconnect.NewClaimServiceHandler(NewClaimService(store, hub, logger), opts))
	mux.Handle(apiconnect.NewChatServiceHandler(NewChatService(store, hub, logger), opts))
	mux.Handle(apiconnect.NewNotificationServiceHandler(NewNotificationService(store, hub, logger), opts))
	mux.Handle(apiconnect.NewRewardServiceHandler(NewRewardService(store, hub, logger), opts))
	mux.Handle(apiconnect.NewBackupServiceHandler(NewBackupService(store, 0, logger), opts))
	mux.Handle(apiconnect.NewRealtimeServiceHandler(NewRealtimeService(store, hub, logger), opts))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		hub.Close()
		store.Close()
	})

	return &testEnv{url: server.URL, store: store, hub: hub, ai: ai}
}

func (e *testEnv) clients(token string) clients {
	opt := connect.WithInterceptors(bearer(token))
	hc := http.DefaultClient
	return clients{
		Auth:          apiconnect.NewAuthServiceClient(hc, e.url, opt),
		Profile:       apiconnect.NewProfileServiceClient(hc, e.url, opt),
		Items:         apiconnect.NewItemServiceClient(hc, e.url, opt),
		Claims:        apiconnect.NewClaimServiceClient(hc, e.url, opt),
		Chat:          apiconnect.NewChatServiceClient(hc, e.url, opt),
		Notifications: apiconnect.NewNotificationServiceClient(hc, e.url, opt),
		Rewards:       apiconnect.NewRewardServiceClient(hc, e.url, opt),
		Backups:       apiconnect.NewBackupServiceClient(hc, e.url, opt),
		Realtime:      apiconnect.NewRealtimeServiceClient(hc, e.url, opt),
	}
}

// user is a registered session.
type user struct {
	clients
	Me    *api.Profile
	Token string
}

// register signs up name@<campus>.edu on campus. The first user of a campus
// becomes its admin.
func (e *testEnv) register(t *testing.T, campus, name string) user {
	t.Helper()
	resp, err := e.clients("").Auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		TenantSlug:  campus,
		TenantName:  campus + " University",
		Email:       fmt.Sprintf("%s@%s.edu", name, campus),
		DisplayName: name,
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	return user{clients: e.clients(resp.Msg.Token), Me: resp.Msg.User, Token: resp.Msg.Token}
}

// createItem reports an item and, when admin is given, has it approved.
func createItem(t *testing.T, owner user, admin *user, kind, title, description string) *api.Item {
	t.Helper()
	resp, err := owner.Items.CreateItem(context.Background(), connect.NewRequest(&api.CreateItemRequest{
		Kind:        kind,
		Title:       title,
		Description: description,
		Location:    "Library",
	}))
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	item := resp.Msg.Item
	if admin != nil && item.Status != "approved" {
		mod, err := admin.Items.ModerateItem(context.Background(), connect.NewRequest(&api.ModerateItemRequest{
			ID:     item.ID,
			Status: "approved",
		}))
		if err != nil {
			t.Fatalf("ModerateItem failed: %v", err)
		}
		item = mod.Msg.Item
	}
	return item
}

// assertCode fails unless err is a Connect error with the given code.
func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if cerr.Code() != want {
		t.Fatalf("code: expected %v, got %v (%v)", want, cerr.Code(), err)
	}
}
