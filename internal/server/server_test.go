package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/service"
	"github.com/mmynk/lostfound/internal/storage/sqlite"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/api/apiconnect"
)

type oneFace struct{}

func (oneFace) DetectFaces(context.Context, []byte, string) (int, error) { return 1, nil }

type fixture struct {
	url  string
	auth apiconnect.AuthServiceClient
}

func setup(t *testing.T, origins ...string) *fixture {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	require.NoError(t, service.SeedBadges(context.Background(), store))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("server-test-secret-0123", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	hub := realtime.NewHub(realtime.HubOptions{Logger: logger})
	ai := inference.New(inference.Options{})
	reg := prometheus.NewRegistry()

	handler := New(Services{
		Auth:          service.NewAuthService(authenticator, jwtManager, store, logger),
		Profile:       service.NewProfileService(store, authenticator, oneFace{}, hub, logger),
		Items:         service.NewItemService(store, ai, hub, logger),
		Claims:        service.NewClaimService(store, hub, logger),
		Chat:          service.NewChatService(store, hub, logger),
		Notifications: service.NewNotificationService(store, hub, logger),
		Rewards:       service.NewRewardService(store, hub, logger),
		Backups:       service.NewBackupService(store, 0, logger),
		Realtime:      service.NewRealtimeService(store, hub, logger),
	}, Options{
		AllowedOrigins: origins,
		Gatherer:       reg,
		JWT:            jwtManager,
		Accounts:       service.AccountExists(store),
		Logger:         logger,
		HandlerOptions: []connect.HandlerOption{connect.WithInterceptors(
			middleware.NewMetricsInterceptor(reg),
			middleware.NewAuthInterceptor(jwtManager, logger, service.PublicProcedures()...).WithAccountCheck(service.AccountExists(store)),
		)},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
		store.Close()
	})

	return &fixture{url: srv.URL, auth: apiconnect.NewAuthServiceClient(http.DefaultClient, srv.URL)}
}

func (f *fixture) register(t *testing.T, email string) *api.RegisterResponse {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		TenantSlug:  "north",
		TenantName:  "North University",
		Email:       email,
		DisplayName: "Someone",
		Password:    "password123",
	}))
	require.NoError(t, err)
	return resp.Msg
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthAndMetrics(t *testing.T) {
	f := setup(t)
	f.register(t, "admin@north.edu")

	resp := get(t, f.url+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, f.url+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "lostfound_rpc_requests_total")
}

func TestCORS(t *testing.T) {
	f := setup(t, "https://app.campus.example")

	preflight := func(origin string) *http.Response {
		t.Helper()
		req, err := http.NewRequest(http.MethodOptions, f.url+apiconnect.AuthServiceLoginProcedure, nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}

	resp := preflight("https://app.campus.example")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.campus.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")

	resp = preflight("https://evil.example")
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Methods"))

	// A bare OPTIONS is not a preflight and reaches the RPC handler.
	req, err := http.NewRequest(http.MethodOptions, f.url+apiconnect.AuthServiceLoginProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.campus.example")
	bare, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer bare.Body.Close()
	assert.NotEqual(t, http.StatusOK, bare.StatusCode)
	assert.Empty(t, bare.Header.Get("Access-Control-Allow-Methods"))
}

func TestCORSDisabledWithoutOrigins(t *testing.T) {
	f := setup(t)

	req, err := http.NewRequest(http.MethodGet, f.url+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.campus.example")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestBackupDownload(t *testing.T) {
	f := setup(t)
	admin := f.register(t, "admin@north.edu")
	user := f.register(t, "user@north.edu")

	bearer := connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+admin.Token)
			return next(ctx, req)
		}
	}))
	backups := apiconnect.NewBackupServiceClient(http.DefaultClient, f.url, bearer)
	created, err := backups.CreateBackup(context.Background(), connect.NewRequest(&api.CreateBackupRequest{}))
	require.NoError(t, err)
	path := f.url + created.Msg.Backup.DownloadPath

	assert.Equal(t, http.StatusUnauthorized, get(t, path, "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, path, "garbage").StatusCode)
	assert.Equal(t, http.StatusForbidden, get(t, path, user.Token).StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, f.url+"/backups/missing", admin.Token).StatusCode)

	resp := get(t, path, admin.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/gzip", resp.Header.Get("Content-Type"))
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	snap, err := service.DecodeSnapshot(payload)
	require.NoError(t, err)
	assert.Len(t, snap.Profiles, 2)
	assert.Equal(t, "north", snap.Tenant.Slug)
}

func TestAvatar(t *testing.T) {
	f := setup(t)
	reg := f.register(t, "admin@north.edu")

	assert.Equal(t, http.StatusNotFound, get(t, f.url+service.AvatarPath(reg.User.ID), "").StatusCode)

	profiles := apiconnect.NewProfileServiceClient(http.DefaultClient, f.url,
		connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
			return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				req.Header().Set("Authorization", "Bearer "+reg.Token)
				return next(ctx, req)
			}
		})),
	)
	_, err := profiles.UploadAvatar(context.Background(), connect.NewRequest(&api.UploadAvatarRequest{
		ContentType: "image/svg+xml",
		Data:        []byte("<svg/>"),
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	up, err := profiles.UploadAvatar(context.Background(), connect.NewRequest(&api.UploadAvatarRequest{
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	}))
	require.NoError(t, err)

	resp := get(t, f.url+up.Msg.Profile.AvatarURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(body))
}

func TestBackupDownload_DeletedAccount(t *testing.T) {
	f := setup(t)
	admin := f.register(t, "admin@north.edu")

	opt := connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+admin.Token)
			return next(ctx, req)
		}
	}))
	created, err := apiconnect.NewBackupServiceClient(http.DefaultClient, f.url, opt).
		CreateBackup(context.Background(), connect.NewRequest(&api.CreateBackupRequest{}))
	require.NoError(t, err)

	_, err = apiconnect.NewProfileServiceClient(http.DefaultClient, f.url, opt).
		DeleteAccount(context.Background(), connect.NewRequest(&api.DeleteAccountRequest{Password: "password123"}))
	require.NoError(t, err)

	resp := get(t, f.url+created.Msg.Backup.DownloadPath, admin.Token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
