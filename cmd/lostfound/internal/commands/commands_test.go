package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/lostfound/internal/auth"
	"github.com/mmynk/lostfound/internal/inference"
	"github.com/mmynk/lostfound/internal/middleware"
	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/internal/server"
	"github.com/mmynk/lostfound/internal/service"
	"github.com/mmynk/lostfound/internal/storage/sqlite"
	"github.com/mmynk/lostfound/pkg/api"
)

func startServer(t *testing.T) string {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	require.NoError(t, service.SeedBadges(context.Background(), store))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("cli-test-secret-0123456", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	hub := realtime.NewHub(realtime.HubOptions{Logger: logger})
	ai := inference.New(inference.Options{})

	handler := server.New(server.Services{
		Auth:          service.NewAuthService(authenticator, jwtManager, store, logger),
		Profile:       service.NewProfileService(store, authenticator, ai, hub, logger),
		Items:         service.NewItemService(store, ai, hub, logger),
		Claims:        service.NewClaimService(store, hub, logger),
		Chat:          service.NewChatService(store, hub, logger),
		Notifications: service.NewNotificationService(store, hub, logger),
		Rewards:       service.NewRewardService(store, hub, logger),
		Backups:       service.NewBackupService(store, 0, logger),
		Realtime:      service.NewRealtimeService(store, hub, logger),
	}, server.Options{
		JWT:      jwtManager,
		Accounts: service.AccountExists(store),
		Logger:   logger,
		HandlerOptions: []connect.HandlerOption{connect.WithInterceptors(
			middleware.NewAuthInterceptor(jwtManager, logger, service.PublicProcedures()...).WithAccountCheck(service.AccountExists(store)),
		)},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
		store.Close()
	})
	return srv.URL
}

type cli struct {
	server string
	state  string
}

func newCLI(t *testing.T, server string) *cli {
	return &cli{server: server, state: filepath.Join(t.TempDir(), "state.json")}
}

// run executes one command line and returns its stdout.
func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "lostfound", SilenceUsage: true, SilenceErrors: true}
	AddGlobalFlags(root)
	for _, register := range []func(*cobra.Command) error{
		InitAuthCommands,
		InitItemCommands,
		InitClaimCommands,
		InitNotificationCommands,
		InitRewardCommands,
		InitBackupCommands,
		InitPreferenceCommands,
	} {
		require.NoError(t, register(root))
	}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--server", c.server, "--state", c.state}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, args...)
	require.NoError(t, err, "lostfound %v", args)
	return out
}

func TestCLI_EndToEnd(t *testing.T) {
	url := startServer(t)
	admin := newCLI(t, url)
	alice := newCLI(t, url)

	out := admin.mustRun(t, "register", "--campus", "north", "--campus-name", "North University",
		"--email", "admin@north.edu", "--name", "Admin", "--password", "password123")
	assert.Contains(t, out, "admin of North University")

	_, err := alice.run(t, "items", "list")
	assert.ErrorIs(t, err, errNotSignedIn)

	alice.mustRun(t, "register", "--campus", "north", "--email", "alice@north.edu", "--name", "Alice", "--password", "password123")

	out = admin.mustRun(t, "items", "create", "--kind", "found", "--title", "Red umbrella",
		"--description", "Left at the bus stop", "--location", "Main gate")
	assert.Contains(t, out, `"Red umbrella"`)
	assert.Contains(t, out, "status approved")

	out = alice.mustRun(t, "--json", "items", "search", "umbrella")
	var items []*api.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	itemID := items[0].ID

	out = alice.mustRun(t, "items", "get", itemID)
	assert.Contains(t, out, "Main gate")

	alice.mustRun(t, "claims", "create", itemID, "--message", "It has my initials on the handle")

	out = admin.mustRun(t, "--json", "claims", "list", itemID)
	var claims []*api.Claim
	require.NoError(t, json.Unmarshal([]byte(out), &claims))
	require.Len(t, claims, 1)

	_, err = admin.run(t, "claims", "resolve", claims[0].ID)
	assert.Error(t, err, "needs --accept or --reject")
	out = admin.mustRun(t, "claims", "resolve", claims[0].ID, "--accept")
	assert.Contains(t, out, "item is recovered")

	out = admin.mustRun(t, "leaderboard")
	assert.Contains(t, out, "Admin")

	out = admin.mustRun(t, "notifications", "list")
	assert.Contains(t, out, "claim_created")
}

func TestCLI_PreferencesAndAccounts(t *testing.T) {
	url := startServer(t)
	c := newCLI(t, url)
	c.mustRun(t, "register", "--campus", "north", "--email", "admin@north.edu", "--name", "Admin", "--password", "password123")

	out := c.mustRun(t, "prefs", "set", "--theme", "dark", "--font-scale", "1.5")
	assert.Contains(t, out, "dark")

	out = c.mustRun(t, "--json", "prefs", "get")
	var prefs api.Preferences
	require.NoError(t, json.Unmarshal([]byte(out), &prefs))
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, 1.5, prefs.FontScale)

	_, err := c.run(t, "prefs", "set", "--theme", "neon")
	assert.Error(t, err)

	c.mustRun(t, "logout")
	_, err = c.run(t, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)

	out = c.mustRun(t, "accounts")
	assert.Contains(t, out, "admin@north.edu")

	t.Setenv("LOSTFOUND_PASSWORD", "password123")
	out = c.mustRun(t, "login", "--email", "admin@north.edu")
	assert.Contains(t, out, "Signed in as Admin")
}

func TestCLI_BackupDownload(t *testing.T) {
	url := startServer(t)
	c := newCLI(t, url)
	c.mustRun(t, "register", "--campus", "north", "--email", "admin@north.edu", "--name", "Admin", "--password", "password123")

	out := c.mustRun(t, "--json", "backup", "create")
	var backup api.Backup
	require.NoError(t, json.Unmarshal([]byte(out), &backup))

	dest := filepath.Join(t.TempDir(), "backup.json.gz")
	c.mustRun(t, "backup", "download", backup.ID, "--out", dest)

	payload, err := os.ReadFile(dest)
	require.NoError(t, err)
	snap, err := service.DecodeSnapshot(payload)
	require.NoError(t, err)
	assert.Len(t, snap.Profiles, 1)

	_, err = c.run(t, "backup", "download", backup.ID, "--out", dest)
	assert.Error(t, err, "existing files are not overwritten")
}
