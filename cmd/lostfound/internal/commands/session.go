// Package commands implements the lostfound CLI command groups.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/client"
	"github.com/mmynk/lostfound/pkg/logging"
)

const defaultServer = "http://localhost:8080"

var errNotSignedIn = errors.New("not signed in; run `lostfound login` first")

// AddGlobalFlags registers the flags every command understands.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String("server", "", "Server base URL")
	root.PersistentFlags().String("state", "", "Path to the state file")
	root.PersistentFlags().Bool("json", false, "Print JSON instead of tables")
	root.PersistentFlags().Bool("verbose", false, "Log debug output to stderr")
}

// session is what every command works with: the persisted application
// context and a client authenticated from it.
type session struct {
	app    *client.AppContext
	client *client.Client
	out    io.Writer
	json   bool
	logger *slog.Logger
}

func openSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()

	level := slog.LevelWarn
	if v, _ := flags.GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	logger, _ := logging.New(logging.Options{Level: level, Console: cmd.ErrOrStderr()})

	statePath, _ := flags.GetString("state")
	if statePath == "" {
		p, err := client.DefaultStatePath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate state file: %w", err)
		}
		statePath = p
	}
	app, err := client.Open(client.NewFileStore(statePath))
	if err != nil {
		return nil, err
	}

	server, _ := flags.GetString("server")
	if server == "" {
		server = app.Server()
	}
	if server == "" {
		server = os.Getenv("LOSTFOUND_SERVER")
	}
	if server == "" {
		server = defaultServer
	}
	if server != app.Server() {
		if err := app.SetServer(server); err != nil {
			return nil, err
		}
	}

	asJSON, _ := flags.GetBool("json")
	return &session{
		app:    app,
		client: client.New(nil, server, app),
		out:    cmd.OutOrStdout(),
		json:   asJSON,
		logger: logger,
	}, nil
}

// requireAuth fails early when there is no stored session.
func (s *session) requireAuth() error {
	if s.app.Token() == "" {
		return errNotSignedIn
	}
	return nil
}

// print writes v as JSON when --json is set, otherwise calls table.
func (s *session) print(v any, table func(w *tabwriter.Writer)) error {
	if s.json {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	table(w)
	return w.Flush()
}

func formatTime(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04")
}
