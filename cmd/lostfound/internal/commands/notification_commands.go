package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/internal/realtime"
	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/client"
)

// InitNotificationCommands registers the notifications command group.
func InitNotificationCommands(root *cobra.Command) error {
	notificationsCmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Read your notifications",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			unread, _ := cmd.Flags().GetBool("unread")
			limit, _ := cmd.Flags().GetInt("limit")
			resp, err := s.client.Notifications.ListNotifications(cmd.Context(), connect.NewRequest(&api.ListNotificationsRequest{
				UnreadOnly: unread,
				Limit:      limit,
			}))
			if err != nil {
				return err
			}
			return s.print(resp.Msg.Notifications, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tTYPE\tTITLE\tBODY\tWHEN\tREAD")
				for _, n := range resp.Msg.Notifications {
					read := "no"
					if n.ReadAt != 0 {
						read = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", n.ID, n.Type, n.Title, n.Body, formatTime(n.CreatedAt), read)
				}
			})
		},
	}
	listCmd.Flags().Bool("unread", false, "Only unread notifications")
	listCmd.Flags().Int("limit", 20, "Maximum number of notifications")

	readCmd := &cobra.Command{
		Use:   "read [ID]",
		Short: "Mark one notification, or all with --all, as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			req := &api.MarkReadRequest{All: all}
			if len(args) == 1 {
				req.ID = args[0]
			}
			resp, err := s.client.Notifications.MarkRead(cmd.Context(), connect.NewRequest(req))
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Marked %d as read\n", resp.Msg.Updated)
			return nil
		},
	}
	readCmd.Flags().Bool("all", false, "Mark every notification as read")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Print new notifications as they arrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			return watchNotifications(cmd.Context(), s)
		},
	}

	notificationsCmd.AddCommand(listCmd, readCmd, watchCmd)
	root.AddCommand(notificationsCmd)
	return nil
}

// watchNotifications refetches the newest notifications whenever the
// notifications key changes and prints the ones not seen before.
func watchNotifications(ctx context.Context, s *session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seen := make(map[string]bool)
	first := true
	refetch := client.NewRefetcher(200*time.Millisecond, func(ctx context.Context) error {
		resp, err := s.client.Notifications.ListNotifications(ctx, connect.NewRequest(&api.ListNotificationsRequest{Limit: 20}))
		if err != nil {
			return err
		}
		// Oldest first so output reads chronologically.
		list := resp.Msg.Notifications
		for i := len(list) - 1; i >= 0; i-- {
			n := list[i]
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			if !first {
				fmt.Fprintf(s.out, "[%s] %s: %s\n", formatTime(n.CreatedAt), n.Title, n.Body)
			}
		}
		first = false
		return nil
	}, s.logger)

	watcher := client.NewWatcher(s.client.Realtime, client.WatcherOptions{Logger: s.logger})
	stop := refetch.Watch(watcher, realtime.NotificationsKey(s.app.Session().User.ID))
	defer stop()

	go refetch.Run(ctx)
	fmt.Fprintln(s.out, "Watching notifications, Ctrl-C to stop")
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
