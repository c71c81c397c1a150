package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
)

// InitBackupCommands registers the backup command group (admins only).
func InitBackupCommands(root *cobra.Command) error {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Create and download campus backups (admin)",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the campus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			resp, err := s.client.Backups.CreateBackup(cmd.Context(), connect.NewRequest(&api.CreateBackupRequest{}))
			if err != nil {
				return err
			}
			b := resp.Msg.Backup
			if s.json {
				return s.print(b, nil)
			}
			fmt.Fprintf(s.out, "Backup %s: %d profiles, %d items, %d bytes\n", b.ID, b.ProfileCount, b.ItemCount, b.SizeBytes)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List backups, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			resp, err := s.client.Backups.ListBackups(cmd.Context(), connect.NewRequest(&api.ListBackupsRequest{}))
			if err != nil {
				return err
			}
			return s.print(resp.Msg.Backups, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tCREATED\tPROFILES\tITEMS\tBYTES")
				for _, b := range resp.Msg.Backups {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", b.ID, formatTime(b.CreatedAt), b.ProfileCount, b.ItemCount, b.SizeBytes)
				}
			})
		},
	}

	downloadCmd := &cobra.Command{
		Use:   "download ID",
		Short: "Download a backup as gzip JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = fmt.Sprintf("lostfound-%s.json.gz", args[0])
			}
			f, err := os.OpenFile(filepath.Clean(out), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
			if err != nil {
				return err
			}
			n, err := s.client.Download(cmd.Context(), "/backups/"+args[0], f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(f.Name())
				return err
			}
			fmt.Fprintf(s.out, "Wrote %d bytes to %s\n", n, out)
			return nil
		},
	}
	downloadCmd.Flags().StringP("out", "o", "", "Output file (default lostfound-<id>.json.gz)")

	backupCmd.AddCommand(createCmd, listCmd, downloadCmd)
	root.AddCommand(backupCmd)
	return nil
}
