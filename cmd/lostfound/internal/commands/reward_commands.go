package commands

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
)

// InitRewardCommands registers leaderboard and dashboard.
func InitRewardCommands(root *cobra.Command) error {
	leaderboardCmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the campus points leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			resp, err := s.client.Rewards.GetLeaderboard(cmd.Context(), connect.NewRequest(&api.GetLeaderboardRequest{Limit: limit}))
			if err != nil {
				return err
			}
			return s.print(resp.Msg.Entries, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "RANK\tNAME\tPOINTS\tRETURNED")
				for _, e := range resp.Msg.Entries {
					fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", e.Rank, e.DisplayName, e.Points, e.Returned)
				}
			})
		},
	}
	leaderboardCmd.Flags().Int("limit", 10, "Number of entries")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show item and claim statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")
			bucket, _ := cmd.Flags().GetString("bucket")
			resp, err := s.client.Rewards.GetDashboard(cmd.Context(), connect.NewRequest(&api.GetDashboardRequest{
				Days:   days,
				Bucket: bucket,
			}))
			if err != nil {
				return err
			}
			d := resp.Msg
			return s.print(d, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Items\t%d\n", d.Summary.TotalItems)
				fmt.Fprintf(w, "Lost / found\t%d / %d\n", d.Summary.Lost, d.Summary.Found)
				fmt.Fprintf(w, "Recovery rate\t%.0f%%\n", d.Summary.RecoveryRate*100)
				fmt.Fprintf(w, "Open claims\t%d\n", d.Summary.OpenClaims)
				fmt.Fprintf(w, "My points\t%d\n", d.MyPoints)
				fmt.Fprintf(w, "Unread\t%d\n", d.Unread)
				for _, b := range d.MyBadges {
					fmt.Fprintf(w, "Badge\t%s\n", b.Name)
				}
			})
		},
	}
	dashboardCmd.Flags().Int("days", 30, "Window in days")
	dashboardCmd.Flags().String("bucket", "day", "Chart bucket: day or week")

	root.AddCommand(leaderboardCmd, dashboardCmd)
	return nil
}
