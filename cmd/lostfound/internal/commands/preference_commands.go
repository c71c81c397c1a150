package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
	"github.com/mmynk/lostfound/pkg/client"
)

func printPreferences(s *session, p *api.Preferences) error {
	return s.print(p, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Theme\t%s\n", p.Theme)
		fmt.Fprintf(w, "High contrast\t%t\n", p.HighContrast)
		fmt.Fprintf(w, "Reduce motion\t%t\n", p.ReduceMotion)
		fmt.Fprintf(w, "Font scale\t%.2f\n", p.FontScale)
		fmt.Fprintf(w, "Email notifications\t%t\n", p.EmailNotifications)
	})
}

// InitPreferenceCommands registers the prefs command group.
func InitPreferenceCommands(root *cobra.Command) error {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change display preferences",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			resp, err := s.client.Profile.GetPreferences(cmd.Context(), connect.NewRequest(&api.GetPreferencesRequest{}))
			if err != nil {
				// Offline: fall back to the cached copy.
				if cached := s.app.Preferences(); cached != nil {
					s.logger.Warn("Showing cached preferences", "error", err)
					return printPreferences(s, cached)
				}
				return err
			}
			if err := s.app.SetPreferences(resp.Msg.Preferences); err != nil {
				return err
			}
			return printPreferences(s, resp.Msg.Preferences)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences; unset flags keep their value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			ctx := cmd.Context()
			current, err := s.client.Profile.GetPreferences(ctx, connect.NewRequest(&api.GetPreferencesRequest{}))
			if err != nil {
				return err
			}

			f := cmd.Flags()
			mutate := func(p api.Preferences) api.Preferences {
				if f.Changed("theme") {
					p.Theme, _ = f.GetString("theme")
				}
				if f.Changed("high-contrast") {
					p.HighContrast, _ = f.GetBool("high-contrast")
				}
				if f.Changed("reduce-motion") {
					p.ReduceMotion, _ = f.GetBool("reduce-motion")
				}
				if f.Changed("font-scale") {
					p.FontScale, _ = f.GetFloat64("font-scale")
				}
				if f.Changed("email-notifications") {
					p.EmailNotifications, _ = f.GetBool("email-notifications")
				}
				return p
			}

			prefs := client.NewOptimistic(*current.Msg.Preferences, func(p api.Preferences) {
				if err := s.app.SetPreferences(&p); err != nil {
					s.logger.Warn("Failed to cache preferences", "error", err)
				}
			})
			updated, err := prefs.Apply(ctx, mutate, func(ctx context.Context) (api.Preferences, error) {
				p := mutate(*current.Msg.Preferences)
				resp, err := s.client.Profile.UpdatePreferences(ctx, connect.NewRequest(&api.UpdatePreferencesRequest{Preferences: &p}))
				if err != nil {
					return api.Preferences{}, err
				}
				return *resp.Msg.Preferences, nil
			})
			if err != nil {
				return err
			}
			return printPreferences(s, &updated)
		},
	}
	setCmd.Flags().String("theme", "", "system, light or dark")
	setCmd.Flags().Bool("high-contrast", false, "High-contrast colors")
	setCmd.Flags().Bool("reduce-motion", false, "Reduce animations")
	setCmd.Flags().Float64("font-scale", 1, "Font scale between 0.5 and 3")
	setCmd.Flags().Bool("email-notifications", false, "Email me notifications")

	prefsCmd.AddCommand(getCmd, setCmd)
	root.AddCommand(prefsCmd)
	return nil
}
