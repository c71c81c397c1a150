package commands

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
)

func password(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw == "" {
		pw = os.Getenv("LOSTFOUND_PASSWORD")
	}
	if pw == "" {
		return "", errors.New("password required: pass --password or set LOSTFOUND_PASSWORD")
	}
	return pw, nil
}

// InitAuthCommands registers login, register, logout, whoami and accounts.
func InitAuthCommands(root *cobra.Command) error {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			pw, err := password(cmd)
			if err != nil {
				return err
			}
			sess, err := s.client.SignIn(cmd.Context(), s.app, email, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Signed in as %s (%s) at %s\n", sess.User.DisplayName, sess.User.Role, sess.Tenant.Name)
			return nil
		},
	}
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (or LOSTFOUND_PASSWORD)")
	if err := loginCmd.MarkFlagRequired("email"); err != nil {
		return err
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; an unknown campus is created with you as admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			pw, err := password(cmd)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			campus, _ := f.GetString("campus")
			campusName, _ := f.GetString("campus-name")
			email, _ := f.GetString("email")
			name, _ := f.GetString("name")

			sess, err := s.client.Register(cmd.Context(), s.app, &api.RegisterRequest{
				TenantSlug:  campus,
				TenantName:  campusName,
				Email:       email,
				DisplayName: name,
				Password:    pw,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Registered %s as %s of %s\n", sess.User.Email, sess.User.Role, sess.Tenant.Name)
			return nil
		},
	}
	registerCmd.Flags().String("campus", "", "Campus slug")
	registerCmd.Flags().String("campus-name", "", "Campus display name, used when the campus is new")
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("password", "", "Account password (or LOSTFOUND_PASSWORD)")
	for _, name := range []string{"campus", "email", "name"} {
		if err := registerCmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.client.SignOut(cmd.Context(), s.app); err != nil {
				s.logger.Warn("Server logout failed", "error", err)
			}
			fmt.Fprintln(s.out, "Signed out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			resp, err := s.client.Auth.GetCurrentUser(cmd.Context(), connect.NewRequest(&api.GetCurrentUserRequest{}))
			if err != nil {
				return err
			}
			u := resp.Msg.User
			return s.print(resp.Msg, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "ID\t%s\n", u.ID)
				fmt.Fprintf(w, "Name\t%s\n", u.DisplayName)
				fmt.Fprintf(w, "Email\t%s\n", u.Email)
				fmt.Fprintf(w, "Role\t%s\n", u.Role)
				fmt.Fprintf(w, "Campus\t%s (%s)\n", resp.Msg.Tenant.Name, resp.Msg.Tenant.Slug)
				fmt.Fprintf(w, "Points\t%d\n", u.Points)
			})
		},
	}

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List recently used accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			accts := s.app.RecentAccounts()
			return s.print(accts, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "EMAIL\tNAME\tCAMPUS\tLAST USED")
				for _, a := range accts {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Email, a.DisplayName, a.TenantSlug, formatTime(a.LastUsedAt))
				}
			})
		},
	}

	campusesCmd := &cobra.Command{
		Use:   "campuses",
		Short: "List campuses on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			resp, err := s.client.Auth.ListTenants(cmd.Context(), connect.NewRequest(&api.ListTenantsRequest{}))
			if err != nil {
				return err
			}
			return s.print(resp.Msg.Tenants, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "SLUG\tNAME")
				for _, t := range resp.Msg.Tenants {
					fmt.Fprintf(w, "%s\t%s\n", t.Slug, t.Name)
				}
			})
		},
	}

	root.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, accountsCmd, campusesCmd)
	return nil
}
