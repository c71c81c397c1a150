package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
)

// InitClaimCommands registers the claims command group.
func InitClaimCommands(root *cobra.Command) error {
	claimsCmd := &cobra.Command{
		Use:   "claims",
		Short: "Claim items and resolve claims on your reports",
	}

	createCmd := &cobra.Command{
		Use:   "create ITEM_ID",
		Short: "Claim an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			msg, _ := cmd.Flags().GetString("message")
			resp, err := s.client.Claims.CreateClaim(cmd.Context(), connect.NewRequest(&api.CreateClaimRequest{
				ItemID:  args[0],
				Message: msg,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Claim %s submitted\n", resp.Msg.Claim.ID)
			return nil
		},
	}
	createCmd.Flags().String("message", "", "Why the item is yours, or how to return it")
	if err := createCmd.MarkFlagRequired("message"); err != nil {
		return err
	}

	listCmd := &cobra.Command{
		Use:   "list [ITEM_ID]",
		Short: "List claims on an item, or your own claims",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			req := &api.ListClaimsRequest{}
			if len(args) == 1 {
				req.ItemID = args[0]
			}
			resp, err := s.client.Claims.ListClaims(cmd.Context(), connect.NewRequest(req))
			if err != nil {
				return err
			}
			return s.print(resp.Msg.Claims, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tITEM\tSTATE\tMESSAGE\tCREATED")
				for _, c := range resp.Msg.Claims {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.ItemID, c.State, c.Message, formatTime(c.CreatedAt))
				}
			})
		},
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve CLAIM_ID",
		Short: "Accept or reject a claim on your item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			accept, _ := cmd.Flags().GetBool("accept")
			reject, _ := cmd.Flags().GetBool("reject")
			if accept == reject {
				return errors.New("pass exactly one of --accept or --reject")
			}
			resp, err := s.client.Claims.ResolveClaim(cmd.Context(), connect.NewRequest(&api.ResolveClaimRequest{
				ID:     args[0],
				Accept: accept,
			}))
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Claim %s %s; item is %s\n", resp.Msg.Claim.ID, resp.Msg.Claim.State, resp.Msg.Item.Status)
			return nil
		},
	}
	resolveCmd.Flags().Bool("accept", false, "Accept the claim and mark the item recovered")
	resolveCmd.Flags().Bool("reject", false, "Reject the claim")

	claimsCmd.AddCommand(createCmd, listCmd, resolveCmd)
	root.AddCommand(claimsCmd)
	return nil
}
