package commands

import (
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/lostfound/pkg/api"
)

func printItems(s *session, items []*api.Item) error {
	return s.print(items, func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tKIND\tSTATUS\tTITLE\tLOCATION\tREPORTED")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Kind, it.Status, it.Title, it.Location, formatTime(it.CreatedAt))
		}
	})
}

// InitItemCommands registers the items command group.
func InitItemCommands(root *cobra.Command) error {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Browse and report lost or found items",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List items on your campus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			f := cmd.Flags()
			kind, _ := f.GetString("kind")
			statuses, _ := f.GetStringSlice("status")
			mine, _ := f.GetBool("mine")
			limit, _ := f.GetInt("limit")

			resp, err := s.client.Items.ListItems(cmd.Context(), connect.NewRequest(&api.ListItemsRequest{
				Kind:     kind,
				Statuses: statuses,
				Mine:     mine,
				Limit:    limit,
			}))
			if err != nil {
				return err
			}
			return printItems(s, resp.Msg.Items)
		},
	}
	listCmd.Flags().String("kind", "", "lost or found")
	listCmd.Flags().StringSlice("status", nil, "Filter by status (pending, approved, rejected, recovered)")
	listCmd.Flags().Bool("mine", false, "Only your own reports")
	listCmd.Flags().Int("limit", 50, "Maximum number of items")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Report a lost or found item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			f := cmd.Flags()
			req := &api.CreateItemRequest{}
			req.Kind, _ = f.GetString("kind")
			req.Title, _ = f.GetString("title")
			req.Description, _ = f.GetString("description")
			req.Category, _ = f.GetString("category")
			req.Location, _ = f.GetString("location")
			req.ContactInfo, _ = f.GetString("contact")

			resp, err := s.client.Items.CreateItem(cmd.Context(), connect.NewRequest(req))
			if err != nil {
				return err
			}
			it := resp.Msg.Item
			if s.json {
				return s.print(it, nil)
			}
			fmt.Fprintf(s.out, "Reported %s %q (%s), status %s\n", it.Kind, it.Title, it.ID, it.Status)
			return nil
		},
	}
	createCmd.Flags().String("kind", "", "lost or found")
	createCmd.Flags().String("title", "", "Short title")
	createCmd.Flags().String("description", "", "Description")
	createCmd.Flags().String("category", "", "Category")
	createCmd.Flags().String("location", "", "Where it was lost or found")
	createCmd.Flags().String("contact", "", "Contact details; extracted from the description when empty")
	for _, name := range []string{"kind", "title"} {
		if err := createCmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}

	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search item titles and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("kind")
			resp, err := s.client.Items.SearchItems(cmd.Context(), connect.NewRequest(&api.SearchItemsRequest{
				Query: args[0],
				Kind:  kind,
			}))
			if err != nil {
				return err
			}
			return printItems(s, resp.Msg.Items)
		},
	}
	searchCmd.Flags().String("kind", "", "lost or found")

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			if err := s.requireAuth(); err != nil {
				return err
			}
			resp, err := s.client.Items.GetItem(cmd.Context(), connect.NewRequest(&api.GetItemRequest{ID: args[0]}))
			if err != nil {
				return err
			}
			it := resp.Msg.Item
			return s.print(it, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "ID\t%s\n", it.ID)
				fmt.Fprintf(w, "Kind\t%s\n", it.Kind)
				fmt.Fprintf(w, "Status\t%s\n", it.Status)
				fmt.Fprintf(w, "Title\t%s\n", it.Title)
				fmt.Fprintf(w, "Description\t%s\n", it.Description)
				fmt.Fprintf(w, "Category\t%s\n", it.Category)
				fmt.Fprintf(w, "Location\t%s\n", it.Location)
				fmt.Fprintf(w, "Contact\t%s\n", it.ContactInfo)
				fmt.Fprintf(w, "Reported\t%s\n", formatTime(it.CreatedAt))
			})
		},
	}

	itemsCmd.AddCommand(listCmd, createCmd, searchCmd, getCmd)
	root.AddCommand(itemsCmd)
	return nil
}
