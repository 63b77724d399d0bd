package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/spf13/cobra"
)

func newContextCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "context [ID]",
		Aliases: []string{"ctx"},
		Short:   "List contexts, or switch the active one",
		Args:    cobra.MaximumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			if len(args) == 1 {
				snap, err := deps.Apply(cmd.Context(), func(dispatcher.Snapshot) (domain.Event, error) {
					return domain.SetActiveContext{ContextID: args[0]}, nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Active context: %s\n", snap.ActiveContextID)
				return nil
			}

			snap, err := deps.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, " \tID\tTYPE\tTITLE\tTODAY\tBACKLOG")
			for _, l := range snap.Lists.All() {
				marker := " "
				if l.Context.ID == snap.ActiveContextID {
					marker = "*"
				}
				backlog := "-"
				if l.Context.Type.HasBacklog() {
					backlog = fmt.Sprint(len(l.Backlog))
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", marker, l.Context.ID, l.Context.Type, l.Context.Title, len(l.Today), backlog)
			}
			return tw.Flush()
		}),
	}

	cmd.AddCommand(newContextAddCmd(opts), newContextRemoveCmd(opts))
	return cmd
}

func newContextAddCmd(opts *rootOptions) *cobra.Command {
	var (
		tag   bool
		title string
	)

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a project (or tag) context",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			wc := domain.WorkContext{ID: args[0], Type: domain.ContextProject, Title: title}
			if tag {
				wc.Type = domain.ContextTag
			}
			if wc.Title == "" {
				wc.Title = wc.ID
			}

			_, err := deps.Apply(cmd.Context(), func(dispatcher.Snapshot) (domain.Event, error) {
				return domain.AddContext{Context: wc}, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", wc.Type, wc.ID)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&tag, "tag", false, "Create a tag (no backlog)")
	cmd.Flags().StringVar(&title, "title", "", "Display title (default: the id)")
	return cmd
}

func newContextRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a context and its lists",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			_, err := deps.Apply(cmd.Context(), func(dispatcher.Snapshot) (domain.Event, error) {
				return domain.RemoveContext{ContextID: args[0]}, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		}),
	}
}
