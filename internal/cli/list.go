package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		all      bool
		archived bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the lists of the active context",
		Args:    cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			snap, err := deps.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if archived {
				writeArchive(out, snap)
				return nil
			}

			if all {
				for i, l := range snap.Lists.All() {
					if i > 0 {
						fmt.Fprintln(out)
					}
					writeContext(out, snap, l)
				}
				return nil
			}

			l, ok := snap.ActiveLists()
			if !ok {
				return domain.UnknownContext("list", snap.ActiveContextID)
			}
			writeContext(out, snap, l)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every context")
	cmd.Flags().BoolVar(&archived, "archived", false, "Show the archive")
	return cmd
}

// writeContext prints a context's lists, sub-tasks under their parent
func writeContext(out io.Writer, snap dispatcher.Snapshot, l worklist.Lists) {
	name := l.Context.Title
	if name == "" {
		name = l.Context.ID
	}
	active := ""
	if l.Context.ID == snap.ActiveContextID {
		active = " *"
	}
	fmt.Fprintf(out, "%s [%s, %s]%s\n", name, l.Context.ID, l.Context.Type, active)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	writeList(tw, snap, "Today", l.Today)
	if l.Context.Type.HasBacklog() {
		writeList(tw, snap, "Backlog", l.Backlog)
	}
	tw.Flush()
}

func writeList(w io.Writer, snap dispatcher.Snapshot, title string, ids []string) {
	fmt.Fprintf(w, "  %s (%d)\n", title, len(ids))
	if len(ids) == 0 {
		fmt.Fprintln(w, "    (empty)")
		return
	}
	for _, id := range ids {
		t, ok := snap.Tasks.Get(id)
		if !ok {
			continue
		}
		writeTask(w, snap, t, 0)
		for _, c := range snap.Tasks.Children(id) {
			writeTask(w, snap, c, 1)
		}
	}
}

func writeTask(w io.Writer, snap dispatcher.Snapshot, t domain.Task, depth int) {
	marker := " "
	if t.ID == snap.Selection.CurrentTaskID {
		marker = "▶"
	}
	box := "[ ]"
	if t.IsDone {
		box = "[x]"
	}

	title := t.Title
	if t.HasSubTasks() {
		children := snap.Tasks.Children(t.ID)
		done := 0
		for _, c := range children {
			if c.IsDone {
				done++
			}
		}
		title = fmt.Sprintf("%s (%d/%d)", title, done, len(children))
	}

	fmt.Fprintf(w, "  %s %s%s\t%s\t%s\n", marker, strings.Repeat("  ", depth), box, shortID(t.ID), title)
}

func writeArchive(out io.Writer, snap dispatcher.Snapshot) {
	if snap.Archive.Len() == 0 {
		fmt.Fprintln(out, "Archive is empty")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROJECT\tDONE\tTITLE")
	for _, t := range snap.Archive.All() {
		done := "-"
		if t.DoneAt != nil {
			done = t.DoneAt.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(t.ID), t.ProjectID, done, t.Title)
	}
	tw.Flush()
}
