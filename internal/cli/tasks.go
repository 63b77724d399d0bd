package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var (
		toBacklog bool
		bottom    bool
		parent    string
		contextID string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Add a task to today (or the backlog)",
		Args:  cobra.MinimumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("title is required")
			}

			toBottom := deps.Config.Tasks.AddToBottom
			if cmd.Flags().Changed("bottom") {
				toBottom = bottom
			}

			id := deps.NewID()
			snap, err := deps.Apply(cmd.Context(), func(s dispatcher.Snapshot) (domain.Event, error) {
				task := domain.Task{ID: id, Title: title}
				if parent != "" {
					parentID, err := resolveID(s.Tasks, parent)
					if err != nil {
						return nil, err
					}
					task.ParentID = parentID
				}
				return domain.CreateTask{Task: task, ContextID: contextID, ToBacklog: toBacklog, ToBottom: toBottom}, nil
			})
			if err != nil {
				return err
			}

			where := "today"
			switch {
			case parent != "":
				where = "sub-tasks"
			case toBacklog:
				where = "backlog"
			}
			t, _ := snap.Tasks.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s\n", shortID(id), where, t.Title)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&toBacklog, "backlog", "b", false, "Add to the backlog instead of today")
	cmd.Flags().BoolVar(&bottom, "bottom", false, "Insert at the bottom (default from tasks.addToBottom)")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Add as a sub-task of this task")
	cmd.Flags().StringVarP(&contextID, "context", "c", "", "Target context (default: active)")
	return cmd
}

func newStartCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the next task, or stop the current one",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(dispatcher.Snapshot) (domain.Event, error) {
				return domain.ToggleStart{}, nil
			})
		}),
	}
}

func newSelectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select ID",
		Short: "Make a task the current one",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.SetCurrentTask{TaskID: id}, nil
			})
		}),
	}
}

// newDoneCmd builds "done" or, with done false, "undone"
func newDoneCmd(opts *rootOptions, done bool) *cobra.Command {
	use, short := "done ID", "Mark a task done"
	if !done {
		use, short = "undone ID", "Mark a task not done"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.UpdateTask{TaskID: id, Changes: domain.TaskChanges{IsDone: domain.Bool(done)}}, nil
			})
		}),
	}
}

func newRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE...",
		Short: "Change a task's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return fmt.Errorf("title is required")
			}
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.UpdateTask{TaskID: id, Changes: domain.TaskChanges{Title: domain.String(title)}}, nil
			})
		}),
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task and its sub-tasks",
		Args:    cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.DeleteTask{TaskID: id, ContextID: contextOf(s, id)}, nil
			})
		}),
	}
}

func newArchiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Archive the done tasks of the active context",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, _ []string, deps *Dependencies) error {
			var count int
			snap, err := deps.Apply(cmd.Context(), func(s dispatcher.Snapshot) (domain.Event, error) {
				done := s.DoneInActive()
				count = len(done)
				batch := make([]domain.ArchivedTask, len(done))
				for i, id := range done {
					batch[i] = domain.ArchivedTask{TaskID: id, ContextID: s.ActiveContextID}
				}
				return domain.ArchiveTasks{Tasks: batch}, nil
			})
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to archive")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived %d tasks (%d in archive)\n", count, snap.Archive.Len())
			return nil
		}),
	}
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	var contextID string

	cmd := &cobra.Command{
		Use:   "restore ID",
		Short: "Bring an archived task back to today",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Archive, args[0])
				if err != nil {
					return nil, err
				}
				return domain.RestoreTask{TaskID: id, ContextID: contextID}, nil
			})
		}),
	}

	cmd.Flags().StringVarP(&contextID, "context", "c", "", "Context to restore into (default: the task's project)")
	return cmd
}

func newBacklogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backlog ID",
		Short: "Move a task from today to the top of the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.MoveTodayToBacklogAuto{TaskID: id, ContextID: contextOf(s, id)}, nil
			})
		}),
	}
}

func newTodayCmd(opts *rootOptions) *cobra.Command {
	var top bool

	cmd := &cobra.Command{
		Use:   "today ID",
		Short: "Move a task from the backlog to today",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.MoveBacklogToTodayAuto{TaskID: id, ContextID: contextOf(s, id), MoveToTop: top}, nil
			})
		}),
	}

	cmd.Flags().BoolVar(&top, "top", false, "Insert at the top of today")
	return cmd
}

// newNudgeCmd builds "up" or, with up false, "down"
func newNudgeCmd(opts *rootOptions, up bool) *cobra.Command {
	use, short := "up ID", "Swap a task with the one above it"
	if !up {
		use, short = "down ID", "Swap a task with the one below it"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				ctxID := contextOf(s, id)
				l, _ := s.Lists.Get(ctxID)
				inBacklog := !reorder.Contains(l.Today, id) && reorder.Contains(l.Backlog, id)

				switch {
				case up && inBacklog:
					return domain.NudgeUpBacklog{TaskID: id, ContextID: ctxID}, nil
				case up:
					return domain.NudgeUpToday{TaskID: id, ContextID: ctxID}, nil
				case inBacklog:
					return domain.NudgeDownBacklog{TaskID: id, ContextID: ctxID}, nil
				default:
					return domain.NudgeDownToday{TaskID: id, ContextID: ctxID}, nil
				}
			})
		}),
	}
}

func newMoveCmd(opts *rootOptions) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "move ID --to PROJECT",
		Short: "Transfer a task to another project's today list",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, args []string, deps *Dependencies) error {
			return applyAndReport(cmd, deps, func(s dispatcher.Snapshot) (domain.Event, error) {
				id, err := resolveID(s.Tasks, args[0])
				if err != nil {
					return nil, err
				}
				return domain.TransferTask{TaskID: id, SourceContextID: contextOf(s, id), TargetContextID: target}, nil
			})
		}),
	}

	cmd.Flags().StringVar(&target, "to", "", "Target project")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// applyAndReport applies the event and prints the resulting current task
func applyAndReport(cmd *cobra.Command, deps *Dependencies, build func(dispatcher.Snapshot) (domain.Event, error)) error {
	var before domain.Selection
	snap, err := deps.Apply(cmd.Context(), func(s dispatcher.Snapshot) (domain.Event, error) {
		before = s.Selection
		return build(s)
	})
	if err != nil {
		return err
	}
	writeCurrent(cmd.OutOrStdout(), before, snap)
	return nil
}

// writeCurrent prints the current task line, noting when it changed
func writeCurrent(out io.Writer, before domain.Selection, snap dispatcher.Snapshot) {
	t, ok := snap.CurrentTask()
	switch {
	case !ok && before.HasCurrent():
		fmt.Fprintln(out, "Stopped")
	case !ok:
		fmt.Fprintln(out, "OK")
	case t.ID != before.CurrentTaskID:
		fmt.Fprintf(out, "Now working on %s: %s\n", shortID(t.ID), t.Title)
	default:
		fmt.Fprintf(out, "Working on %s: %s\n", shortID(t.ID), t.Title)
	}
}
