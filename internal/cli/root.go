package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configDir string
	dataFile  string
}

// runFunc is a command body with its dependencies loaded
type runFunc func(cmd *cobra.Command, args []string, deps *Dependencies) error

// run wraps fn so the dependencies are built from the flags at run time
func (o *rootOptions) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		deps, err := NewDependencies(o.configDir, o.dataFile)
		if err != nil {
			return err
		}
		defer deps.Close()
		return fn(cmd, args, deps)
	}
}

// NewRootCmd builds the command tree. With no subcommand it starts the TUI.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "focus",
		Short: "focus - one list for today, one task at a time",
		Long: `focus keeps a Today and a Backlog list per project or tag and tracks the
single task you are working on.

Run without arguments to open the terminal UI.`,
		Args:          cobra.NoArgs,
		RunE:          opts.run(runTUI),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Config directory (default $XDG_CONFIG_HOME/focus)")
	root.PersistentFlags().StringVarP(&opts.dataFile, "file", "f", "", "Snapshot file (overrides storage.path)")

	root.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newStartCmd(opts),
		newSelectCmd(opts),
		newDoneCmd(opts, true),
		newDoneCmd(opts, false),
		newRenameCmd(opts),
		newRemoveCmd(opts),
		newArchiveCmd(opts),
		newRestoreCmd(opts),
		newBacklogCmd(opts),
		newTodayCmd(opts),
		newNudgeCmd(opts, true),
		newNudgeCmd(opts, false),
		newMoveCmd(opts),
		newContextCmd(opts),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "focus %s\n", version)
		},
	}
}
