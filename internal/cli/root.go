package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
)

// RootOptions holds the persistent flags. Empty values defer to config.
type RootOptions struct {
	ConfigPath string
	Backend    string
	DataDir    string
	LogLevel   string
	Theme      string
	Format     string
	NoColor    bool
}

// ValidFormats are the accepted --format values.
var ValidFormats = []string{"text", "json", "yaml"}

// deps are the seams tests swap out.
type deps struct {
	lookupEnv func(string) (string, bool)
	repoOpts  []todo.Option
	loc       *time.Location
	runTUI    func(ctx context.Context, a *app.App) error
}

func defaultDeps() deps {
	return deps{
		lookupEnv: os.LookupEnv,
		loc:       time.Local,
		runTUI: func(ctx context.Context, a *app.App) error {
			return tui.Run(ctx, a)
		},
	}
}

// NewRootCommand builds the tada command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultDeps())
}

func newRootCommand(d deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny todo list",
		Long: `tada keeps a personal todo list on this machine.

Run without a subcommand to open the interactive list.`,
		Example: `  tada add "Buy milk"
  tada ls --search milk
  tada edit 1 "Buy oat milk"
  tada rm 2`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return usageError("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, d)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (TOML)")
	pf.StringVar(&opts.Backend, "backend", "", "storage backend (file|sqlite|postgres|firestore|memory)")
	pf.StringVar(&opts.DataDir, "data-dir", "", "directory for the file and sqlite backends and the TUI log")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.Theme, "theme", "", "color theme (classic|neon|mono)")
	pf.StringVar(&opts.Format, "format", "text", fmt.Sprintf("output format %v", ValidFormats))
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colors")

	cmd.AddCommand(newAddCommand(opts, d))
	cmd.AddCommand(newListCommand(opts, d))
	cmd.AddCommand(newRemoveCommand(opts, d))
	cmd.AddCommand(newEditCommand(opts, d))
	cmd.AddCommand(newTUICommand(opts, d))

	return cmd
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError("usage: %s", usage)
		}
		return nil
	}
}
