package cli

import (
	"github.com/spf13/cobra"
)

func newTUICommand(opts *RootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list (default)",
		Args:  exactArgs(0, "tada tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, d)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *RootOptions, d deps) error {
	r, err := openRunner(cmd, opts, d, true)
	if err != nil {
		return err
	}
	runErr := d.runTUI(cmd.Context(), r.app)
	if err := r.close(cmd.Context()); err != nil {
		return err
	}
	if runErr != nil {
		return failure("tui", runErr)
	}
	return nil
}
