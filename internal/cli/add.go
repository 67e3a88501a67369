package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/ui"
)

func newAddCommand(opts *RootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "add <content...>",
		Short: "Add a todo (content can be multiple words)",
		Args:  minArgs(1, "tada add <content...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, d, strings.Join(args, " "))
		},
	}
}

func runAdd(cmd *cobra.Command, opts *RootOptions, d deps, content string) error {
	if strings.TrimSpace(content) == "" {
		return usageError("nothing to add")
	}
	r, err := openRunner(cmd, opts, d, false)
	if err != nil {
		return err
	}
	t, _ := r.app.Create(content)
	if err := r.close(cmd.Context()); err != nil {
		return err
	}
	if opts.Format != "text" {
		return encode(r.out, opts.Format, viewOf(t))
	}
	ui.OK(r.out, "added "+ui.C(ui.Current().Muted, t.ID))
	return nil
}
