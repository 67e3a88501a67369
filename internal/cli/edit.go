package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/ui"
)

func newEditCommand(opts *RootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id|index> <content...>",
		Short: "Replace the content of a todo",
		Args:  minArgs(2, "tada edit <id|index> <content...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts, d, args[0], strings.Join(args[1:], " "))
		},
	}
}

func runEdit(cmd *cobra.Command, opts *RootOptions, d deps, ref, content string) error {
	if strings.TrimSpace(content) == "" {
		return usageError("content cannot be empty")
	}
	r, err := openRunner(cmd, opts, d, false)
	if err != nil {
		return err
	}
	id, resolveErr := resolve(r.app, ref)
	if resolveErr == nil {
		r.app.BeginEdit(id)
		r.app.SetDraft(content)
		r.app.Commit()
	}
	t, _ := r.app.Get(id)
	if err := r.close(cmd.Context()); err != nil {
		return err
	}
	if resolveErr != nil {
		return resolveErr
	}
	if opts.Format != "text" {
		return encode(r.out, opts.Format, viewOf(t))
	}
	ui.OK(r.out, "updated")
	return nil
}
