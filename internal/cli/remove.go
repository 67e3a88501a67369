package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/ui"
)

func newRemoveCommand(opts *RootOptions, d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|index>",
		Aliases: []string{"remove"},
		Short:   "Remove a todo by id or by its 1-based index in `tada ls`",
		Args:    exactArgs(1, "tada rm <id|index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, opts, d, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, opts *RootOptions, d deps, ref string) error {
	r, err := openRunner(cmd, opts, d, false)
	if err != nil {
		return err
	}
	id, resolveErr := resolve(r.app, ref)
	if resolveErr == nil {
		r.app.Delete(id)
	}
	if err := r.close(cmd.Context()); err != nil {
		return err
	}
	if resolveErr != nil {
		return resolveErr
	}
	if opts.Format != "text" {
		return encode(r.out, opts.Format, map[string]string{"removed": id})
	}
	ui.OK(r.out, "removed")
	return nil
}

// resolve turns an id or a 1-based index into the unfiltered, newest-first
// list into a todo id.
func resolve(a *app.App, ref string) (string, error) {
	if _, ok := a.Get(ref); ok {
		return ref, nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return "", usageError("no todo with id %q", ref)
	}
	visible := a.Visible()
	if n < 1 || n > len(visible) {
		return "", usageError("index out of range: have %d, got %d (run `tada ls` to see valid indexes)", len(visible), n)
	}
	return visible[n-1].ID, nil
}
