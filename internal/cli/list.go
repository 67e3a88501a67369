package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/ui"
)

func newListCommand(opts *RootOptions, d deps) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, newest first",
		Args:    exactArgs(0, "tada ls [--search term]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, d, search)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only show todos containing term (case-insensitive)")
	return cmd
}

func runList(cmd *cobra.Command, opts *RootOptions, d deps, search string) error {
	r, err := openRunner(cmd, opts, d, false)
	if err != nil {
		return err
	}
	r.app.SetSearchTerm(search)
	visible := r.app.Visible()
	total := r.app.Total()
	if err := r.close(cmd.Context()); err != nil {
		return err
	}

	if opts.Format != "text" {
		v := listView{Total: total, Search: search, Todos: make([]todoView, 0, len(visible))}
		for _, t := range visible {
			v.Todos = append(v.Todos, viewOf(t))
		}
		return encode(r.out, opts.Format, v)
	}
	ui.Panel(r.out, listLines(visible, total, search, d.loc))
	return nil
}
