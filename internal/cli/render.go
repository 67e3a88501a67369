package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

const contentWidth = 60

// todoView is the json/yaml shape of one todo.
type todoView struct {
	ID        string `json:"id" yaml:"id"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

type listView struct {
	Total  int        `json:"total" yaml:"total"`
	Search string     `json:"search,omitempty" yaml:"search,omitempty"`
	Todos  []todoView `json:"todos" yaml:"todos"`
}

func viewOf(t model.Todo) todoView {
	return todoView{ID: t.ID, Content: t.Content, CreatedAt: t.Created()}
}

// encode writes v as json or yaml.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}

// listLines renders the panel body for `tada ls`.
func listLines(visible []model.Todo, total int, term string, loc *time.Location) []string {
	t := ui.Current()

	var header string
	if term == "" {
		header = fmt.Sprintf("%s  %s", ui.C(t.Title, "Todos"), ui.C(t.Muted, fmt.Sprintf("%d total", total)))
	} else {
		header = fmt.Sprintf("%s  %s", ui.C(t.Title, "Todos"),
			ui.C(t.Muted, fmt.Sprintf("%d of %d match %q", len(visible), total, term)))
	}
	lines := []string{header, ""}

	switch {
	case total == 0:
		lines = append(lines, ui.C(t.Muted, "Nothing to do!"))
	case len(visible) == 0:
		lines = append(lines, ui.C(t.Muted, "no matches"))
	default:
		texts := make([]string, len(visible))
		width := 0
		for i, td := range visible {
			texts[i] = ui.Truncate(oneLine(td.Content), contentWidth)
			width = max(width, lipgloss.Width(texts[i]))
		}
		for i, td := range visible {
			pad := strings.Repeat(" ", width-lipgloss.Width(texts[i]))
			lines = append(lines, fmt.Sprintf("%s %s %s%s  %s",
				ui.C(ui.Dim, fmt.Sprintf("%2d.", i+1)),
				ui.C(t.Accent, t.Bullet),
				texts[i], pad,
				ui.C(t.Muted, td.CreatedAt.In(loc).Format("2006-01-02 15:04")),
			))
		}
	}

	lines = append(lines, "", ui.C(t.Muted, "Tip: add with `tada add \"Buy milk\"`"))
	return lines
}

// oneLine folds line breaks so a todo stays on one panel row.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
