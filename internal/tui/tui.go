// Package tui is the interactive todo list. It holds no todo state of its
// own: every key press is forwarded to the app and the list is rebuilt from
// app.Visible.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeSearch
)

// listItem adapts a todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
	loc  *time.Location
}

func (i listItem) Title() string       { return i.todo.Content }
func (i listItem) Description() string { return i.todo.CreatedAt.In(i.loc).Format("2006-01-02 15:04") }
func (i listItem) FilterValue() string { return i.todo.Content }

// itemDelegate renders each todo on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := strings.Join(strings.Fields(it.todo.Content), " ")
	prefix := "  "
	if index == m.Index() {
		prefix = accentStyle.Render("> ")
		text = selectedText.Render(text)
	}
	fmt.Fprintf(w, "%s%s  %s", prefix, text, mutedStyle.Render(it.Description()))
}

// Model is the Bubble Tea model over an app.App.
type Model struct {
	app   *app.App
	list  list.Model
	input textinput.Model
	keys  keyMap
	loc   *time.Location

	mode   mode
	errMsg string
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLocation sets the zone created times are shown in.
func WithLocation(loc *time.Location) Option { return func(m *Model) { m.loc = loc } }

// New builds the model and loads the visible list.
func New(a *app.App, opts ...Option) Model {
	m := Model{
		app:    a,
		keys:   defaultKeys(),
		loc:    time.Local,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = m.keys.short
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return append(m.keys.short(), m.keys.Clear, m.keys.Quit)
	}
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.CharLimit = 500

	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, a *app.App, opts ...Option) error {
	p := tea.NewProgram(New(a, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeSearch:
		return m.updateSearch(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Clear):
			m.app.SetSearchTerm("")
			m.refresh()
			return m, nil
		case key.Matches(k, m.keys.Delete):
			if t, ok := m.selected(); ok {
				m.app.Delete(t.ID)
				m.refresh()
			}
			return m, nil
		case key.Matches(k, m.keys.Add):
			return m.open(modeAdd, "", "New todo..."), textinput.Blink
		case key.Matches(k, m.keys.Edit):
			t, ok := m.selected()
			if !ok || !m.app.BeginEdit(t.ID) {
				return m, nil
			}
			_, draft, _ := m.app.Editing()
			return m.open(modeEdit, draft, "Edit todo..."), textinput.Blink
		case key.Matches(k, m.keys.Search):
			return m.open(modeSearch, m.app.SearchTerm(), "Search..."), textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			content := m.input.Value()
			if strings.TrimSpace(content) == "" {
				m.errMsg = "Content cannot be empty"
				return m, nil
			}
			m.app.Create(content)
			m.close()
			m.refresh()
			m.list.Select(0)
			return m, nil
		case "esc":
			m.close()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			if strings.TrimSpace(m.input.Value()) == "" {
				m.errMsg = "Content cannot be empty"
				return m, nil
			}
			m.app.Commit()
			m.close()
			m.refresh()
			return m, nil
		case "esc":
			m.app.Cancel()
			m.close()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.app.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			m.close()
			return m, nil
		case "esc":
			m.app.SetSearchTerm("")
			m.close()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.app.SearchTerm() {
		m.app.SetSearchTerm(m.input.Value())
		m.refresh()
		m.list.Select(0)
	}
	return m, cmd
}

// open switches to an input mode with the field prefilled.
func (m Model) open(md mode, value, placeholder string) Model {
	m.mode = md
	m.errMsg = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.resize()
	return m
}

func (m *Model) close() {
	m.mode = modeBrowse
	m.errMsg = ""
	m.input.SetValue("")
	m.input.Blur()
	m.resize()
}

// refresh rebuilds the list rows from the app, keeping the cursor in range.
func (m *Model) refresh() {
	visible := m.app.Visible()
	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = listItem{todo: t, loc: m.loc}
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != modeBrowse {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m Model) header() string {
	h := titleStyle.Render("Todos") + "   " + accentStyle.Render("Total") + fmt.Sprintf(" %d", m.app.Total())
	if term := m.app.SearchTerm(); term != "" {
		h += "   " + mutedStyle.Render(fmt.Sprintf("%d match %q", len(m.list.Items()), term))
	}
	if m.app.SyncErr() != nil {
		h += "  " + badgeStyle.Render("sync failed")
	}
	return h
}

func (m Model) View() string {
	m.list.Title = m.header()
	content := m.list.View()
	if len(m.list.Items()) == 0 {
		empty := "Nothing to do!"
		if m.app.SearchTerm() != "" {
			empty = "No todos match the search."
		}
		content = m.list.Title + "\n\n" + mutedStyle.Render(empty)
	}

	if m.mode != modeBrowse {
		title := map[mode]string{modeAdd: "Add todo", modeEdit: "Edit todo", modeSearch: "Search"}[m.mode]
		if m.errMsg != "" {
			title += "  " + errorStyle.Render(m.errMsg)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.input.View())
	}
	return frameStyle.Render(content)
}
