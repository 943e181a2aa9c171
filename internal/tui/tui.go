package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/render"
	"github.com/idilsaglam/todolist/internal/todolist"
	"github.com/idilsaglam/todolist/internal/ui"
)

type keyMap struct {
	Up, Down, Add, Delete, Next, Submit, Cancel, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Add, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Next, k.Submit, k.Cancel}}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Next:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the interactive list. The list re-renders
// into screen after every mutation; View only ever reads the latest fragment.
type Model struct {
	list   *todolist.List
	screen *render.Buffer

	cursor  int
	changed bool
	status  string

	// add form
	adding  bool
	name    textinput.Model
	due     textinput.Model
	focused int // 0 name, 1 due

	help   help.Model
	width  int
	height int
}

// New builds a model over seed entries.
func New(seed []model.Entry) (Model, error) {
	screen := &render.Buffer{}
	l, err := todolist.New(render.Terminal{}, screen, seed...)
	if err != nil {
		return Model{}, fmt.Errorf("new list: %w", err)
	}

	name := textinput.New()
	name.Prompt = "name > "
	name.Placeholder = "New todo..."
	name.CharLimit = 200

	due := textinput.New()
	due.Prompt = "due  > "
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	return Model{
		list:   l,
		screen: screen,
		name:   name,
		due:    due,
		help:   help.New(),
		width:  80,
		height: 24,
	}, nil
}

// Entries returns the list contents.
func (m Model) Entries() []model.Entry { return m.list.Entries() }

// Changed reports whether anything was added or deleted.
func (m Model) Changed() bool { return m.changed }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
		return m, nil
	}
	if m.adding {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	rows := m.screen.Fragment().Rows
	switch {
	case key.Matches(km, keys.Quit):
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Add):
		m.adding = true
		m.focused = 0
		m.status = ""
		m.due.Blur()
		cmd := m.name.Focus()
		return m, cmd
	case key.Matches(km, keys.Delete):
		if m.cursor < 0 || m.cursor >= len(rows) {
			return m, nil
		}
		row := rows[m.cursor]
		if err := row.Delete.Delete(); err != nil {
			m.status = m.errText(err)
			log.Printf("delete row %d: %v", row.Delete.Index, err)
			return m, nil
		}
		log.Printf("deleted %q at %d", row.Name, row.Delete.Index)
		m.changed = true
		m.status = "deleted " + quoteName(row.Name)
		m.clampCursor()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.Type == tea.KeyCtrlC:
			return m, tea.Quit
		case key.Matches(km, keys.Cancel):
			m.closeForm()
			return m, nil
		case key.Matches(km, keys.Next):
			m.focused = 1 - m.focused
			var cmd tea.Cmd
			if m.focused == 0 {
				m.due.Blur()
				cmd = m.name.Focus()
			} else {
				m.name.Blur()
				cmd = m.due.Focus()
			}
			return m, cmd
		case key.Matches(km, keys.Submit):
			name, due := m.name.Value(), m.due.Value()
			if err := m.list.Add(name, due); err != nil {
				m.status = m.errText(err)
				log.Printf("add %q: %v", name, err)
				return m, nil
			}
			log.Printf("added %q due %q", name, due)
			m.changed = true
			m.status = "added " + quoteName(name)
			m.cursor = m.list.Len() - 1
			m.closeForm()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focused == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.due, cmd = m.due.Update(msg)
	}
	return m, cmd
}

// closeForm clears both inputs; it runs after a successful add as well as on cancel.
func (m *Model) closeForm() {
	m.adding = false
	m.name.SetValue("")
	m.due.SetValue("")
	m.name.Blur()
	m.due.Blur()
	m.focused = 0
}

func (m *Model) clampCursor() {
	n := m.list.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) errText(err error) string {
	var ie *todolist.IndexError
	switch {
	case errors.As(err, &ie):
		return fmt.Sprintf("no row %d (list has %d)", ie.Index+1, ie.Len)
	case errors.Is(err, todolist.ErrStaleBinding):
		return "list changed, try again"
	}
	return err.Error()
}

func quoteName(s string) string {
	if s == "" {
		return "(untitled)"
	}
	return fmt.Sprintf("%q", s)
}

func (m Model) View() string {
	t := ui.Current()
	frag := m.screen.Fragment()

	header := fmt.Sprintf("%s   %s %d",
		t.Title.Render("Todos"),
		t.Accent.Render("Total"), len(frag.Rows))

	// one screen line per bound row, so the cursor always sits on rows[m.cursor]
	var body []string
	if len(frag.Rows) == 0 {
		body = []string{frag.Markup}
	}
	for i, row := range frag.Rows {
		prefix := strings.Repeat(" ", lipgloss.Width(t.Cursor))
		if i == m.cursor && !m.adding {
			prefix = t.Selected.Render(t.Cursor)
		}
		body = append(body, fmt.Sprintf("%s%2d. %s", prefix, i+1, render.Line(row)))
	}

	parts := []string{header, ""}
	parts = append(parts, body...)
	if m.adding {
		form := lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.BorderColor).
			Padding(0, 1).
			Render("Add todo\n" + m.name.View() + "\n" + m.due.View())
		parts = append(parts, "", form)
	}
	if m.status != "" {
		parts = append(parts, "", t.Muted.Render(m.status))
	}
	parts = append(parts, "", m.help.View(keys))
	return ui.Frame(strings.Join(parts, "\n"))
}

// Run starts the program and returns the final model.
func Run(seed []model.Entry, opts ...tea.ProgramOption) (Model, error) {
	m, err := New(seed)
	if err != nil {
		return Model{}, err
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return Model{}, fmt.Errorf("run: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected model %T", final)
	}
	return fm, nil
}
