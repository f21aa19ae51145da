// ABOUTME: Interactive memo list: live search, tag filter cycling and delete.
// ABOUTME: Reloads the collection at start, after each change and on focus regain.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/query"
)

// Notebook is what the browser needs from the memo collection.
type Notebook interface {
	View(ctx context.Context, term, tag string) (*notebook.View, error)
	Delete(ctx context.Context, id int64) error
}

// row is one line of the list: a group header or a memo under it.
type row struct {
	group string
	memo  *models.Memo
}

// loadedMsg carries the filters it was loaded for. It is applied only while
// they are still current.
type loadedMsg struct {
	term string
	tag  string
	view *notebook.View
	err  error
}

type deletedMsg struct {
	err error
}

// Model is the bubbletea model for `memopad browse`.
type Model struct {
	ctx   context.Context
	nb    Notebook
	input textinput.Model

	tag  string
	view *notebook.View
	rows []row

	// cursor indexes rows and always points at a memo row when any exist.
	cursor     int
	confirming bool
	err        error
	width      int
}

// New creates a browser over nb.
func New(ctx context.Context, nb Notebook) *Model {
	ti := textinput.New()
	ti.Placeholder = "search title or text"
	ti.CharLimit = 256
	ti.Focus()
	return &Model{ctx: ctx, nb: nb, input: ti}
}

// Run starts the browser full screen with focus reporting enabled.
func Run(ctx context.Context, nb Notebook) error {
	p := tea.NewProgram(New(ctx, nb), tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m *Model) load() tea.Cmd {
	term, tag := m.input.Value(), m.tag
	return func() tea.Msg {
		v, err := m.nb.View(m.ctx, term, tag)
		return loadedMsg{term: term, tag: tag, view: v, err: err}
	}
}

func (m *Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.nb.Delete(m.ctx, id)}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.FocusMsg:
		return m, m.load()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 12
		return m, nil

	case loadedMsg:
		if msg.term != m.input.Value() || msg.tag != m.tag {
			return m, nil
		}
		m.err = msg.err
		if msg.err == nil {
			m.view = msg.view
			m.rebuild()
		}
		return m, nil

	case deletedMsg:
		m.err = msg.err
		return m, m.load()

	case tea.KeyMsg:
		if m.confirming {
			return m.updateConfirm(msg)
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.cycleTag(1)
			return m, m.load()
		case "shift+tab":
			m.cycleTag(-1)
			return m, m.load()
		case "up", "ctrl+p":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n":
			m.move(1)
			return m, nil
		case "ctrl+d", "delete":
			if m.Selected() != nil {
				m.confirming = true
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.load())
	}
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.confirming = false
		if sel := m.Selected(); sel != nil {
			return m, m.remove(sel.ID)
		}
	case "n", "esc":
		m.confirming = false
	}
	return m, nil
}

// filters lists the tag filter values in cycle order; "" shows everything.
// The no-tag group is display only and never offered as a filter.
func (m *Model) filters() []string {
	out := []string{""}
	if m.view != nil {
		out = append(out, m.view.TagNames...)
	}
	return out
}

func (m *Model) cycleTag(step int) {
	f := m.filters()
	i := 0
	for j, name := range f {
		if name == m.tag {
			i = j
			break
		}
	}
	m.tag = f[(i+step+len(f))%len(f)]
}

func (m *Model) rebuild() {
	m.rows = m.rows[:0]
	for _, key := range m.view.Keys {
		m.rows = append(m.rows, row{group: key})
		for _, memo := range m.view.Groups[key] {
			m.rows = append(m.rows, row{group: key, memo: memo})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if len(m.rows) > 0 && m.rows[m.cursor].memo == nil {
		m.move(1)
	}
}

func (m *Model) move(step int) {
	for i := m.cursor + step; i >= 0 && i < len(m.rows); i += step {
		if m.rows[i].memo != nil {
			m.cursor = i
			return
		}
	}
}

// Selected returns the memo under the cursor, or nil.
func (m *Model) Selected() *models.Memo {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].memo
}

// Tag returns the active tag filter.
func (m *Model) Tag() string {
	return m.tag
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("memopad") + "\n\n")
	sb.WriteString(promptStyle.Render("Search: ") + m.input.View() + "\n")
	filter := "all"
	if m.tag != "" {
		filter = m.tag
	}
	sb.WriteString(promptStyle.Render("Tag:    ") + filterStyle.Render(filter) + "\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if m.view != nil && len(m.rows) == 0 {
		sb.WriteString(previewStyle.Render("No memos.") + "\n")
		if len(m.view.Suggestions) > 0 {
			sb.WriteString(previewStyle.Render("Did you mean: "+strings.Join(m.view.Suggestions, ", ")) + "\n")
		}
	}

	for i, r := range m.rows {
		if r.memo == nil {
			style := groupStyle
			if r.group == query.NoTag {
				style = noTagStyle
			}
			sb.WriteString(style.Render(r.group) + "\n")
			continue
		}
		line := "  " + r.memo.Title
		if i == m.cursor {
			line = selectedStyle.Render("> " + r.memo.Title)
		}
		sb.WriteString(line + "  " + previewStyle.Render(markup.Preview(r.memo.Content)) + "\n")
	}

	if m.confirming {
		if sel := m.Selected(); sel != nil {
			sb.WriteString("\n" + confirmStyle.Render(fmt.Sprintf("Delete %q? [y] yes  [n/esc] no", sel.Title)) + "\n")
		}
	}

	sb.WriteString("\n" + helpStyle.Render("[tab] tag filter  [↑/↓] move  [ctrl+d] delete  [esc] quit"))
	return sb.String()
}
