// ABOUTME: Tests for the interactive memo browser model.
// ABOUTME: Drives Update with key and focus messages over an in-memory notebook.

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/memopad/internal/blob"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/query"
	"github.com/harper/memopad/internal/store"
)

func newNotebook(t *testing.T) *notebook.Notebook {
	t.Helper()
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	nb := notebook.New(store.New(blob.NewMemory()), notebook.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))
	ctx := context.Background()
	for _, d := range []notebook.Draft{
		{Title: "Groceries", Content: "milk", Tags: []string{"Shopping"}},
		{Title: "Report", Content: "quarterly", Tags: []string{"Work"}},
		{Title: "Loose", Content: "no tags here"},
	} {
		_, err := nb.Create(ctx, d)
		require.NoError(t, err)
	}
	return nb
}

// run executes a single (non-batched) command and feeds its message back.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func loaded(t *testing.T, nb Notebook) *Model {
	t.Helper()
	m := New(context.Background(), nb)
	run(t, m, m.load())
	return m
}

func titles(m *Model) []string {
	var out []string
	for _, r := range m.rows {
		if r.memo != nil {
			out = append(out, r.memo.Title)
		}
	}
	return out
}

func TestInitialLoadGroupsMemos(t *testing.T) {
	m := loaded(t, newNotebook(t))

	require.NotNil(t, m.view)
	assert.Equal(t, []string{"Shopping", "Work", query.NoTag}, m.view.Keys)
	assert.Equal(t, []string{"Groceries", "Report", "Loose"}, titles(m))
	require.NotNil(t, m.Selected())
	assert.Equal(t, "Groceries", m.Selected().Title)
	assert.Contains(t, m.View(), "Shopping")
}

func TestTypingFiltersByText(t *testing.T) {
	m := loaded(t, newNotebook(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("quart")})
	assert.NotNil(t, cmd)
	assert.Equal(t, "quart", m.input.Value())

	run(t, m, m.load())
	assert.Equal(t, []string{"Report"}, titles(m))

	m.input.SetValue("xyz")
	run(t, m, m.load())
	assert.Empty(t, titles(m))
	assert.Contains(t, m.View(), "No memos.")
	assert.Nil(t, m.Selected())
}

func TestTabCyclesTagFilter(t *testing.T) {
	m := loaded(t, newNotebook(t))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Shopping", m.Tag())
	run(t, m, cmd)
	assert.Equal(t, []string{"Groceries"}, titles(m))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Work", m.Tag())
	run(t, m, cmd)
	assert.Equal(t, []string{"Report"}, titles(m))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "", m.Tag())
	run(t, m, cmd)
	assert.Len(t, titles(m), 3)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Work", m.Tag())
	assert.NotNil(t, cmd)
}

func TestTagFilterNeverOffersNoTag(t *testing.T) {
	m := loaded(t, newNotebook(t))

	assert.NotContains(t, m.filters(), query.NoTag)
	seen := map[string]bool{}
	for range len(m.filters()) + 1 {
		m.cycleTag(1)
		seen[m.Tag()] = true
	}
	assert.False(t, seen[query.NoTag])
	assert.True(t, seen[""])
}

func TestStaleLoadIsDropped(t *testing.T) {
	m := loaded(t, newNotebook(t))

	m.input.SetValue("G")
	older := m.load()
	m.input.SetValue("gro")
	newer := m.load()

	m.Update(newer())
	assert.Equal(t, []string{"Groceries"}, titles(m))

	m.Update(older())
	assert.Equal(t, "gro", m.input.Value())
	assert.Equal(t, []string{"Groceries"}, titles(m))
}

func TestStaleTagLoadIsDropped(t *testing.T) {
	m := loaded(t, newNotebook(t))

	m.cycleTag(1)
	older := m.load()
	m.cycleTag(1)
	newer := m.load()

	m.Update(newer())
	assert.Equal(t, []string{"Report"}, titles(m))
	m.Update(older())
	assert.Equal(t, "Work", m.Tag())
	assert.Equal(t, []string{"Report"}, titles(m))
}

func TestCursorSkipsGroupHeaders(t *testing.T) {
	m := loaded(t, newNotebook(t))

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Report", m.Selected().Title)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Loose", m.Selected().Title)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Loose", m.Selected().Title)
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "Report", m.Selected().Title)
}

func TestFocusReloads(t *testing.T) {
	nb := newNotebook(t)
	m := loaded(t, nb)

	_, err := nb.Create(context.Background(), notebook.Draft{Title: "Added elsewhere", Tags: []string{"Work"}})
	require.NoError(t, err)
	assert.Len(t, titles(m), 3)

	_, cmd := m.Update(tea.FocusMsg{})
	run(t, m, cmd)
	assert.Len(t, titles(m), 4)
	assert.Contains(t, titles(m), "Added elsewhere")
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	nb := newNotebook(t)
	m := loaded(t, nb)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.True(t, m.confirming)
	assert.Contains(t, m.View(), `Delete "Groceries"?`)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, m.confirming)
	assert.Len(t, titles(m), 3)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	_, reload := m.Update(cmd())
	run(t, m, reload)

	assert.Equal(t, []string{"Report", "Loose"}, titles(m))
	all, err := nb.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
