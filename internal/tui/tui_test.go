package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/ui"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) []tea.Msg {
	var out []tea.Msg
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

func seed() []model.Entry {
	return []model.Entry{
		{Name: "make dinner", DueDate: "2022-12-22"},
		{Name: "wash dishes", DueDate: "2022-12-22"},
	}
}

func newModel(t *testing.T, entries []model.Entry) Model {
	t.Helper()
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })
	m, err := New(entries)
	require.NoError(t, err)
	return m
}

func TestDeleteFirstThenRemainingRow(t *testing.T) {
	m := newModel(t, seed())

	m = press(t, m, runes("d"))
	assert.Equal(t, []model.Entry{{Name: "wash dishes", DueDate: "2022-12-22"}}, m.Entries())
	assert.True(t, m.Changed())
	assert.Equal(t, 0, m.screen.Fragment().Rows[0].Delete.Index)

	m = press(t, m, runes("d"))
	assert.Empty(t, m.Entries())
}

func TestDeleteSecondThenFirst(t *testing.T) {
	m := newModel(t, seed())

	m = press(t, m, runes("j"), runes("x"))
	assert.Equal(t, []model.Entry{{Name: "make dinner", DueDate: "2022-12-22"}}, m.Entries())
	assert.Equal(t, 0, m.cursor, "cursor clamps to the last row")

	m = press(t, m, runes("x"))
	assert.Empty(t, m.Entries())
	assert.Equal(t, 0, m.cursor)

	// nothing left to delete
	m = press(t, m, runes("x"))
	assert.Empty(t, m.Entries())
}

func TestAddClearsInputs(t *testing.T) {
	m := newModel(t, nil)

	m = press(t, m, runes("a"))
	require.True(t, m.adding)
	m = press(t, m, typeText("buy milk")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = press(t, m, typeText("2022-12-23")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []model.Entry{{Name: "buy milk", DueDate: "2022-12-23"}}, m.Entries())
	assert.False(t, m.adding)
	assert.Equal(t, "", m.name.Value())
	assert.Equal(t, "", m.due.Value())
	assert.Equal(t, 0, m.cursor)
}

func TestAddBlankAccepted(t *testing.T) {
	m := newModel(t, seed())

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.Entries(), 3)
	assert.Equal(t, model.Entry{}, m.Entries()[2])
	assert.Equal(t, 2, m.cursor)
}

func TestAddCancel(t *testing.T) {
	m := newModel(t, seed())

	m = press(t, m, runes("a"))
	m = press(t, m, typeText("nope")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Len(t, m.Entries(), 2)
	assert.False(t, m.Changed())
	assert.Equal(t, "", m.name.Value())
}

func TestQKeyTypesInForm(t *testing.T) {
	m := newModel(t, nil)

	m = press(t, m, runes("a"), runes("q"))
	assert.True(t, m.adding)
	assert.Equal(t, "q", m.name.Value())
}

func TestQuit(t *testing.T) {
	m := newModel(t, seed())
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestCursorBounds(t *testing.T) {
	m := newModel(t, seed())

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 1, m.cursor)
}

func TestViewShowsRows(t *testing.T) {
	m := newModel(t, seed())

	v := m.View()
	assert.Contains(t, v, "Todos")
	assert.Contains(t, v, " 1. make dinner  2022-12-22")
	assert.Contains(t, v, " 2. wash dishes  2022-12-22")

	m = press(t, m, runes("d"))
	v = m.View()
	assert.NotContains(t, v, "make dinner  2022-12-22")
	assert.Contains(t, v, " 1. wash dishes")
	assert.Contains(t, v, `deleted "make dinner"`)
}

func TestViewEmpty(t *testing.T) {
	m := newModel(t, nil)
	assert.Contains(t, m.View(), "no items")
}

func TestViewForm(t *testing.T) {
	m := newModel(t, nil)
	m = press(t, m, runes("a"))
	assert.Contains(t, m.View(), "Add todo")
}

func TestLineBreaksInFieldsKeepCursorOnRow(t *testing.T) {
	m := newModel(t, []model.Entry{
		{Name: "a", DueDate: "x\ny"},
		{Name: "b", DueDate: "2022"},
	})

	m = press(t, m, runes("j"))
	v := m.View()
	assert.Contains(t, v, " 1. a  x y")
	assert.Contains(t, v, ">  2. b  2022")
	assert.NotContains(t, v, " 3. ")

	m = press(t, m, runes("d"))
	assert.Equal(t, []model.Entry{{Name: "a", DueDate: "x\ny"}}, m.Entries())
}

func TestViewOneLinePerRow(t *testing.T) {
	m := newModel(t, []model.Entry{
		{Name: "multi\nline", DueDate: "2022\r\n12"},
		{Name: "plain", DueDate: "2022-12-22"},
	})

	var numbered int
	for _, ln := range strings.Split(m.View(), "\n") {
		if strings.Contains(ln, ". ") && (strings.Contains(ln, "multi") || strings.Contains(ln, "plain")) {
			numbered++
		}
	}
	assert.Equal(t, 2, numbered)
	assert.Contains(t, m.View(), "multi line  2022 12")
}
