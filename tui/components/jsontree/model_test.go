package jsontree

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/pkg/tree"
)

const doc = `{"a": {"b": 1}, "c": [1, 2]}`

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func newModel(t *testing.T, text string, opts ...Option) Model {
	t.Helper()
	s := session.New()
	s.SetText(text)
	m := New(s, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func paths(m Model) []string {
	var out []string
	for _, n := range m.Rows() {
		out = append(out, n.Path().String())
	}
	return out
}

func TestRowsFollowDefaultExpansion(t *testing.T) {
	m := newModel(t, doc)
	assert.Equal(t, []string{"", "a", "a/b", "c", "c/0", "c/1"}, paths(m))
	assert.Contains(t, m.View(), "Object(2)")
}

func TestNavigationAndFolding(t *testing.T) {
	m := newModel(t, doc)

	m = press(t, m, "j")
	require.Equal(t, "a", m.Selected().Path().String())

	m = press(t, m, "h")
	assert.Equal(t, []string{"", "a", "c", "c/0", "c/1"}, paths(m))
	assert.Equal(t, "a", m.Selected().Path().String(), "cursor stays on the folded node")

	m = press(t, m, "l")
	assert.Len(t, m.Rows(), 6)

	m = press(t, m, "j", "h")
	assert.Equal(t, "a", m.Selected().Path().String(), "h on a leaf moves to the parent")

	m = press(t, m, "G")
	assert.Equal(t, "c/1", m.Selected().Path().String())
	m = press(t, m, "g", "g")
	assert.Equal(t, "", m.Selected().Path().String())
}

func TestFoldSequences(t *testing.T) {
	m := newModel(t, doc)

	m = press(t, m, "z", "M")
	assert.Equal(t, []string{""}, paths(m))

	m = press(t, m, "z", "R")
	assert.Len(t, m.Rows(), 6)

	m = press(t, m, "1")
	assert.Equal(t, []string{"", "a", "c"}, paths(m))

	m = press(t, m, "0")
	assert.Equal(t, []string{""}, paths(m))
}

func TestSearchNavigation(t *testing.T) {
	m := newModel(t, doc)
	m = press(t, m, "1", "/", "2")
	assert.True(t, m.searching)

	text, regex := m.Session().Search()
	assert.Equal(t, "2", text)
	assert.False(t, regex)
	assert.Len(t, m.Session().Matches(), 2)

	m = press(t, m, "enter")
	assert.False(t, m.searching)
	assert.Equal(t, "c", m.Selected().Path().String())
	assert.Contains(t, m.View(), "1 of 2")

	m = press(t, m, "n")
	assert.Equal(t, "c/1", m.Selected().Path().String())
	assert.Equal(t, []string{"", "c", "c/1"}, paths(m), "filtered rows hide c/0")
	assert.Contains(t, m.View(), "2 of 2")

	m = press(t, m, "n")
	assert.Equal(t, "c", m.Selected().Path().String(), "next wraps around")

	m = press(t, m, "N")
	assert.Equal(t, "c/1", m.Selected().Path().String())

	m = press(t, m, "esc")
	text, _ = m.Session().Search()
	assert.Empty(t, text)
	assert.Equal(t, []string{"", "a", "c", "c/0", "c/1"}, paths(m), "expansion from the search is kept")
}

func TestSearchRegexToggle(t *testing.T) {
	m := newModel(t, doc)
	m = press(t, m, "/", "^b$", "ctrl+r")
	_, regex := m.Session().Search()
	assert.True(t, regex)
	require.Len(t, m.Session().Matches(), 1)
	assert.Equal(t, tree.Path{"a", "b"}, m.Session().Matches()[0].Path())

	m = press(t, m, "ctrl+r")
	assert.Empty(t, m.Session().Matches(), "literal ^b$ matches nothing")
}

func TestSearchEscRestoresPrevious(t *testing.T) {
	m := newModel(t, doc)
	m = press(t, m, "/", "b", "enter")
	m = press(t, m, "/", "x", "esc")
	text, _ := m.Session().Search()
	assert.Equal(t, "b", text)
}

func TestTextMsgKeepsCursor(t *testing.T) {
	m := newModel(t, doc)
	m = press(t, m, "j", "j", "j")
	require.Equal(t, "c", m.Selected().Path().String())

	next, _ := m.Update(TextMsg{Text: `{"z": 0, "a": {"b": 1}, "c": []}`})
	m = next.(Model)
	assert.Equal(t, "c", m.Selected().Path().String())

	next, _ = m.Update(TextMsg{Text: `{"a": `})
	m = next.(Model)
	assert.Empty(t, m.Rows())
	assert.Contains(t, m.View(), "Invalid JSON")

	next, _ = m.Update(ErrMsg{Err: errors.New("watch failed")})
	assert.Contains(t, next.(Model).View(), "watch failed")
}

func TestEmptyDocument(t *testing.T) {
	m := newModel(t, "")
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No JSON data")
	m = press(t, m, "j", "l", "h", "n")
	assert.Nil(t, m.Selected())
}

func TestQuit(t *testing.T) {
	m := newModel(t, doc)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestLoadKeyMap(t *testing.T) {
	km := LoadKeyMap(&config.Config{Keys: config.KeybindingsConfig{"next_match": {"ctrl+n"}}})
	assert.Equal(t, []string{"ctrl+n"}, km.NextMatch.Keys())
	assert.Equal(t, "next match", km.NextMatch.Help().Desc)

	m := newModel(t, doc, WithKeyMap(km))
	m = press(t, m, "/", "2", "enter", "n")
	assert.Equal(t, "c", m.Selected().Path().String(), "n is no longer bound")
}
