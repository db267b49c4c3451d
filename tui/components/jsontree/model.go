// Package jsontree is an interactive, searchable JSON tree viewer built on
// a session.Session.
package jsontree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonview/pkg/session"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/keymap"
	"github.com/grovetools/jsonview/tui/theme"
	"github.com/grovetools/jsonview/tui/utils/scrollbar"
)

// TextMsg replaces the document, typically after the source file changed.
type TextMsg struct {
	Text string
}

// ErrMsg reports a failure from outside the model, such as a watch error.
type ErrMsg struct {
	Err error
}

// Model is the Bubble Tea model for the JSON tree viewer.
type Model struct {
	session *session.Session
	keys    KeyMap
	seq     *keymap.SequenceState
	theme   *theme.Theme
	title   string

	viewport viewport.Model
	help     help.Model
	input    textinput.Model

	rows       []*tree.Node
	cursor     int
	cursorPath tree.Path

	searching   bool
	regex       bool
	savedSearch string
	savedRegex  bool

	width, height int
	ready         bool
	status        string
}

// Option configures a Model.
type Option func(*Model)

// WithKeyMap replaces the default keybindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) { m.keys = km }
}

// WithTheme replaces theme.DefaultTheme.
func WithTheme(t *theme.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithTitle sets the header text, usually the file name.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithRegex starts new searches in regular expression mode.
func WithRegex(regex bool) Option {
	return func(m *Model) { m.regex = regex }
}

// New creates a viewer over s. The session keeps ownership of the tree and
// the search; the model only adds a cursor and the prompt.
func New(s *session.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "search keys and values"
	ti.Prompt = "/"
	ti.CharLimit = 256

	m := Model{
		session: s,
		keys:    DefaultKeyMap(),
		seq:     keymap.NewSequenceState(),
		theme:   theme.DefaultTheme,
		title:   "jsonview",
		help:    help.New(),
		input:   ti,
	}
	if text, regex := s.Search(); text != "" {
		m.regex = regex
		m.input.SetValue(text)
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.PromptStyle = m.theme.Prompt
	m.input.PlaceholderStyle = m.theme.Placeholder
	m.rebuildRows()
	return m
}

// Session returns the session the model renders.
func (m Model) Session() *session.Session { return m.session }

// Selected returns the node under the cursor, or nil.
func (m Model) Selected() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// Rows returns the rendered nodes in display order.
func (m Model) Rows() []*tree.Node { return m.rows }

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the size of the component.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	vpHeight := max(1, height-m.chromeHeight())
	if m.ready {
		m.viewport.Width = width - 1
		m.viewport.Height = vpHeight
	} else {
		m.viewport = viewport.New(width-1, vpHeight)
		m.ready = true
	}
	m.input.Width = max(10, width/2)
	m.updateContent()
}

// chromeHeight is the number of lines around the viewport: header, status
// line and help.
func (m *Model) chromeHeight() int {
	return 2 + lipgloss.Height(m.help.View(m.keys))
}

// Update handles messages and user input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case TextMsg:
		m.session.SetText(msg.Text)
		m.status = ""
		m.sync()
		return m, nil

	case ErrMsg:
		m.status = msg.Err.Error()
		m.updateContent()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

// updateSearch handles keys while the search prompt is focused. The filter
// follows the prompt as it is typed.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		n := m.session.Cursor().Current()
		if n != nil {
			m.session.Reveal(n.Path())
		}
		m.focusMatch(n)
		return m, nil

	case msg.Type == tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		m.input.SetValue(m.savedSearch)
		m.regex = m.savedRegex
		m.applySearch()
		return m, nil

	case key.Matches(msg, m.keys.ToggleRegex):
		m.regex = !m.regex
		m.applySearch()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applySearch()
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, idx := m.seq.Process(msg, m.keys.sequences()...)
	switch result {
	case keymap.SequencePending:
		return m, nil
	case keymap.SequenceMatch:
		m.seq.Clear()
		switch idx {
		case 0:
			m.cursor = 0
			m.updateContent()
		case 1:
			m.session.ExpandAll()
			m.sync()
		case 2:
			m.session.CollapseAll()
			m.sync()
		}
		return m, nil
	}
	m.seq.Clear()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.SetSize(m.width, m.height)

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.HalfPageUp):
		m.move(-max(1, m.viewport.Height/2))

	case key.Matches(msg, m.keys.HalfPageDown):
		m.move(max(1, m.viewport.Height/2))

	case key.Matches(msg, m.keys.GotoEnd):
		m.move(len(m.rows))

	case key.Matches(msg, m.keys.Toggle):
		if n := m.Selected(); n != nil && n.HasChildren() {
			m.session.Toggle(n.Path())
			m.sync()
		}

	case key.Matches(msg, m.keys.Fold):
		m.fold()

	case key.Matches(msg, m.keys.ExpandLevel):
		if level, ok := digit(msg.String()); ok {
			m.session.ExpandToLevel(level)
			m.sync()
		}

	case key.Matches(msg, m.keys.Search):
		m.savedSearch, m.savedRegex = m.session.Search()
		m.searching = true
		m.input.CursorEnd()
		m.updateContent()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.focusMatch(m.session.NextMatch())

	case key.Matches(msg, m.keys.PrevMatch):
		m.focusMatch(m.session.PrevMatch())

	case key.Matches(msg, m.keys.ClearSearch):
		m.input.SetValue("")
		m.applySearch()
	}
	return m, nil
}

// digit reads the level from the last character of a key such as "3" or
// "alt+3".
func digit(k string) (int, bool) {
	if k == "" {
		return 0, false
	}
	d := k[len(k)-1]
	if d < '0' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

// fold collapses an expanded container, or moves to the parent otherwise.
func (m *Model) fold() {
	n := m.Selected()
	if n == nil {
		return
	}
	if n.HasChildren() && n.Expanded() {
		m.session.Toggle(n.Path())
		m.sync()
		return
	}
	if n.Depth() == 0 {
		return
	}
	parent := n.Path().Parent()
	for i, row := range m.rows {
		if row.Path().Equal(parent) {
			m.cursor = i
			break
		}
	}
	m.updateContent()
}

func (m *Model) applySearch() {
	m.session.SetSearch(m.input.Value(), m.regex)
	m.sync()
}

// focusMatch puts the cursor on n after the session revealed it.
func (m *Model) focusMatch(n *tree.Node) {
	m.rebuildRows()
	if n != nil {
		m.seek(n.Path())
	}
	m.updateContent()
}

func (m *Model) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.updateContent()
}

// sync rebuilds the rows after the session changed and keeps the cursor on
// the same path when it is still displayed.
func (m *Model) sync() {
	path := m.cursorPath
	m.rebuildRows()
	if path != nil {
		m.seek(path)
	}
	m.updateContent()
}

func (m *Model) seek(path tree.Path) bool {
	for i, row := range m.rows {
		if row.Path().Equal(path) {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Model) rebuildRows() {
	m.rows = tree.Visible(m.session.View())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// updateContent renders the rows into the viewport and keeps the cursor
// on screen.
func (m *Model) updateContent() {
	if n := m.Selected(); n != nil {
		m.cursorPath = n.Path()
	} else {
		m.cursorPath = nil
	}
	if !m.ready {
		return
	}

	var current tree.Path
	if c := m.session.Cursor().Current(); c != nil {
		current = c.Path()
	}

	lines := make([]string, len(m.rows))
	for i, n := range m.rows {
		lines[i] = m.renderRow(n, i == m.cursor, current)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderRow(n *tree.Node, selected bool, current tree.Path) string {
	line := RenderRow(m.theme, n, current)
	if selected {
		line = m.theme.Selected.Render(line)
	}
	return line
}

// View renders the JSON tree.
func (m Model) View() string {
	if !m.ready {
		return "Initializing JSON viewer..."
	}

	var body string
	switch {
	case !m.session.Valid():
		body = m.renderInvalid()
	case m.session.Root() == nil:
		body = m.theme.Muted.Render("No JSON data to display")
	case len(m.rows) == 0:
		body = m.theme.Muted.Render("Nothing matches the search")
	default:
		body = scrollbar.Overlay(&m.viewport)
	}
	body = lipgloss.NewStyle().Height(m.viewport.Height).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	header := m.theme.Bold.Render(theme.IconTree + " " + m.title)
	if n := m.Selected(); n != nil {
		header += "  " + m.theme.Muted.Render(n.JSONPath())
	}
	return header
}

func (m Model) renderInvalid() string {
	res := m.session.Validation()
	if res.Error == nil {
		return m.theme.Error.Render("Invalid JSON")
	}
	return m.theme.Error.Render(fmt.Sprintf("%s Invalid JSON at line %d, column %d", theme.IconError, res.Error.Line, res.Error.Column)) +
		"\n" + m.theme.Muted.Render(res.Error.Message)
}

func (m Model) renderStatus() string {
	if m.searching {
		mode := "literal"
		if m.regex {
			mode = "regex"
		}
		return m.input.View() + "  " + m.theme.Muted.Render("["+mode+"] "+m.session.Cursor().String())
	}
	if m.status != "" {
		return m.theme.Warning.Render(m.status)
	}

	text, regex := m.session.Search()
	if text == "" {
		return m.theme.Muted.Render(fmt.Sprintf("%d rows", len(m.rows)))
	}
	status := "/" + text + "  " + m.session.Cursor().String()
	switch {
	case regex && !m.session.RegexActive():
		status += "  (invalid regex, matching literally)"
	case regex:
		status += "  (regex)"
	}
	return m.theme.Muted.Render(status)
}
