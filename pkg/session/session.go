// Package session holds the state a viewer keeps for one document: the
// source text, its validation result, the expandable tree and the current
// search. Every text change rebuilds the tree from scratch; structural
// operations replace it with the mutated copy.
package session

import (
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/tree"
)

// Session is not safe for concurrent use.
type Session struct {
	text       string
	validation format.Result
	root       *tree.Node

	search  string
	regex   bool
	matcher tree.Matcher

	view    *tree.Node
	matches []*tree.Node
	cursor  *tree.MatchCursor

	// initialLevel, when >= 0, replaces the builder's default expansion
	// every time the tree is rebuilt.
	initialLevel int
}

// Option configures a Session.
type Option func(*Session)

// WithInitialLevel expands rebuilt trees to level instead of the default
// policy. A negative level keeps the default.
func WithInitialLevel(level int) Option {
	return func(s *Session) { s.initialLevel = level }
}

// WithSearch starts the session with a search applied.
func WithSearch(text string, regex bool) Option {
	return func(s *Session) {
		s.search = text
		s.regex = regex
	}
}

// New creates an empty session. Empty text is valid and yields no tree.
func New(opts ...Option) *Session {
	s := &Session{initialLevel: -1, cursor: tree.NewMatchCursor(nil)}
	for _, opt := range opts {
		opt(s)
	}
	s.matcher = tree.NewMatcher(s.search, s.regex)
	s.SetText("")
	return s
}

// SetText replaces the document. Valid JSON rebuilds the tree with fresh
// expansion state; invalid JSON clears it and records the error. Blank text
// is valid and clears the tree.
func (s *Session) SetText(text string) {
	s.text = text
	s.validation = format.Validate(text)
	s.root = nil

	if s.validation.Valid && !isBlank(text) {
		s.root = tree.Build(s.validation.Value)
		if s.initialLevel >= 0 {
			s.root = tree.ExpandToLevel(s.root, s.initialLevel)
		}
	}
	s.refresh()
}

// Text is the current document text.
func (s *Session) Text() string { return s.text }

// Validation is the result of validating the current text.
func (s *Session) Validation() format.Result { return s.validation }

// Valid reports whether the current text parsed.
func (s *Session) Valid() bool { return s.validation.Valid }

// Root is the unfiltered tree, or nil when there is nothing to show.
func (s *Session) Root() *tree.Node { return s.root }

// Toggle flips the node at path.
func (s *Session) Toggle(path tree.Path) {
	s.apply(func(n *tree.Node) *tree.Node { return tree.Toggle(n, path) })
}

// Reveal expands the ancestors of path.
func (s *Session) Reveal(path tree.Path) {
	s.apply(func(n *tree.Node) *tree.Node { return tree.Reveal(n, path) })
}

// ExpandAll expands every node.
func (s *Session) ExpandAll() {
	s.apply(tree.ExpandAll)
}

// CollapseAll collapses every node.
func (s *Session) CollapseAll() {
	s.apply(tree.CollapseAll)
}

// ExpandToLevel expands nodes shallower than level.
func (s *Session) ExpandToLevel(level int) {
	s.apply(func(n *tree.Node) *tree.Node { return tree.ExpandToLevel(n, level) })
}

// SetSearch changes the query. An empty text clears the filter.
func (s *Session) SetSearch(text string, regex bool) {
	if text == s.search && regex == s.regex {
		return
	}
	s.search = text
	s.regex = regex
	s.matcher = tree.NewMatcher(text, regex)
	s.refresh()
}

// Search returns the current query.
func (s *Session) Search() (text string, regex bool) { return s.search, s.regex }

// RegexActive reports whether the query is being evaluated as a regular
// expression. It is false when regex was requested but did not compile.
func (s *Session) RegexActive() bool { return s.matcher.IsRegex() }

// View is the tree to render: the filtered tree while a search is active,
// the unfiltered one otherwise. Nil when there is no tree.
func (s *Session) View() *tree.Node { return s.view }

// Matches lists the nodes matching the search in pre-order.
func (s *Session) Matches() []*tree.Node { return s.matches }

// Cursor is the position within Matches.
func (s *Session) Cursor() *tree.MatchCursor { return s.cursor }

// NextMatch moves to the following match and reveals it.
func (s *Session) NextMatch() *tree.Node {
	return s.focus(s.cursor.Next())
}

// PrevMatch moves to the previous match and reveals it.
func (s *Session) PrevMatch() *tree.Node {
	return s.focus(s.cursor.Prev())
}

func (s *Session) focus(n *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}
	path := n.Path()
	s.Reveal(path)
	return tree.Find(s.view, path)
}

func (s *Session) apply(op func(*tree.Node) *tree.Node) {
	if s.root == nil {
		return
	}
	s.root = op(s.root)
	s.refresh()
}

// refresh recomputes the filtered view and the match list.
func (s *Session) refresh() {
	if s.root == nil {
		s.view = nil
		s.matches = nil
		s.cursor.Reset(nil)
		return
	}
	if !s.matcher.Active() {
		s.view = s.root
		s.matches = nil
		s.cursor.Reset(nil)
		return
	}
	s.view = tree.FilterWith(s.root, s.matcher)
	s.matches = tree.FindMatches(s.view)
	s.cursor.Reset(s.matches)
}

func isBlank(text string) bool {
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
