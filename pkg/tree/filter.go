package tree

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// regexTimeout bounds a single regex evaluation; a pattern that runs away
// is treated like a malformed one.
const regexTimeout = 250 * time.Millisecond

// Matcher decides whether a node's key or text satisfies a search term.
// The zero Matcher is inactive and matches nothing.
type Matcher struct {
	search string
	needle string
	re     *regexp2.Regexp
}

// NewMatcher prepares a case-insensitive matcher. With isRegex set, search is
// compiled as an ECMAScript regular expression; a pattern that fails to
// compile silently degrades to a literal substring search.
func NewMatcher(search string, isRegex bool) Matcher {
	if search == "" {
		return Matcher{}
	}
	m := Matcher{search: search, needle: strings.ToLower(search)}
	if isRegex {
		if re, err := regexp2.Compile(search, regexp2.IgnoreCase|regexp2.ECMAScript); err == nil {
			re.MatchTimeout = regexTimeout
			m.re = re
		}
	}
	return m
}

// Active reports whether a search term is set.
func (m Matcher) Active() bool {
	return m.search != ""
}

// IsRegex reports whether the term compiled as a regular expression.
func (m Matcher) IsRegex() bool {
	return m.re != nil
}

// Match tests key and text.
func (m Matcher) Match(key, text string) bool {
	if !m.Active() {
		return false
	}
	if m.re != nil {
		keyMatch, keyErr := m.re.MatchString(key)
		textMatch, textErr := m.re.MatchString(text)
		if keyErr == nil && textErr == nil {
			return keyMatch || textMatch
		}
	}
	return strings.Contains(strings.ToLower(key), m.needle) ||
		strings.Contains(strings.ToLower(text), m.needle)
}

// MatchNode tests a node's key and the coerced text of its value.
func (m Matcher) MatchNode(n *Node) bool {
	if !m.Active() {
		return false
	}
	return m.Match(n.key, jsonvalue.Coerce(n.value))
}

// Filter annotates every node with whether it matches searchText and whether
// it should stay visible. A node is visible when it matches, when one of its
// descendants is visible, or when searchText is empty. Children are filtered
// before their parent and every node is visited.
//
// An empty searchText marks every node visible and unmatched; structure and
// expansion are left untouched.
func Filter(root *Node, searchText string, isRegex bool) *Node {
	return FilterWith(root, NewMatcher(searchText, isRegex))
}

// FilterWith is Filter with a prepared Matcher.
func FilterWith(root *Node, m Matcher) *Node {
	if root == nil {
		return nil
	}
	return filter(root, m)
}

func filter(n *Node, m Matcher) *Node {
	c := n.clone()
	c.matches = m.MatchNode(n)

	if n.children == nil {
		c.visible = c.matches || !m.Active()
		return c
	}

	c.children = make([]*Node, len(n.children))
	descendantVisible := false
	for i, child := range n.children {
		fc := filter(child, m)
		c.children[i] = fc
		if fc.visible {
			descendantVisible = true
		}
	}
	c.visible = c.matches || descendantVisible || !m.Active()
	return c
}
