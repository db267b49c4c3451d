package tree

import "fmt"

// MatchCursor tracks the current position within a list of matches.
// Movement wraps around at both ends.
type MatchCursor struct {
	matches []*Node
	index   int
}

// NewMatchCursor positions a cursor on the first match.
func NewMatchCursor(matches []*Node) *MatchCursor {
	return &MatchCursor{matches: matches}
}

// Len is the number of matches.
func (c *MatchCursor) Len() int { return len(c.matches) }

// Index is the zero-based position, or -1 with no matches.
func (c *MatchCursor) Index() int {
	if len(c.matches) == 0 {
		return -1
	}
	return c.index
}

// Current returns the match under the cursor, or nil.
func (c *MatchCursor) Current() *Node {
	if len(c.matches) == 0 {
		return nil
	}
	return c.matches[c.index]
}

// Next advances to the following match, wrapping to the first.
func (c *MatchCursor) Next() *Node {
	if len(c.matches) == 0 {
		return nil
	}
	c.index = (c.index + 1) % len(c.matches)
	return c.matches[c.index]
}

// Prev steps back to the previous match, wrapping to the last.
func (c *MatchCursor) Prev() *Node {
	if len(c.matches) == 0 {
		return nil
	}
	c.index = (c.index - 1 + len(c.matches)) % len(c.matches)
	return c.matches[c.index]
}

// Reset replaces the match list. The cursor stays on the match with the same
// path when there is one, otherwise it returns to the first.
func (c *MatchCursor) Reset(matches []*Node) {
	var current Path
	if n := c.Current(); n != nil {
		current = n.path
	}
	c.matches = matches
	c.index = 0
	if current != nil {
		c.Seek(current)
	}
}

// Seek moves to the match at path and reports whether it was found.
func (c *MatchCursor) Seek(path Path) bool {
	for i, n := range c.matches {
		if n.path.Equal(path) {
			c.index = i
			return true
		}
	}
	return false
}

// String renders the position as "3 of 17", or "No matches".
func (c *MatchCursor) String() string {
	if len(c.matches) == 0 {
		return "No matches"
	}
	return fmt.Sprintf("%d of %d", c.index+1, len(c.matches))
}
