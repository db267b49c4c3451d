package jsontree

import (
	"strings"

	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/theme"
)

// RenderRow renders one node as a single line: indentation, fold marker,
// key and summary. Matching keys are highlighted, the node at current more
// strongly. current may be nil.
func RenderRow(t *theme.Theme, n *tree.Node, current tree.Path) string {
	indent := strings.Repeat("  ", n.Depth())

	marker := "  "
	if n.HasChildren() {
		if n.Expanded() {
			marker = theme.IconExpanded + " "
		} else {
			marker = theme.IconCollapsed + " "
		}
	}

	keyStyle := t.Key
	if n.MatchesFilter() {
		keyStyle = t.Match
		if current != nil && n.Path().Equal(current) {
			keyStyle = t.CurrentMatch
		}
	}

	valueStyle := t.ValueStyle(n.Kind())
	if n.HasChildren() {
		valueStyle = t.Summary
	}

	return indent + t.Bracket.Render(marker) + keyStyle.Render(n.Key()) +
		t.Bracket.Render(": ") + valueStyle.Render(tree.Summary(n))
}

// Render renders every drawn row of root, one per line.
func Render(t *theme.Theme, root *tree.Node) string {
	rows := tree.Visible(root)
	lines := make([]string, len(rows))
	for i, n := range rows {
		lines[i] = RenderRow(t, n, nil)
	}
	return strings.Join(lines, "\n")
}
