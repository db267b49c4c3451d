package jsontree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
	"github.com/grovetools/jsonview/pkg/tree"
	"github.com/grovetools/jsonview/tui/theme"
)

func TestRender(t *testing.T) {
	root := tree.Build(jsonvalue.MustParse(doc))
	lines := strings.Split(Render(theme.New(config.ThemeDark), root), "\n")
	require.Len(t, lines, 6)

	assert.Contains(t, lines[0], "root: Object(2)")
	assert.Contains(t, lines[1], "a: Object(1)")
	assert.True(t, strings.HasPrefix(lines[1], "  "), "children are indented")
	assert.Contains(t, lines[2], "b: 1")
	assert.Contains(t, lines[3], "c: Array(2)")
	assert.Contains(t, lines[4], "0: 1")
}

func TestRenderHidesFilteredRows(t *testing.T) {
	root := tree.Filter(tree.ExpandAll(tree.Build(jsonvalue.MustParse(doc))), "b", false)
	out := Render(theme.New(config.ThemeLight), root)
	assert.Contains(t, out, "b: 1")
	assert.NotContains(t, out, "c:")
}
