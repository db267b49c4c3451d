package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

func mustBuild(t *testing.T, src string) *Node {
	t.Helper()
	v, err := jsonvalue.ParseString(src)
	require.NoError(t, err)
	return Build(v)
}

func paths(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path().String())
	}
	return out
}

func TestBuild(t *testing.T) {
	root := mustBuild(t, `{"b": {"x": {"deep": true}}, "a": [10, "s"], "n": null}`)

	assert.Equal(t, RootKey, root.Key())
	assert.Empty(t, root.Path())
	assert.Equal(t, "$", root.JSONPath())
	assert.True(t, root.Expanded())
	assert.True(t, root.Visible())
	assert.False(t, root.MatchesFilter())

	require.Equal(t, 3, root.Len())
	assert.Equal(t, []string{"b", "a", "n"}, []string{root.Child(0).Key(), root.Child(1).Key(), root.Child(2).Key()})

	b := root.Child(0)
	assert.True(t, b.Expanded(), "depth 1 starts expanded")
	x := b.Child(0)
	assert.Equal(t, Path{"b", "x"}, x.Path())
	assert.False(t, x.Expanded(), "depth 2 starts collapsed")
	assert.Equal(t, "$.b.x.deep", x.Child(0).JSONPath())

	a := root.Child(1)
	assert.Equal(t, jsonvalue.KindArray, a.Kind())
	assert.Equal(t, "0", a.Child(0).Key())
	assert.Equal(t, Path{"a", "1"}, a.Child(1).Path())

	n := root.Child(2)
	assert.Equal(t, jsonvalue.KindNull, n.Kind())
	assert.False(t, n.HasChildren())
	assert.Nil(t, n.Children())
}

func TestBuildIndexKeysFirst(t *testing.T) {
	root := mustBuild(t, `{"b": 1, "1": 2, "a": {"10": true, "9": false}}`)

	assert.Equal(t, "1", root.Child(0).Key())
	assert.Equal(t, "b", root.Child(1).Key())
	assert.Equal(t, "a", root.Child(2).Key())
	assert.Equal(t, "9", root.Child(2).Child(0).Key())

	var got []string
	for _, n := range FindMatches(Filter(root, "1", false)) {
		got = append(got, n.Path().String())
	}
	assert.Equal(t, []string{"1", "b", "a/10"}, got)
}

func TestBuildScalarsAndEmptyContainers(t *testing.T) {
	tests := []struct {
		src         string
		kind        jsonvalue.Kind
		hasChildren bool
	}{
		{`42`, jsonvalue.KindNumber, false},
		{`"hi"`, jsonvalue.KindString, false},
		{`true`, jsonvalue.KindBoolean, false},
		{`null`, jsonvalue.KindNull, false},
		{`{}`, jsonvalue.KindObject, true},
		{`[]`, jsonvalue.KindArray, true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root := mustBuild(t, tt.src)
			assert.Equal(t, tt.kind, root.Kind())
			assert.Equal(t, tt.hasChildren, root.HasChildren())
			assert.Equal(t, 0, root.Len())
			assert.True(t, root.Expanded())
		})
	}
}

func TestBuildAt(t *testing.T) {
	root := BuildAt(jsonvalue.MustParse(`{"k": 1}`), Path{"outer", "inner"})
	assert.Equal(t, "inner", root.Key())
	assert.False(t, root.Expanded())
	assert.Equal(t, Path{"outer", "inner", "k"}, root.Child(0).Path())
}

func TestToggle(t *testing.T) {
	root := mustBuild(t, `{"a": {"b": {"c": 1}}, "z": [1]}`)

	t.Run("flips only the target", func(t *testing.T) {
		next := Toggle(root, Path{"a", "b"})
		assert.True(t, next.Child(0).Child(0).Expanded())
		assert.False(t, root.Child(0).Child(0).Expanded(), "input is not mutated")
		assert.True(t, next.Child(0).Expanded())
	})

	t.Run("twice restores", func(t *testing.T) {
		next := Toggle(Toggle(root, Path{"a"}), Path{"a"})
		assert.Equal(t, root.Child(0).Expanded(), next.Child(0).Expanded())
	})

	t.Run("root", func(t *testing.T) {
		assert.False(t, Toggle(root, Path{}).Expanded())
	})

	t.Run("unmatched path is a no-op", func(t *testing.T) {
		assert.Same(t, root, Toggle(root, Path{"missing"}))
		assert.Same(t, root, Toggle(root, Path{"a", "b", "c", "d"}))
	})

	t.Run("shares untouched subtrees", func(t *testing.T) {
		next := Toggle(root, Path{"a", "b"})
		assert.Same(t, root.Child(1), next.Child(1))
		assert.NotSame(t, root.Child(0), next.Child(0))
	})
}

func TestReveal(t *testing.T) {
	root := CollapseAll(mustBuild(t, `{"a": {"b": {"c": 1}}}`))
	next := Reveal(root, Path{"a", "b", "c"})

	assert.True(t, next.Expanded())
	assert.True(t, next.Child(0).Expanded())
	assert.True(t, next.Child(0).Child(0).Expanded())
	assert.False(t, next.Child(0).Child(0).Child(0).Expanded())
}

func TestExpandCollapse(t *testing.T) {
	root := mustBuild(t, `{"a": {"b": {"c": [1, 2]}}}`)

	all := ExpandAll(root)
	Walk(all, func(n *Node) bool {
		assert.True(t, n.Expanded(), n.Path().String())
		return true
	})

	none := CollapseAll(root)
	Walk(none, func(n *Node) bool {
		assert.False(t, n.Expanded(), n.Path().String())
		return true
	})

	assert.Same(t, all, ExpandAll(all), "already expanded tree is returned as is")
}

func TestExpandToLevel(t *testing.T) {
	t.Run("array at level 1", func(t *testing.T) {
		root := ExpandToLevel(mustBuild(t, `[1, 2, 3]`), 1)
		assert.True(t, root.Expanded())
		for _, child := range root.Children() {
			assert.False(t, child.Expanded())
		}
	})

	t.Run("level 0 collapses everything", func(t *testing.T) {
		root := ExpandToLevel(mustBuild(t, `{"a": {"b": 1}}`), 0)
		Walk(root, func(n *Node) bool {
			assert.False(t, n.Expanded())
			return true
		})
	})

	t.Run("discards manual toggles", func(t *testing.T) {
		root := mustBuild(t, `{"a": {"b": {"c": 1}}}`)
		root = Toggle(root, Path{"a", "b"})
		root = ExpandToLevel(root, 2)
		assert.True(t, root.Child(0).Expanded())
		assert.False(t, root.Child(0).Child(0).Expanded())
	})
}

func TestOperationsLeaveInputUnchanged(t *testing.T) {
	ops := []struct {
		name string
		fn   func(*Node) *Node
	}{
		{"ExpandAll", ExpandAll},
		{"CollapseAll", CollapseAll},
		{"ExpandToLevel 0", func(n *Node) *Node { return ExpandToLevel(n, 0) }},
		{"ExpandToLevel 3", func(n *Node) *Node { return ExpandToLevel(n, 3) }},
		{"Toggle", func(n *Node) *Node { return Toggle(n, Path{"users", "0"}) }},
		{"Reveal", func(n *Node) *Node { return Reveal(n, Path{"users", "1", "tags", "0"}) }},
		{"Filter literal", func(n *Node) *Node { return Filter(n, "admin", false) }},
		{"Filter regex", func(n *Node) *Node { return Filter(n, "^b", true) }},
		{"Filter no match", func(n *Node) *Node { return Filter(n, "zzz", false) }},
		{"Filter empty", func(n *Node) *Node { return Filter(n, "", false) }},
	}

	inputs := map[string]*Node{
		"built":    mustBuild(t, `{"users": [{"name": "ann", "tags": ["admin"]}, {"name": "bob", "tags": ["dev", "ops"]}], "count": 2}`),
		"filtered": Filter(mustBuild(t, `{"users": [{"name": "ann", "tags": ["admin"]}, {"name": "bob", "tags": ["dev"]}]}`), "bob", false),
	}

	for inputName, root := range inputs {
		for _, op := range ops {
			t.Run(inputName+"/"+op.name, func(t *testing.T) {
				before := snapshot(root)
				op.fn(root)
				assert.Equal(t, before, snapshot(root))
			})
		}
	}
}

func TestFilter(t *testing.T) {
	t.Run("literal match keeps ancestors visible", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"a": {"b": 1, "c": "foobar"}}`), "foo", false)

		a := root.Child(0)
		assert.True(t, root.Visible())
		assert.True(t, a.Visible())
		assert.False(t, a.MatchesFilter())
		assert.False(t, a.Child(0).Visible())
		assert.True(t, a.Child(1).Visible())
		assert.True(t, a.Child(1).MatchesFilter())
		assert.Equal(t, []string{"a/c"}, paths(FindMatches(root)))
	})

	t.Run("case insensitive on keys and values", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"Name": "x", "other": "NAMESAKE", "z": 1}`), "name", false)
		assert.Equal(t, []string{"Name", "other"}, paths(FindMatches(root)))
		assert.False(t, root.Child(2).Visible())
	})

	t.Run("numbers and literals match their text", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"a": 1.5, "b": true, "c": null}`), "true", false)
		assert.Equal(t, []string{"b"}, paths(FindMatches(root)))

		root = Filter(mustBuild(t, `{"a": 1.5, "b": true, "c": null}`), "1.5", false)
		assert.Equal(t, []string{"a"}, paths(FindMatches(root)))
	})

	t.Run("containers match their shallow text", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"tags": ["alpha", "beta"]}`), "alpha,beta", false)
		assert.Equal(t, []string{"tags"}, paths(FindMatches(root)))

		root = Filter(mustBuild(t, `{"o": {"k": 1}}`), "object", false)
		assert.ElementsMatch(t, []string{"", "o"}, paths(FindMatches(root)))
	})

	t.Run("regex", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"id": 42, "name": "x", "code": 4}`), `^4\d$`, true)
		assert.Equal(t, []string{"id"}, paths(FindMatches(root)))

		root = Filter(mustBuild(t, `{"id": 42, "NAME": "x"}`), `^name$`, true)
		assert.Equal(t, []string{"NAME"}, paths(FindMatches(root)))
	})

	t.Run("malformed regex falls back to literal", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"a[": 1, "b": "("}`), "[", true)
		assert.Equal(t, []string{"", "a["}, paths(FindMatches(root)), "root text is [object Object]")

		root = Filter(mustBuild(t, `{"a[": 1, "b": "("}`), "(", true)
		assert.Equal(t, []string{"b"}, paths(FindMatches(root)))
	})

	t.Run("empty search clears flags", func(t *testing.T) {
		filtered := Filter(mustBuild(t, `{"a": {"b": 1}}`), "zzz", false)
		assert.False(t, filtered.Child(0).Visible())

		cleared := Filter(filtered, "", false)
		Walk(cleared, func(n *Node) bool {
			assert.True(t, n.Visible())
			assert.False(t, n.MatchesFilter())
			return true
		})
		assert.Empty(t, FindMatches(cleared))
	})

	t.Run("preserves expansion", func(t *testing.T) {
		root := Toggle(mustBuild(t, `{"a": {"b": {"c": 1}}}`), Path{"a", "b"})
		filtered := Filter(root, "c", false)
		assert.True(t, filtered.Child(0).Child(0).Expanded())
	})

	t.Run("no match hides everything", func(t *testing.T) {
		root := Filter(mustBuild(t, `{"a": 1}`), "nothing", false)
		assert.False(t, root.Visible())
		assert.Empty(t, FindMatches(root))
	})
}

func TestMatcher(t *testing.T) {
	assert.False(t, NewMatcher("", false).Active())
	assert.False(t, NewMatcher("", true).Match("anything", "anything"))

	m := NewMatcher("a+", true)
	assert.True(t, m.IsRegex())
	assert.True(t, m.Match("xaay", ""))

	lit := NewMatcher("a+", false)
	assert.False(t, lit.IsRegex())
	assert.False(t, lit.Match("xaay", ""))
	assert.True(t, lit.Match("", "A+B"))

	bad := NewMatcher("(", true)
	assert.True(t, bad.Active())
	assert.False(t, bad.IsRegex())
}

func TestFindMatchesOrder(t *testing.T) {
	root := Filter(mustBuild(t, `{"x": {"x1": {"x2": 0}}, "y": [{"x": 1}]}`), "x", false)
	assert.Equal(t, []string{"x", "x/x1", "x/x1/x2", "y/0/x"}, paths(FindMatches(root)))
}

func TestFind(t *testing.T) {
	root := mustBuild(t, `{"a": [{"b": 1}]}`)

	n := Find(root, Path{"a", "0", "b"})
	require.NotNil(t, n)
	assert.Equal(t, "b", n.Key())
	assert.Same(t, root, Find(root, Path{}))
	assert.Nil(t, Find(root, Path{"a", "1"}))
	assert.Nil(t, Find(root, ParsePath("nope")))
}

func TestVisible(t *testing.T) {
	root := mustBuild(t, `{"a": {"b": {"c": 1}}, "d": 2}`)
	assert.Equal(t, []string{"", "a", "a/b", "d"}, paths(Visible(root)))

	filtered := Filter(root, "d", false)
	assert.Equal(t, []string{"", "d"}, paths(Visible(filtered)))

	assert.Equal(t, []string{""}, paths(Visible(CollapseAll(root))))
}

func TestSelect(t *testing.T) {
	root := mustBuild(t, `{"users": [{"name": "a", "id": 1}, {"name": "b", "id": 2}], "meta": {"count": 2}}`)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{"single segment wildcard", []string{"users/*/name"}, []string{"users/0/name", "users/1/name"}},
		{"any depth", []string{"**/id"}, []string{"users/0/id", "users/1/id"}},
		{"outermost only", []string{"users", "users/0/name"}, []string{"users"}},
		{"exclusion", []string{"users/*", "!users/1"}, []string{"users/0"}},
		{"no match", []string{"missing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(root, tt.patterns...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(got))
		})
	}
}

func TestSummary(t *testing.T) {
	long := `"` + strings.Repeat("a", 60) + `"`
	root := mustBuild(t, `{"arr": [1, 2], "obj": {"k": 1}, "s": "hi", "n": 1e21, "b": false, "z": null, "long": `+long+`}`)

	assert.Equal(t, "Object(7)", Summary(root))
	assert.Equal(t, "Array(2)", Summary(root.Child(0)))
	assert.Equal(t, "Object(1)", Summary(root.Child(1)))
	assert.Equal(t, `"hi"`, Summary(root.Child(2)))
	assert.Equal(t, "1e+21", Summary(root.Child(3)))
	assert.Equal(t, "false", Summary(root.Child(4)))
	assert.Equal(t, "null", Summary(root.Child(5)))

	s := Summary(root.Child(6))
	assert.Len(t, s, 1+47+4)
	assert.Equal(t, `..."`, s[len(s)-4:])
}

func TestMatchCursor(t *testing.T) {
	root := Filter(mustBuild(t, `{"a1": 1, "b": 2, "a2": 3, "a3": 4}`), "a", false)
	c := NewMatchCursor(FindMatches(root))

	assert.Equal(t, "1 of 3", c.String())
	assert.Equal(t, "a2", c.Next().Key())
	assert.Equal(t, "a3", c.Next().Key())
	assert.Equal(t, "a1", c.Next().Key(), "wraps forward")
	assert.Equal(t, "a3", c.Prev().Key(), "wraps backward")
	assert.Equal(t, "3 of 3", c.String())

	narrowed := Filter(root, "a3", false)
	c.Reset(FindMatches(narrowed))
	assert.Equal(t, "1 of 1", c.String())
	assert.Equal(t, "a3", c.Current().Key())

	c.Reset(nil)
	assert.Equal(t, "No matches", c.String())
	assert.Equal(t, -1, c.Index())
	assert.Nil(t, c.Next())
	assert.Nil(t, c.Prev())
}

func TestPath(t *testing.T) {
	p := ParsePath("/a/b/0/")
	assert.Equal(t, Path{"a", "b", "0"}, p)
	assert.Equal(t, "a/b/0", p.String())
	assert.Equal(t, "$.a.b.0", p.JSONPath())
	assert.Equal(t, Path{"a", "b"}, p.Parent())
	assert.True(t, p.HasPrefix(Path{"a"}))
	assert.False(t, p.HasPrefix(Path{"b"}))
	assert.Equal(t, Path{}, ParsePath(""))

	base := Path{"a"}
	x := base.Append("x")
	y := base.Append("y")
	assert.Equal(t, Path{"a", "x"}, x)
	assert.Equal(t, Path{"a", "y"}, y)
}
