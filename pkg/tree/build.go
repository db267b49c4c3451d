package tree

import (
	"strconv"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// Build converts a parsed JSON value into a tree rooted at the empty path.
//
// Nodes whose path has fewer than two segments (the root and its direct
// children) start expanded; everything deeper starts collapsed. All nodes
// start visible and unmatched.
func Build(v jsonvalue.Value) *Node {
	return BuildAt(v, nil)
}

// BuildAt builds a tree whose root sits at path. The root's key is the last
// path segment, or RootKey for the empty path.
func BuildAt(v jsonvalue.Value, path Path) *Node {
	return build(v, path.clone())
}

func build(v jsonvalue.Value, path Path) *Node {
	key := RootKey
	if len(path) > 0 {
		key = path[len(path)-1]
	}

	n := &Node{
		key:      key,
		value:    v,
		path:     path,
		expanded: len(path) < 2,
		visible:  true,
	}

	switch v.Kind() {
	case jsonvalue.KindArray:
		n.children = make([]*Node, v.Len())
		for i := 0; i < v.Len(); i++ {
			n.children[i] = build(v.Item(i), path.Append(strconv.Itoa(i)))
		}
	case jsonvalue.KindObject:
		n.children = make([]*Node, v.Len())
		for i := 0; i < v.Len(); i++ {
			m := v.MemberAt(i)
			n.children[i] = build(m.Value, path.Append(m.Key))
		}
	}

	return n
}
