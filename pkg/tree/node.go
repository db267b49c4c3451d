package tree

import (
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// RootKey is the key carried by a tree's root node.
const RootKey = "root"

// Node is an immutable element of the tree. Obtain nodes from Build and the
// operations in this package; the zero Node is not useful.
type Node struct {
	key      string
	value    jsonvalue.Value
	path     Path
	children []*Node
	expanded bool
	visible  bool
	matches  bool
}

// Key is the property name or array index addressing this node from its parent.
func (n *Node) Key() string { return n.key }

// Value is the JSON value this node represents.
func (n *Node) Value() jsonvalue.Value { return n.value }

// Kind is the JSON type of Value.
func (n *Node) Kind() jsonvalue.Kind { return n.value.Kind() }

// Path returns a copy of the node's address.
func (n *Node) Path() Path { return n.path.clone() }

// Depth is the number of segments in the node's path.
func (n *Node) Depth() int { return len(n.path) }

// JSONPath renders the node's address in "$.a.b" form.
func (n *Node) JSONPath() string { return n.path.JSONPath() }

// HasChildren reports whether the node is an object or array. Empty
// containers have children, just zero of them.
func (n *Node) HasChildren() bool { return n.children != nil }

// Len is the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Expanded reports whether the node's children are meant to be shown.
func (n *Node) Expanded() bool { return n.expanded }

// Visible reports whether the node survives the active search filter.
func (n *Node) Visible() bool { return n.visible }

// MatchesFilter reports whether this node's own key or value matched the
// active search, independent of its descendants.
func (n *Node) MatchesFilter() bool { return n.matches }

func (n *Node) clone() *Node {
	c := *n
	return &c
}
