package tree

// FindMatches returns every node whose MatchesFilter is set, in pre-order
// (parents before children, children in source order).
func FindMatches(root *Node) []*Node {
	var matches []*Node
	Walk(root, func(n *Node) bool {
		if n.matches {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}

// Walk visits root and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for _, child := range root.children {
		Walk(child, fn)
	}
}

// Find returns the node addressed by path, or nil.
func Find(root *Node, path Path) *Node {
	n := root
	if n == nil || len(n.path) > len(path) || !n.path.Equal(path[:len(n.path)]) {
		return nil
	}
	for depth := len(n.path); depth < len(path); depth++ {
		var next *Node
		for _, child := range n.children {
			if child.key == path[depth] {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}

// Visible returns the nodes a display would draw, in order: visible nodes
// whose ancestors are all expanded.
func Visible(root *Node) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if !n.visible {
			return false
		}
		out = append(out, n)
		return n.expanded
	})
	return out
}
