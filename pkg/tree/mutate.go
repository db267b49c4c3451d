package tree

// Toggle flips the expansion state of the node at target. Only the nodes on
// the way from the root to target are copied; every other subtree is shared
// with root. A path that addresses no node returns root unchanged.
func Toggle(root *Node, target Path) *Node {
	if root == nil {
		return nil
	}
	return toggle(root, target)
}

func toggle(n *Node, target Path) *Node {
	depth := len(n.path)
	if depth > len(target) || !n.path.Equal(target[:depth]) {
		return n
	}
	if depth == len(target) {
		c := n.clone()
		c.expanded = !n.expanded
		return c
	}

	for i, child := range n.children {
		if child.key != target[depth] {
			continue
		}
		updated := toggle(child, target)
		if updated == child {
			return n
		}
		c := n.clone()
		c.children = append([]*Node(nil), n.children...)
		c.children[i] = updated
		return c
	}
	return n
}

// Reveal expands every strict ancestor of target so the node becomes
// reachable in a rendered view. The target's own state is left alone.
func Reveal(root *Node, target Path) *Node {
	if root == nil {
		return nil
	}
	return reveal(root, target)
}

func reveal(n *Node, target Path) *Node {
	depth := len(n.path)
	if depth >= len(target) || !n.path.Equal(target[:depth]) {
		return n
	}

	c := n
	for i, child := range n.children {
		if child.key != target[depth] {
			continue
		}
		updated := reveal(child, target)
		if updated != child {
			c = n.clone()
			c.children = append([]*Node(nil), n.children...)
			c.children[i] = updated
		}
		break
	}
	if c.expanded {
		return c
	}
	if c == n {
		c = n.clone()
	}
	c.expanded = true
	return c
}

// ExpandAll marks every node expanded, leaves included.
func ExpandAll(root *Node) *Node {
	return setExpanded(root, 0, func(int) bool { return true })
}

// CollapseAll marks every node collapsed, the root included.
func CollapseAll(root *Node) *Node {
	return setExpanded(root, 0, func(int) bool { return false })
}

// ExpandToLevel expands exactly the nodes whose depth below root is less
// than level and collapses the rest, discarding any manual toggles. Level 0
// collapses everything.
func ExpandToLevel(root *Node, level int) *Node {
	return setExpanded(root, 0, func(depth int) bool { return depth < level })
}

func setExpanded(n *Node, depth int, want func(depth int) bool) *Node {
	if n == nil {
		return nil
	}

	var next []*Node
	for i, child := range n.children {
		updated := setExpanded(child, depth+1, want)
		if updated != child && next == nil {
			next = append([]*Node(nil), n.children...)
		}
		if next != nil {
			next[i] = updated
		}
	}

	expanded := want(depth)
	if next == nil && n.expanded == expanded {
		return n
	}
	c := n.clone()
	c.expanded = expanded
	if next != nil {
		c.children = next
	}
	return c
}
