package tree

import "strings"

// Path is the ordered sequence of keys (or stringified array indices) from
// the root to a node. The root's path is empty.
type Path []string

// ParsePath splits a slash-separated path. The empty string is the root.
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "/"))
}

// Equal compares two paths segment by segment.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && p[:len(prefix)].Equal(prefix)
}

// Append returns a new path extended by seg. The receiver is never aliased.
func (p Path) Append(seg string) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Parent returns the path without its last segment. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p[:len(p)-1:len(p)-1]
}

// String joins the segments with "/".
func (p Path) String() string {
	return strings.Join(p, "/")
}

// JSONPath renders the path as "$" for the root or "$.a.b.0" otherwise.
func (p Path) JSONPath() string {
	if len(p) == 0 {
		return "$"
	}
	return "$." + strings.Join(p, ".")
}

func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
