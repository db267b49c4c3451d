package tree

import (
	"github.com/moby/patternmatcher"

	"github.com/grovetools/jsonview/errors"
)

// Select returns the outermost nodes whose slash-joined path matches one of
// patterns, in pre-order. Patterns follow .dockerignore rules: "*" stays
// within one segment, "**" spans any number of segments and a leading "!"
// excludes what an earlier pattern matched. The root is never selected.
//
// Keys containing "/" cannot be addressed segment by segment.
func Select(root *Node, patterns ...string) ([]*Node, error) {
	if root == nil || len(patterns) == 0 {
		return nil, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid select pattern").
			WithDetail("patterns", patterns)
	}

	var (
		selected []*Node
		walkErr  error
	)
	Walk(root, func(n *Node) bool {
		if walkErr != nil {
			return false
		}
		if len(n.path) == len(root.path) {
			return true
		}
		ok, err := pm.MatchesOrParentMatches(n.path[len(root.path):].String())
		if err != nil {
			walkErr = errors.Wrap(err, errors.ErrCodeInvalidInput, "select pattern failed")
			return false
		}
		if ok {
			selected = append(selected, n)
			return false
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return selected, nil
}
