package tree

import (
	"fmt"

	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

const (
	summaryMaxString = 50
	summaryKeep      = 47
)

// Summary is the one-line preview of a node shown beside its key: the
// container size for objects and arrays, the quoted value for strings
// (shortened past 50 characters) and the literal for everything else.
func Summary(n *Node) string {
	v := n.value
	switch v.Kind() {
	case jsonvalue.KindArray:
		return fmt.Sprintf("Array(%d)", v.Len())
	case jsonvalue.KindObject:
		return fmt.Sprintf("Object(%d)", v.Len())
	case jsonvalue.KindString:
		s := []rune(v.Str())
		if len(s) > summaryMaxString {
			return `"` + string(s[:summaryKeep]) + `..."`
		}
		return `"` + string(s) + `"`
	default:
		return jsonvalue.Coerce(v)
	}
}
