// Package tree turns a JSON value into an addressable tree of nodes and
// provides the pure operations a viewer needs on top of it: expansion
// changes, search filtering and match collection.
//
// Every operation returns a new tree and leaves its argument untouched.
// Subtrees an operation does not change are shared between the old and the
// new version, so holding on to an older root is always safe.
//
// Nodes are addressed by Path, the sequence of keys and array indices from
// the root. Paths stay meaningful across operations on the same tree, while
// *Node pointers do not survive a rebuild from source text.
package tree
