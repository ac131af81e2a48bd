// Package mutate is the pure transformation library for navigation trees.
//
// Every function takes the current tree plus parameters and returns either a
// new tree, the unchanged tree (no-op), or the unchanged tree with a sentinel
// error — never a partial mutation and never an in-place change.
//
// # Structural sharing
//
// All operations bottom out in a single depth-first descent (ReplaceNode /
// RemoveNode) that rebuilds exactly the chain of ancestors from root to the
// target and returns every other subtree by reference. A caller holding the
// previous tree keeps a fully intact snapshot; a caller comparing the two
// trees sees pointer-identical siblings off the mutated path.
//
// # Cost
//
// Because only the ancestor chain is rebuilt, every operation is
// O(depth-of-active-path) in allocations, not O(tree-size). This is what
// keeps per-pointer-move gesture handling cheap at the controller layer.
//
// # Targets
//
// Operations without an explicit key act on the implicit target derived from
// the active path: the deepest Stack for push/pop, the deepest Tabs for
// SwitchActiveTab, the deepest Panes for the pane family.
package mutate
