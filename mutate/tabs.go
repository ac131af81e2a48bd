package mutate

import (
	"fmt"

	"github.com/waypost/navtree/node"
)

// SwitchTab changes the active index of the Tabs container with the given
// key. Every stack, including the previously active one, is reused by
// reference, which is what gives tabs independent preserved history.
// Switching to the already-active index is a no-op.
func SwitchTab(tree node.NavNode, tabsKey node.Key, index int) (node.NavNode, error) {
	target, ok := node.FindByKey(tree, tabsKey)
	if !ok {
		return tree, fmt.Errorf("%w: %s", ErrNodeNotFound, tabsKey)
	}
	tabs, ok := target.(*node.Tabs)
	if !ok {
		return tree, fmt.Errorf("%w: %s is %T, want tabs", ErrTypeMismatch, tabsKey, target)
	}
	return switchTab(tree, tabs, index)
}

// SwitchActiveTab changes the active index of the deepest Tabs container on
// the active path. Fails with ErrNoActiveTabs when the active path crosses no
// tabs container.
func SwitchActiveTab(tree node.NavNode, index int) (node.NavNode, error) {
	var tabs *node.Tabs
	for _, n := range activePath(tree) {
		if t, ok := n.(*node.Tabs); ok {
			tabs = t
		}
	}
	if tabs == nil {
		return tree, ErrNoActiveTabs
	}
	return switchTab(tree, tabs, index)
}

func switchTab(tree node.NavNode, tabs *node.Tabs, index int) (node.NavNode, error) {
	if index < 0 || index >= len(tabs.Stacks()) {
		return tree, fmt.Errorf("%w: index %d of %d stacks", ErrIndexOutOfRange, index, len(tabs.Stacks()))
	}
	if index == tabs.ActiveIndex() {
		return tree, nil
	}
	rebuilt, err := tabs.WithActiveIndex(index)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, tabs.Key(), rebuilt)
}
