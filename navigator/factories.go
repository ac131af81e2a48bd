package navigator

import "github.com/waypost/navtree/node"

// RootFactory builds the initial navigation tree from a start destination.
// Factories are injected at construction rather than looked up in a global
// registry, so two navigators can carry entirely different layouts in one
// process.
type RootFactory func(start node.Destination) (node.NavNode, error)

// SingleStackRoot is the default factory: one stack holding one screen.
func SingleStackRoot(start node.Destination) (node.NavNode, error) {
	stackKey := node.NewKey()
	screen, err := node.NewScreenWithKey(node.NewKey(), stackKey, start)
	if err != nil {
		return nil, err
	}
	return node.NewStackWithKey(stackKey, "", screen)
}

// TabbedRoot returns a factory producing a Tabs container with one stack per
// destination; the start destination becomes the active tab's screen and the
// remaining destinations seed the other tabs.
func TabbedRoot(others ...node.Destination) RootFactory {
	return func(start node.Destination) (node.NavNode, error) {
		tabsKey := node.NewKey()
		stacks := make([]*node.Stack, 0, len(others)+1)

		for _, dest := range append([]node.Destination{start}, others...) {
			stackKey := node.NewKey()
			screen, err := node.NewScreenWithKey(node.NewKey(), stackKey, dest)
			if err != nil {
				return nil, err
			}
			stack, err := node.NewStackWithKey(stackKey, tabsKey, screen)
			if err != nil {
				return nil, err
			}
			stacks = append(stacks, stack)
		}
		return node.NewTabsWithKey(tabsKey, "", 0, stacks...)
	}
}

// PanedRoot returns a factory producing a Panes container whose Primary role
// holds a stack with the start destination. Additional roles are configured
// with their own single-screen stacks.
func PanedRoot(strategy node.AdaptStrategy, others map[node.PaneRole]node.Destination) RootFactory {
	return func(start node.Destination) (node.NavNode, error) {
		panesKey := node.NewKey()
		panes := make(map[node.PaneRole]node.PaneConfiguration, len(others)+1)

		build := func(dest node.Destination) (*node.Stack, error) {
			stackKey := node.NewKey()
			screen, err := node.NewScreenWithKey(node.NewKey(), stackKey, dest)
			if err != nil {
				return nil, err
			}
			return node.NewStackWithKey(stackKey, panesKey, screen)
		}

		primary, err := build(start)
		if err != nil {
			return nil, err
		}
		panes[node.RolePrimary] = node.PaneConfiguration{Content: primary, Strategy: strategy}

		for role, dest := range others {
			content, err := build(dest)
			if err != nil {
				return nil, err
			}
			panes[role] = node.PaneConfiguration{Content: content, Strategy: strategy}
		}
		return node.NewPanesWithKey(panesKey, "", node.RolePrimary, panes)
	}
}
