package mutate

import (
	"fmt"

	"github.com/waypost/navtree/node"
)

// PaneBackBehavior selects the back-navigation policy applied when the active
// pane's stack cannot pop any further.
type PaneBackBehavior int

const (
	// PopLatest applies no fallback: the back navigation fails.
	PopLatest PaneBackBehavior = iota
	// PopUntilScaffoldValueChange switches focus back to the Primary role.
	PopUntilScaffoldValueChange
	// PopUntilCurrentDestinationChange switches focus to another configured
	// role, in Primary/Supporting/Extra order.
	PopUntilCurrentDestinationChange
	// PopUntilContentChange pops from any configured role that still has
	// content to give up.
	PopUntilContentChange
)

// NavigateToPane pushes a new screen for destination into the named role of
// the deepest Panes container on the active path. The role's content subtree
// must be stack-shaped. With switchFocus set, focus also moves to that role.
func NavigateToPane(tree node.NavNode, role node.PaneRole, destination node.Destination, switchFocus bool) (node.NavNode, error) {
	panes, ok := activePanes(tree)
	if !ok {
		return tree, ErrNoActivePanes
	}
	cfg, ok := panes.Configuration(role)
	if !ok {
		return tree, fmt.Errorf("%w: %q", ErrRoleNotConfigured, role)
	}
	stack, ok := node.ActiveStack(cfg.Content)
	if !ok {
		return tree, fmt.Errorf("%w: role %q content is not stack-shaped", ErrTypeMismatch, role)
	}

	rebuilt, err := pushOnto(tree, stack, destination)
	if err != nil {
		return tree, err
	}
	if !switchFocus || panes.ActiveRole() == role {
		return rebuilt, nil
	}
	return switchPane(rebuilt, panes.Key(), role)
}

// SwitchActivePane moves focus to the named role of the deepest Panes
// container on the active path without navigating.
func SwitchActivePane(tree node.NavNode, role node.PaneRole) (node.NavNode, error) {
	panes, ok := activePanes(tree)
	if !ok {
		return tree, ErrNoActivePanes
	}
	if _, ok := panes.Configuration(role); !ok {
		return tree, fmt.Errorf("%w: %q", ErrRoleNotConfigured, role)
	}
	if panes.ActiveRole() == role {
		return tree, nil
	}
	return switchPane(tree, panes.Key(), role)
}

// PopPane pops the top entry of the named role's stack only, regardless of
// which role currently has focus. A role down to its last entry refuses with
// ErrCannotPop — pane stacks never cascade out of their container.
func PopPane(tree node.NavNode, role node.PaneRole) (node.NavNode, error) {
	panes, ok := activePanes(tree)
	if !ok {
		return tree, ErrNoActivePanes
	}
	cfg, ok := panes.Configuration(role)
	if !ok {
		return tree, fmt.Errorf("%w: %q", ErrRoleNotConfigured, role)
	}
	return popPaneStack(tree, cfg.Content)
}

// PopWithPaneBehavior performs back navigation inside the deepest Panes
// container on the active path. While the focused role's stack can still pop,
// it pops; once it cannot, behavior decides the fallback per the policy
// table.
func PopWithPaneBehavior(tree node.NavNode, behavior PaneBackBehavior) (node.NavNode, error) {
	panes, ok := activePanes(tree)
	if !ok {
		return tree, ErrNoActivePanes
	}

	active := panes.ActiveConfiguration()
	if stack, ok := node.ActiveStack(active.Content); ok && stack.Len() > 1 {
		return popPaneStack(tree, active.Content)
	}

	switch behavior {
	case PopUntilScaffoldValueChange:
		if panes.ActiveRole() == node.RolePrimary {
			return tree, ErrCannotPop
		}
		return switchPane(tree, panes.Key(), node.RolePrimary)

	case PopUntilCurrentDestinationChange:
		for _, role := range panes.Roles() {
			if role != panes.ActiveRole() {
				return switchPane(tree, panes.Key(), role)
			}
		}
		return tree, ErrCannotPop

	case PopUntilContentChange:
		for _, role := range panes.Roles() {
			cfg, _ := panes.Configuration(role)
			if stack, ok := node.ActiveStack(cfg.Content); ok && stack.Len() > 1 {
				return popPaneStack(tree, cfg.Content)
			}
		}
		return tree, ErrCannotPop

	default:
		return tree, ErrCannotPop
	}
}

// SetPaneConfiguration adds or replaces a role's configuration on the Panes
// container with the given key.
func SetPaneConfiguration(tree node.NavNode, panesKey node.Key, role node.PaneRole, cfg node.PaneConfiguration) (node.NavNode, error) {
	panes, err := findPanes(tree, panesKey)
	if err != nil {
		return tree, err
	}
	rebuilt, err := panes.WithConfiguration(role, cfg)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, panesKey, rebuilt)
}

// RemovePaneConfiguration removes a role from the Panes container with the
// given key. Removing Primary fails; removing the focused role moves focus to
// the first remaining configured role.
func RemovePaneConfiguration(tree node.NavNode, panesKey node.Key, role node.PaneRole) (node.NavNode, error) {
	panes, err := findPanes(tree, panesKey)
	if err != nil {
		return tree, err
	}
	rebuilt, err := panes.WithoutConfiguration(role)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, panesKey, rebuilt)
}

// activePanes returns the deepest Panes container on the active path.
func activePanes(tree node.NavNode) (*node.Panes, bool) {
	var panes *node.Panes
	for _, n := range activePath(tree) {
		if p, ok := n.(*node.Panes); ok {
			panes = p
		}
	}
	return panes, panes != nil
}

func findPanes(tree node.NavNode, key node.Key) (*node.Panes, error) {
	target, ok := node.FindByKey(tree, key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	panes, ok := target.(*node.Panes)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want panes", ErrTypeMismatch, key, target)
	}
	return panes, nil
}

func switchPane(tree node.NavNode, panesKey node.Key, role node.PaneRole) (node.NavNode, error) {
	panes, err := findPanes(tree, panesKey)
	if err != nil {
		return tree, err
	}
	rebuilt, err := panes.WithActiveRole(role)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, panesKey, rebuilt)
}

func popPaneStack(tree node.NavNode, content node.NavNode) (node.NavNode, error) {
	stack, ok := node.ActiveStack(content)
	if !ok {
		return tree, ErrCannotPop
	}
	kids := stack.Children()
	if len(kids) <= 1 {
		return tree, ErrCannotPop
	}
	rebuilt, err := stack.WithChildren(kids[:len(kids)-1]...)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, stack.Key(), rebuilt)
}
