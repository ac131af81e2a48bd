package mutate

import (
	"fmt"

	"github.com/waypost/navtree/node"
)

// ReplaceNode returns a new tree with the node at key swapped for newNode.
// Only the chain of ancestors from root to the target is rebuilt; every other
// subtree is reused by reference. Replacing a Tabs slot with anything but a
// Stack fails with ErrTypeMismatch.
func ReplaceNode(tree node.NavNode, key node.Key, newNode node.NavNode) (node.NavNode, error) {
	if newNode == nil {
		return tree, fmt.Errorf("%w: replacement for %s is nil", ErrTypeMismatch, key)
	}
	if tree.Key() == key {
		return newNode, nil
	}

	rebuilt, changed, err := replaceIn(tree, key, newNode)
	if err != nil {
		return tree, err
	}
	if !changed {
		return tree, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	return rebuilt, nil
}

// RemoveNode returns a new tree with the node at key removed from its parent.
// Removing the last slot of a Tabs container, or the Primary role of a Panes
// container, cascades removal of the container itself; the active index/role
// is clamped when a sibling slot disappears. Removing the root (directly or
// through a cascade that consumes the whole tree) fails with ErrRemoveRoot.
func RemoveNode(tree node.NavNode, key node.Key) (node.NavNode, error) {
	if tree.Key() == key {
		return tree, ErrRemoveRoot
	}

	rebuilt, found, err := removeIn(tree, key)
	if err != nil {
		return tree, err
	}
	if !found {
		return tree, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	if rebuilt == nil {
		return tree, ErrRemoveRoot
	}
	return rebuilt, nil
}

// replaceIn performs the single depth-first descent every higher-level
// operation is built from. It returns the input node unchanged (same pointer)
// when the key is not in its subtree, and a rebuilt ancestor chain when it is.
func replaceIn(tree node.NavNode, key node.Key, newNode node.NavNode) (node.NavNode, bool, error) {
	switch v := tree.(type) {
	case *node.Screen:
		return tree, false, nil

	case *node.Stack:
		kids := v.Children()
		for i, child := range kids {
			if child.Key() == key {
				kids[i] = newNode
				rebuilt, err := v.WithChildren(kids...)
				return rebuilt, err == nil, err
			}
			inner, changed, err := replaceIn(child, key, newNode)
			if err != nil {
				return tree, false, err
			}
			if changed {
				kids[i] = inner
				rebuilt, err := v.WithChildren(kids...)
				return rebuilt, err == nil, err
			}
		}
		return tree, false, nil

	case *node.Tabs:
		stacks := v.Stacks()
		for i, stack := range stacks {
			if stack.Key() == key {
				replacement, ok := newNode.(*node.Stack)
				if !ok {
					return tree, false, fmt.Errorf("%w: tabs slot %s requires a stack, got %T", ErrTypeMismatch, key, newNode)
				}
				stacks[i] = replacement
				rebuilt, err := v.WithStacks(stacks...)
				return rebuilt, err == nil, err
			}
			inner, changed, err := replaceIn(stack, key, newNode)
			if err != nil {
				return tree, false, err
			}
			if changed {
				replacement, ok := inner.(*node.Stack)
				if !ok {
					return tree, false, fmt.Errorf("%w: tabs slot %s requires a stack, got %T", ErrTypeMismatch, stack.Key(), inner)
				}
				stacks[i] = replacement
				rebuilt, err := v.WithStacks(stacks...)
				return rebuilt, err == nil, err
			}
		}
		return tree, false, nil

	case *node.Panes:
		for _, role := range v.Roles() {
			cfg, _ := v.Configuration(role)
			if cfg.Content.Key() == key {
				rebuilt, err := v.WithConfiguration(role, node.PaneConfiguration{Content: newNode, Strategy: cfg.Strategy})
				return rebuilt, err == nil, err
			}
			inner, changed, err := replaceIn(cfg.Content, key, newNode)
			if err != nil {
				return tree, false, err
			}
			if changed {
				rebuilt, err := v.WithConfiguration(role, node.PaneConfiguration{Content: inner, Strategy: cfg.Strategy})
				return rebuilt, err == nil, err
			}
		}
		return tree, false, nil

	default:
		return tree, false, fmt.Errorf("%w: %T", ErrTypeMismatch, tree)
	}
}

// removeIn mirrors replaceIn for removal. A nil rebuilt node means the whole
// subtree cascaded away and the parent must drop its slot.
func removeIn(tree node.NavNode, key node.Key) (node.NavNode, bool, error) {
	switch v := tree.(type) {
	case *node.Screen:
		return tree, false, nil

	case *node.Stack:
		kids := v.Children()
		for i, child := range kids {
			var (
				inner node.NavNode
				found bool
				err   error
			)
			if child.Key() == key {
				inner, found = nil, true
			} else {
				inner, found, err = removeIn(child, key)
				if err != nil {
					return tree, false, err
				}
			}
			if !found {
				continue
			}
			if inner == nil {
				kids = append(kids[:i], kids[i+1:]...)
			} else {
				kids[i] = inner
			}
			rebuilt, err := v.WithChildren(kids...)
			return rebuilt, err == nil, err
		}
		return tree, false, nil

	case *node.Tabs:
		stacks := v.Stacks()
		for i, stack := range stacks {
			var (
				inner node.NavNode
				found bool
				err   error
			)
			if stack.Key() == key {
				inner, found = nil, true
			} else {
				inner, found, err = removeIn(stack, key)
				if err != nil {
					return tree, false, err
				}
			}
			if !found {
				continue
			}
			if inner == nil {
				if len(stacks) == 1 {
					return nil, true, nil
				}
				remaining := append(stacks[:i], stacks[i+1:]...)
				index := v.ActiveIndex()
				if i < index {
					index--
				} else if index >= len(remaining) {
					index = len(remaining) - 1
				}
				rebuilt, err := node.NewTabsWithKey(v.Key(), v.ParentKey(), index, remaining...)
				return rebuilt, err == nil, err
			}
			replacement, ok := inner.(*node.Stack)
			if !ok {
				return tree, false, fmt.Errorf("%w: tabs slot %s requires a stack, got %T", ErrTypeMismatch, stack.Key(), inner)
			}
			stacks[i] = replacement
			rebuilt, err := v.WithStacks(stacks...)
			return rebuilt, err == nil, err
		}
		return tree, false, nil

	case *node.Panes:
		for _, role := range v.Roles() {
			cfg, _ := v.Configuration(role)
			var (
				inner node.NavNode
				found bool
				err   error
			)
			if cfg.Content.Key() == key {
				inner, found = nil, true
			} else {
				inner, found, err = removeIn(cfg.Content, key)
				if err != nil {
					return tree, false, err
				}
			}
			if !found {
				continue
			}
			if inner == nil {
				if role == node.RolePrimary {
					return nil, true, nil
				}
				rebuilt, err := v.WithoutConfiguration(role)
				return rebuilt, err == nil, err
			}
			rebuilt, err := v.WithConfiguration(role, node.PaneConfiguration{Content: inner, Strategy: cfg.Strategy})
			return rebuilt, err == nil, err
		}
		return tree, false, nil

	default:
		return tree, false, fmt.Errorf("%w: %T", ErrTypeMismatch, tree)
	}
}

// activePath returns the nodes on the root-to-leaf active path in order.
func activePath(tree node.NavNode) []node.NavNode {
	var path []node.NavNode
	for tree != nil {
		path = append(path, tree)
		switch v := tree.(type) {
		case *node.Screen:
			tree = nil
		case *node.Stack:
			tree = v.Top()
		case *node.Tabs:
			tree = v.ActiveStack()
		case *node.Panes:
			tree = v.ActiveConfiguration().Content
		default:
			tree = nil
		}
	}
	return path
}
