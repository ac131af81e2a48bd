package mutate

import (
	"fmt"

	"github.com/waypost/navtree/node"
)

// PopBehavior decides what happens when a pop would leave the active stack
// empty.
type PopBehavior int

const (
	// PreserveEmpty refuses the pop with ErrCannotPop.
	PreserveEmpty PopBehavior = iota
	// Cascade removes the now-empty stack from its parent, but only when
	// the parent is itself a Stack. Cascading across a Tabs or Panes
	// boundary fails with ErrIllegalCascade.
	Cascade
)

// Push appends a new screen for destination onto the active stack. Fails with
// ErrNoActiveStack when the active path holds no stack to push onto.
func Push(tree node.NavNode, destination node.Destination) (node.NavNode, error) {
	stack, ok := node.ActiveStack(tree)
	if !ok {
		return tree, ErrNoActiveStack
	}
	return pushOnto(tree, stack, destination)
}

// PushToStack appends a new screen onto the stack with the given key instead
// of the implicit active one.
func PushToStack(tree node.NavNode, stackKey node.Key, destination node.Destination) (node.NavNode, error) {
	target, ok := node.FindByKey(tree, stackKey)
	if !ok {
		return tree, fmt.Errorf("%w: %s", ErrNodeNotFound, stackKey)
	}
	stack, ok := target.(*node.Stack)
	if !ok {
		return tree, fmt.Errorf("%w: %s is %T, want stack", ErrTypeMismatch, stackKey, target)
	}
	return pushOnto(tree, stack, destination)
}

func pushOnto(tree node.NavNode, stack *node.Stack, destination node.Destination) (node.NavNode, error) {
	screen, err := node.NewScreenWithKey(node.NewKey(), stack.Key(), destination)
	if err != nil {
		return tree, err
	}
	rebuilt, err := stack.WithChildren(append(stack.Children(), screen)...)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, stack.Key(), rebuilt)
}

// Pop drops the active stack's top entry. When the stack holds a single
// entry, behavior decides between refusing (PreserveEmpty) and removing the
// emptied stack from its parent stack (Cascade).
func Pop(tree node.NavNode, behavior PopBehavior) (node.NavNode, error) {
	stack, ok := node.ActiveStack(tree)
	if !ok {
		return tree, ErrNoActiveStack
	}

	kids := stack.Children()
	if len(kids) > 1 {
		rebuilt, err := stack.WithChildren(kids[:len(kids)-1]...)
		if err != nil {
			return tree, err
		}
		return ReplaceNode(tree, stack.Key(), rebuilt)
	}

	switch behavior {
	case Cascade:
		parent, ok := node.ParentOf(tree, stack.Key())
		if !ok {
			return tree, ErrCannotPop
		}
		if _, isStack := parent.(*node.Stack); !isStack {
			return tree, fmt.Errorf("%w: parent of %s is %T", ErrIllegalCascade, stack.Key(), parent)
		}
		return RemoveNode(tree, stack.Key())
	default:
		return tree, ErrCannotPop
	}
}

// PopTo truncates the active stack down to the first entry, scanned from the
// top, that matches predicate. With inclusive set the matching entry is
// dropped as well. Returns the unchanged tree when nothing matches or the
// match is already on top; applying PopTo twice is therefore the same as
// applying it once.
func PopTo(tree node.NavNode, inclusive bool, predicate func(node.NavNode) bool) (node.NavNode, error) {
	stack, ok := node.ActiveStack(tree)
	if !ok {
		return tree, ErrNoActiveStack
	}

	kids := stack.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		if !predicate(kids[i]) {
			continue
		}
		keep := i + 1
		if inclusive {
			keep = i
		}
		if keep == len(kids) {
			return tree, nil
		}
		rebuilt, err := stack.WithChildren(kids[:keep]...)
		if err != nil {
			return tree, err
		}
		return ReplaceNode(tree, stack.Key(), rebuilt)
	}
	return tree, nil
}

// PopToRoute truncates the active stack down to the topmost screen whose
// destination carries the given route. The matching screen stays on top.
func PopToRoute(tree node.NavNode, route string) (node.NavNode, error) {
	return PopTo(tree, false, func(n node.NavNode) bool {
		screen, ok := n.(*node.Screen)
		return ok && screen.Destination().Route() == route
	})
}

// Replace swaps the active stack's top entry for a new screen in one
// transformation. With an empty active stack it degenerates to a plain push.
func Replace(tree node.NavNode, destination node.Destination) (node.NavNode, error) {
	stack, ok := node.ActiveStack(tree)
	if !ok {
		return tree, ErrNoActiveStack
	}

	screen, err := node.NewScreenWithKey(node.NewKey(), stack.Key(), destination)
	if err != nil {
		return tree, err
	}

	kids := stack.Children()
	if len(kids) > 0 {
		kids = kids[:len(kids)-1]
	}
	rebuilt, err := stack.WithChildren(append(kids, screen)...)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, stack.Key(), rebuilt)
}

// ClearAndPush resets the active stack to a single new screen, discarding its
// whole history.
func ClearAndPush(tree node.NavNode, destination node.Destination) (node.NavNode, error) {
	stack, ok := node.ActiveStack(tree)
	if !ok {
		return tree, ErrNoActiveStack
	}

	screen, err := node.NewScreenWithKey(node.NewKey(), stack.Key(), destination)
	if err != nil {
		return tree, err
	}
	rebuilt, err := stack.WithChildren(screen)
	if err != nil {
		return tree, err
	}
	return ReplaceNode(tree, stack.Key(), rebuilt)
}
