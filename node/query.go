package node

import "fmt"

// children returns a node's child nodes in deterministic order. Screens have
// none; Panes iterate in fixed role order so traversal is reproducible.
func children(n NavNode) []NavNode {
	switch v := n.(type) {
	case *Screen:
		return nil
	case *Stack:
		return v.children
	case *Tabs:
		kids := make([]NavNode, len(v.stacks))
		for i, stack := range v.stacks {
			kids[i] = stack
		}
		return kids
	case *Panes:
		kids := make([]NavNode, 0, len(v.panes))
		for _, role := range roleOrder {
			if cfg, ok := v.panes[role]; ok {
				kids = append(kids, cfg.Content)
			}
		}
		return kids
	default:
		return nil
	}
}

// FindByKey locates a node by key via depth-first search.
// Returns the node and true if found, nil and false otherwise.
func FindByKey(tree NavNode, key Key) (NavNode, bool) {
	if tree == nil {
		return nil, false
	}
	if tree.Key() == key {
		return tree, true
	}
	for _, child := range children(tree) {
		if found, ok := FindByKey(child, key); ok {
			return found, true
		}
	}
	return nil, false
}

// ParentOf returns the parent of the node with the given key, computed by a
// fresh depth-first search over the current snapshot. Stored parentKey fields
// are never consulted, so the answer cannot dangle across tree replacements.
// Returns nil and false if the key is the root or absent.
func ParentOf(tree NavNode, key Key) (NavNode, bool) {
	if tree == nil {
		return nil, false
	}
	for _, child := range children(tree) {
		if child.Key() == key {
			return tree, true
		}
		if parent, ok := ParentOf(child, key); ok {
			return parent, true
		}
	}
	return nil, false
}

// ActiveLeaf follows the active pointer at each container (Stack → last
// child, Tabs → active stack, Panes → active role's content) until a Screen
// is reached. Returns nil and false if the active path terminates without a
// screen, e.g. in an empty stack.
func ActiveLeaf(tree NavNode) (*Screen, bool) {
	for tree != nil {
		switch v := tree.(type) {
		case *Screen:
			return v, true
		case *Stack:
			tree = v.Top()
		case *Tabs:
			tree = v.ActiveStack()
		case *Panes:
			tree = v.ActiveConfiguration().Content
		default:
			return nil, false
		}
	}
	return nil, false
}

// ActiveStack walks the same active path as ActiveLeaf and returns the
// deepest Stack on it. This is the implicit target of every stack-scoped
// operation that does not name an explicit stack key. Returns nil and false
// if no stack lies on the active path.
func ActiveStack(tree NavNode) (*Stack, bool) {
	var deepest *Stack
	for tree != nil {
		switch v := tree.(type) {
		case *Screen:
			tree = nil
		case *Stack:
			deepest = v
			tree = v.Top()
		case *Tabs:
			tree = v.ActiveStack()
		case *Panes:
			tree = v.ActiveConfiguration().Content
		default:
			tree = nil
		}
	}
	return deepest, deepest != nil
}

// AllScreens collects every Screen in the tree regardless of activity, in
// depth-first order. Used by renderer-side lifecycle bookkeeping that must
// see inactive tab and pane content too.
func AllScreens(tree NavNode) []*Screen {
	var screens []*Screen
	walk(tree, func(n NavNode) {
		if s, ok := n.(*Screen); ok {
			screens = append(screens, s)
		}
	})
	return screens
}

// AllPaneNodes collects every Panes container in the tree in depth-first
// order.
func AllPaneNodes(tree NavNode) []*Panes {
	var panes []*Panes
	walk(tree, func(n NavNode) {
		if p, ok := n.(*Panes); ok {
			panes = append(panes, p)
		}
	})
	return panes
}

// Keys returns every key in the tree in depth-first order.
func Keys(tree NavNode) []Key {
	var keys []Key
	walk(tree, func(n NavNode) {
		keys = append(keys, n.Key())
	})
	return keys
}

func walk(tree NavNode, visit func(NavNode)) {
	if tree == nil {
		return
	}
	visit(tree)
	for _, child := range children(tree) {
		walk(child, visit)
	}
}

// Validate checks the whole tree: every key unique, every container invariant
// intact. Constructors already enforce the per-node invariants, so this is a
// boundary check for trees arriving from outside. The codec and the persist
// layer run it on every decode.
func Validate(tree NavNode) error {
	if tree == nil {
		return fmt.Errorf("%w: root", ErrNilChild)
	}

	seen := make(map[Key]struct{})
	var check func(n NavNode) error
	check = func(n NavNode) error {
		if _, dup := seen[n.Key()]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, n.Key())
		}
		seen[n.Key()] = struct{}{}

		switch v := n.(type) {
		case *Screen:
			if v.destination == nil {
				return fmt.Errorf("%w: screen %s", ErrNilDestination, v.key)
			}
		case *Stack:
		case *Tabs:
			if len(v.stacks) == 0 {
				return fmt.Errorf("%w: tabs %s", ErrNoStacks, v.key)
			}
			if v.activeIndex < 0 || v.activeIndex >= len(v.stacks) {
				return fmt.Errorf("%w: tabs %s index %d", ErrIndexOutOfRange, v.key, v.activeIndex)
			}
		case *Panes:
			if _, ok := v.panes[RolePrimary]; !ok {
				return fmt.Errorf("%w: panes %s", ErrMissingPrimary, v.key)
			}
			if _, ok := v.panes[v.activeRole]; !ok {
				return fmt.Errorf("%w: panes %s active role %q", ErrRoleNotConfigured, v.key, v.activeRole)
			}
		}

		for _, child := range children(n) {
			if err := check(child); err != nil {
				return err
			}
		}
		return nil
	}
	return check(tree)
}
