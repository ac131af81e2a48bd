package node

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Key uniquely identifies a node within one tree instance.
type Key string

// NewKey returns a fresh unique node key (UUIDv7 string).
func NewKey() Key {
	return Key(uuid.Must(uuid.NewV7()).String())
}

// NavNode is the closed set of navigation tree variants: *Screen, *Stack,
// *Tabs and *Panes. The interface is sealed so every operation over trees can
// switch exhaustively on the four concrete types.
//
// Nodes are immutable after construction. All structural change happens in
// the mutate package, which builds new nodes along the root-to-target path
// and reuses every untouched subtree by reference.
type NavNode interface {
	// Key returns the node's unique key.
	Key() Key
	// ParentKey returns the key of the node's parent, or "" for a root.
	// It is a plain back-reference for lookup only; traversal is always
	// root-to-leaf.
	ParentKey() Key

	navNode()
}

// Screen is a terminal, renderable destination.
type Screen struct {
	key         Key
	parentKey   Key
	destination Destination
}

// Stack is an ordered linear history of child nodes. The last child is the
// active one. A stack may be empty only transiently, between a pop and the
// cascade or policy decision that follows it.
type Stack struct {
	key       Key
	parentKey Key
	children  []NavNode
}

// Tabs holds N parallel stacks with independent, preserved history, plus the
// index of the currently active stack.
type Tabs struct {
	key         Key
	parentKey   Key
	stacks      []*Stack
	activeIndex int
}

// Panes holds role-keyed simultaneous regions. The Primary role is always
// present and the active role always resolves to a configured entry.
type Panes struct {
	key        Key
	parentKey  Key
	panes      map[PaneRole]PaneConfiguration
	activeRole PaneRole
}

func (*Screen) navNode() {}
func (*Stack) navNode()  {}
func (*Tabs) navNode()   {}
func (*Panes) navNode()  {}

func (s *Screen) Key() Key { return s.key }
func (s *Stack) Key() Key  { return s.key }
func (t *Tabs) Key() Key   { return t.key }
func (p *Panes) Key() Key  { return p.key }

func (s *Screen) ParentKey() Key { return s.parentKey }
func (s *Stack) ParentKey() Key  { return s.parentKey }
func (t *Tabs) ParentKey() Key   { return t.parentKey }
func (p *Panes) ParentKey() Key  { return p.parentKey }

// NewScreen creates a Screen with a fresh key and no parent back-reference.
func NewScreen(destination Destination) (*Screen, error) {
	return NewScreenWithKey(NewKey(), "", destination)
}

// NewScreenWithKey creates a Screen with explicit keys. Used by the codec and
// by mutators that know the enclosing container at creation time.
func NewScreenWithKey(key, parentKey Key, destination Destination) (*Screen, error) {
	if destination == nil {
		return nil, ErrNilDestination
	}
	return &Screen{key: key, parentKey: parentKey, destination: destination}, nil
}

// Destination returns the opaque destination value this screen renders.
func (s *Screen) Destination() Destination {
	return s.destination
}

// NewStack creates a Stack with a fresh key holding the given children in
// order. An empty stack is legal at construction; containers that forbid it
// enforce that themselves.
func NewStack(children ...NavNode) (*Stack, error) {
	return NewStackWithKey(NewKey(), "", children...)
}

// NewStackWithKey creates a Stack with explicit keys.
func NewStackWithKey(key, parentKey Key, children ...NavNode) (*Stack, error) {
	for i, child := range children {
		if child == nil {
			return nil, fmt.Errorf("%w: child %d", ErrNilChild, i)
		}
	}
	return &Stack{key: key, parentKey: parentKey, children: slices.Clone(children)}, nil
}

// Children returns the stack's children in order. The slice is a defensive
// copy; the nodes inside are shared references.
func (s *Stack) Children() []NavNode {
	return slices.Clone(s.children)
}

// Len returns the number of children.
func (s *Stack) Len() int {
	return len(s.children)
}

// Top returns the active (last) child, or nil if the stack is empty.
func (s *Stack) Top() NavNode {
	if len(s.children) == 0 {
		return nil
	}
	return s.children[len(s.children)-1]
}

// WithChildren derives a new Stack that keeps this stack's keys but holds the
// given children. The receiver is not modified.
func (s *Stack) WithChildren(children ...NavNode) (*Stack, error) {
	return NewStackWithKey(s.key, s.parentKey, children...)
}

// NewTabs creates a Tabs container with a fresh key. At least one stack is
// required and activeIndex must be in bounds.
func NewTabs(activeIndex int, stacks ...*Stack) (*Tabs, error) {
	return NewTabsWithKey(NewKey(), "", activeIndex, stacks...)
}

// NewTabsWithKey creates a Tabs container with explicit keys.
func NewTabsWithKey(key, parentKey Key, activeIndex int, stacks ...*Stack) (*Tabs, error) {
	if len(stacks) == 0 {
		return nil, ErrNoStacks
	}
	for i, stack := range stacks {
		if stack == nil {
			return nil, fmt.Errorf("%w: stack %d", ErrNilChild, i)
		}
	}
	if activeIndex < 0 || activeIndex >= len(stacks) {
		return nil, fmt.Errorf("%w: index %d of %d stacks", ErrIndexOutOfRange, activeIndex, len(stacks))
	}
	return &Tabs{key: key, parentKey: parentKey, stacks: slices.Clone(stacks), activeIndex: activeIndex}, nil
}

// Stacks returns the parallel stacks in order. The slice is a defensive copy;
// the stacks inside are shared references.
func (t *Tabs) Stacks() []*Stack {
	return slices.Clone(t.stacks)
}

// ActiveIndex returns the index of the currently active stack.
func (t *Tabs) ActiveIndex() int {
	return t.activeIndex
}

// ActiveStack returns the currently active stack.
func (t *Tabs) ActiveStack() *Stack {
	return t.stacks[t.activeIndex]
}

// WithActiveIndex derives a new Tabs with the same stacks and a different
// active index. Every stack, including the previously active one, is reused
// by reference, so switching tabs preserves per-tab history untouched.
func (t *Tabs) WithActiveIndex(index int) (*Tabs, error) {
	return NewTabsWithKey(t.key, t.parentKey, index, t.stacks...)
}

// WithStacks derives a new Tabs that keeps this container's keys and active
// index but holds the given stacks.
func (t *Tabs) WithStacks(stacks ...*Stack) (*Tabs, error) {
	return NewTabsWithKey(t.key, t.parentKey, t.activeIndex, stacks...)
}

// NewPanes creates a Panes container with a fresh key. The Primary role must
// be configured and activeRole must resolve to a configured entry.
func NewPanes(activeRole PaneRole, panes map[PaneRole]PaneConfiguration) (*Panes, error) {
	return NewPanesWithKey(NewKey(), "", activeRole, panes)
}

// NewPanesWithKey creates a Panes container with explicit keys.
func NewPanesWithKey(key, parentKey Key, activeRole PaneRole, panes map[PaneRole]PaneConfiguration) (*Panes, error) {
	if _, ok := panes[RolePrimary]; !ok {
		return nil, ErrMissingPrimary
	}
	for role, cfg := range panes {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
		}
		if !cfg.Strategy.Valid() {
			return nil, fmt.Errorf("%w: %q for role %q", ErrInvalidStrategy, cfg.Strategy, role)
		}
		if cfg.Content == nil {
			return nil, fmt.Errorf("%w: role %q", ErrNilChild, role)
		}
	}
	if _, ok := panes[activeRole]; !ok {
		return nil, fmt.Errorf("%w: active role %q", ErrRoleNotConfigured, activeRole)
	}

	copied := make(map[PaneRole]PaneConfiguration, len(panes))
	for role, cfg := range panes {
		copied[role] = cfg
	}
	return &Panes{key: key, parentKey: parentKey, panes: copied, activeRole: activeRole}, nil
}

// Roles returns the configured roles in deterministic order
// (Primary, Supporting, Extra).
func (p *Panes) Roles() []PaneRole {
	roles := make([]PaneRole, 0, len(p.panes))
	for _, role := range roleOrder {
		if _, ok := p.panes[role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// Configuration returns the configuration for a role and whether it exists.
func (p *Panes) Configuration(role PaneRole) (PaneConfiguration, bool) {
	cfg, ok := p.panes[role]
	return cfg, ok
}

// ActiveRole returns the currently focused role.
func (p *Panes) ActiveRole() PaneRole {
	return p.activeRole
}

// ActiveConfiguration returns the configuration of the focused role.
func (p *Panes) ActiveConfiguration() PaneConfiguration {
	return p.panes[p.activeRole]
}

// WithActiveRole derives a new Panes with the same configurations and a
// different focused role.
func (p *Panes) WithActiveRole(role PaneRole) (*Panes, error) {
	return NewPanesWithKey(p.key, p.parentKey, role, p.panes)
}

// WithConfiguration derives a new Panes with one role's configuration added
// or replaced.
func (p *Panes) WithConfiguration(role PaneRole, cfg PaneConfiguration) (*Panes, error) {
	copied := make(map[PaneRole]PaneConfiguration, len(p.panes)+1)
	for r, c := range p.panes {
		copied[r] = c
	}
	copied[role] = cfg
	return NewPanesWithKey(p.key, p.parentKey, p.activeRole, copied)
}

// WithoutConfiguration derives a new Panes with one role removed. Removing
// Primary is disallowed. If the removed role was active, focus falls back to
// the first remaining configured role in deterministic order.
func (p *Panes) WithoutConfiguration(role PaneRole) (*Panes, error) {
	if role == RolePrimary {
		return nil, ErrPrimaryRequired
	}
	if _, ok := p.panes[role]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoleNotConfigured, role)
	}

	copied := make(map[PaneRole]PaneConfiguration, len(p.panes)-1)
	for r, c := range p.panes {
		if r != role {
			copied[r] = c
		}
	}

	active := p.activeRole
	if active == role {
		for _, r := range roleOrder {
			if _, ok := copied[r]; ok {
				active = r
				break
			}
		}
	}
	return NewPanesWithKey(p.key, p.parentKey, active, copied)
}
