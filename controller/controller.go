package controller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/node"
	"github.com/waypost/navtree/observability"
)

// Snapshot is one published version of the navigation tree. Snapshots are
// immutable and freely shareable; subscribers only ever receive read-only
// references.
type Snapshot struct {
	Root      node.NavNode
	Version   uint64
	Timestamp time.Time
}

// Controller owns the current navigation tree as a single mutable cell with
// publish-latest, replay-to-new-subscribers semantics. All mutation flows
// through Apply under a single-writer mutex; reads go through an atomic
// pointer and never contend with writers.
type Controller struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Snapshot]

	subsMu     sync.RWMutex
	subs       map[node.Key]chan *Snapshot
	bufferSize int

	observer observability.Observer
}

// New creates a Controller around an initial tree, resolving the observer by
// name from the observability registry. The tree is validated before the
// first snapshot is published.
func New(cfg Config, root node.NavNode) (*Controller, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}
	return NewWithObserver(cfg, root, observer)
}

// NewWithObserver creates a Controller with an injected observer, bypassing
// the registry.
func NewWithObserver(cfg Config, root node.NavNode, observer observability.Observer) (*Controller, error) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	if err := node.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid initial tree: %w", err)
	}

	bufferSize := cfg.SubscriberBuffer
	if bufferSize <= 0 {
		bufferSize = defaultSubscriberBuffer
	}

	c := &Controller{
		subs:       make(map[node.Key]chan *Snapshot),
		bufferSize: bufferSize,
		observer:   observer,
	}
	snap := &Snapshot{Root: root, Version: 1, Timestamp: time.Now()}
	c.current.Store(snap)

	observer.OnEvent(context.Background(), observability.Event{
		Type:      EventCreate,
		Level:     observability.LevelInfo,
		Timestamp: snap.Timestamp,
		Source:    "controller",
		Data:      map[string]any{"root": string(root.Key())},
	})
	return c, nil
}

// Current returns the latest published snapshot.
func (c *Controller) Current() *Snapshot {
	return c.current.Load()
}

// Apply runs a tree transformation against the latest snapshot and, on
// success, atomically publishes the result. Writers are serialized, so fn
// always sees the newest tree: a programmatic navigation can never silently
// overwrite an intervening gesture commit. A transformation that returns the
// same root is a no-op: nothing is published and nil is returned.
//
// This is the single mutation entry point; no external component may publish
// a root directly.
func (c *Controller) Apply(fn func(node.NavNode) (node.NavNode, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.current.Load()
	newRoot, err := fn(snap.Root)
	if err != nil {
		c.observer.OnEvent(context.Background(), observability.Event{
			Type:      EventRefused,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "controller",
			Data:      map[string]any{"version": snap.Version, "reason": err.Error()},
		})
		return err
	}
	if newRoot == snap.Root {
		return nil
	}

	next := &Snapshot{Root: newRoot, Version: snap.Version + 1, Timestamp: time.Now()}
	c.current.Store(next)
	c.publish(next)

	c.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventApply,
		Level:     observability.LevelVerbose,
		Timestamp: next.Timestamp,
		Source:    "controller",
		Data:      map[string]any{"version": next.Version},
	})
	return nil
}

// Navigate pushes a new screen for destination onto the active stack.
func (c *Controller) Navigate(destination node.Destination) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Push(tree, destination)
	})
}

// NavigateBack pops the active stack, preserving a last remaining entry.
// Returns mutate.ErrCannotPop when there is no history to go back through.
func (c *Controller) NavigateBack() error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Pop(tree, mutate.PreserveEmpty)
	})
}

// NavigateAndReplace swaps the active stack's top screen for destination.
func (c *Controller) NavigateAndReplace(destination node.Destination) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Replace(tree, destination)
	})
}

// NavigateAndClearAll resets the active stack to a single screen for
// destination, discarding its history.
func (c *Controller) NavigateAndClearAll(destination node.Destination) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.ClearAndPush(tree, destination)
	})
}

// SwitchTab changes the active index of an explicit Tabs container.
func (c *Controller) SwitchTab(tabsKey node.Key, index int) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchTab(tree, tabsKey, index)
	})
}

// SwitchActiveTab changes the active index of the deepest Tabs container on
// the active path.
func (c *Controller) SwitchActiveTab(index int) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchActiveTab(tree, index)
	})
}

// NavigateToPane pushes destination into the named pane role, optionally
// moving focus there.
func (c *Controller) NavigateToPane(role node.PaneRole, destination node.Destination, switchFocus bool) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.NavigateToPane(tree, role, destination, switchFocus)
	})
}

// SwitchPane moves focus to the named pane role without navigating.
func (c *Controller) SwitchPane(role node.PaneRole) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchActivePane(tree, role)
	})
}

// PopPane pops the named pane role's own stack.
func (c *Controller) PopPane(role node.PaneRole) error {
	return c.Apply(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.PopPane(tree, role)
	})
}

// CurrentDestination returns the destination of the active leaf screen.
func (c *Controller) CurrentDestination() (node.Destination, bool) {
	screen, ok := node.ActiveLeaf(c.current.Load().Root)
	if !ok {
		return nil, false
	}
	return screen.Destination(), true
}

// PreviousDestination returns the destination the user would land on after a
// plain back navigation: the leaf under the active stack's second-from-top
// entry.
func (c *Controller) PreviousDestination() (node.Destination, bool) {
	stack, ok := node.ActiveStack(c.current.Load().Root)
	if !ok || stack.Len() < 2 {
		return nil, false
	}
	kids := stack.Children()
	screen, ok := node.ActiveLeaf(kids[len(kids)-2])
	if !ok {
		return nil, false
	}
	return screen.Destination(), true
}

// CanGoBack reports whether any stack on the active path still has history
// to pop.
func (c *Controller) CanGoBack() bool {
	tree := c.current.Load().Root
	for tree != nil {
		switch v := tree.(type) {
		case *node.Screen:
			return false
		case *node.Stack:
			if v.Len() > 1 {
				return true
			}
			tree = v.Top()
		case *node.Tabs:
			tree = v.ActiveStack()
		case *node.Panes:
			tree = v.ActiveConfiguration().Content
		default:
			return false
		}
	}
	return false
}
