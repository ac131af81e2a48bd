// Package navigator composes the navigation controller and the transition
// state machine behind the full command surface an application talks to.
//
// The navigator initializes from configuration via New, creating both
// subsystems internally. Functional options allow overrides of the root
// factory and observer.
//
//	nav, err := navigator.New(&cfg, HomeDestination{})
//	err = nav.Navigate(ProfileDestination{User: "alice"})
package navigator

import (
	"context"
	"errors"
	"fmt"

	"github.com/waypost/navtree/controller"
	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/node"
	"github.com/waypost/navtree/observability"
	"github.com/waypost/navtree/persist"
	"github.com/waypost/navtree/transition"
)

// Option configures a Navigator before config-driven initialization.
type Option func(*options)

type options struct {
	factory  RootFactory
	observer observability.Observer
}

// WithRootFactory overrides the default single-stack root factory.
func WithRootFactory(factory RootFactory) Option {
	return func(o *options) { o.factory = factory }
}

// WithObserver injects an observer into both subsystems, bypassing the
// observability registry names in the config.
func WithObserver(observer observability.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Navigator is the application-facing entry point: every navigation command,
// programmatic or gesture-driven, flows through here.
type Navigator struct {
	ctrl     *controller.Controller
	machine  *transition.Machine
	paneBack mutate.PaneBackBehavior
}

// New creates a Navigator from configuration. The root factory builds the
// initial tree from the start destination; controller and transition machine
// are initialized from their respective config sections.
func New(cfg *Config, start node.Destination, opts ...Option) (*Navigator, error) {
	o := options{factory: SingleStackRoot}
	for _, opt := range opts {
		opt(&o)
	}

	paneBack, err := paneBackBehavior(cfg.PaneBack)
	if err != nil {
		return nil, err
	}

	root, err := o.factory(start)
	if err != nil {
		return nil, fmt.Errorf("failed to build root tree: %w", err)
	}

	var ctrl *controller.Controller
	if o.observer != nil {
		ctrl, err = controller.NewWithObserver(cfg.Controller, root, o.observer)
	} else {
		ctrl, err = controller.New(cfg.Controller, root)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	var machine *transition.Machine
	if o.observer != nil {
		machine, err = transition.NewMachineWithObserver(cfg.Transition, ctrl, o.observer)
	} else {
		machine, err = transition.NewMachine(cfg.Transition, ctrl)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create transition machine: %w", err)
	}

	return &Navigator{ctrl: ctrl, machine: machine, paneBack: paneBack}, nil
}

// Navigate pushes a new screen for destination onto the active stack.
// Refused with transition.ErrTransitionActive while a transition is in
// flight.
func (n *Navigator) Navigate(destination node.Destination) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Push(tree, destination)
	})
}

// NavigateBack performs back navigation: pop the active stack, falling back
// to the configured pane policy when the focused pane has no more history.
func (n *Navigator) NavigateBack() error {
	return n.machine.Dispatch(n.backMutation)
}

// NavigateAndReplace swaps the active stack's top screen for destination.
func (n *Navigator) NavigateAndReplace(destination node.Destination) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Replace(tree, destination)
	})
}

// NavigateAndClearAll resets the active stack to a single screen for
// destination.
func (n *Navigator) NavigateAndClearAll(destination node.Destination) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.ClearAndPush(tree, destination)
	})
}

// SwitchTab changes the active index of the deepest Tabs container on the
// active path.
func (n *Navigator) SwitchTab(index int) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchActiveTab(tree, index)
	})
}

// SwitchTabIn changes the active index of an explicit Tabs container.
func (n *Navigator) SwitchTabIn(tabsKey node.Key, index int) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchTab(tree, tabsKey, index)
	})
}

// NavigateToPane pushes destination into the named pane role, optionally
// moving focus there.
func (n *Navigator) NavigateToPane(role node.PaneRole, destination node.Destination, switchFocus bool) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.NavigateToPane(tree, role, destination, switchFocus)
	})
}

// SwitchPane moves focus to the named pane role without navigating.
func (n *Navigator) SwitchPane(role node.PaneRole) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.SwitchActivePane(tree, role)
	})
}

// PopPane pops the named pane role's own stack.
func (n *Navigator) PopPane(role node.PaneRole) error {
	return n.machine.Dispatch(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.PopPane(tree, role)
	})
}

// StartGesture begins a predictive back gesture. The back mutation is staged
// but not applied; the published snapshot stays on the pre-mutation tree
// until CommitGesture.
func (n *Navigator) StartGesture() error {
	return n.machine.StartGestureWith(n.backMutation)
}

// UpdateGestureProgress records new gesture progress from the pointer stream.
func (n *Navigator) UpdateGestureProgress(progress float64) error {
	return n.machine.UpdateGesture(progress)
}

// CommitGesture applies the staged back navigation and returns to idle. The
// renderer calls this once the exit animation has concluded.
func (n *Navigator) CommitGesture() error {
	return n.machine.CommitGesture()
}

// CancelGesture discards the gesture with zero side effects.
func (n *Navigator) CancelGesture() error {
	return n.machine.CancelGesture()
}

// Snapshots returns the subscribable snapshot stream with replay-latest
// semantics.
func (n *Navigator) Snapshots() (<-chan *controller.Snapshot, func()) {
	return n.ctrl.Subscribe()
}

// Transitions returns the subscribable transition-state stream.
func (n *Navigator) Transitions() (<-chan transition.State, func()) {
	return n.machine.Subscribe()
}

// Current returns the latest published snapshot.
func (n *Navigator) Current() *controller.Snapshot {
	return n.ctrl.Current()
}

// TransitionState returns the machine's current state.
func (n *Navigator) TransitionState() transition.State {
	return n.machine.State()
}

// CurrentDestination returns the destination of the active leaf screen.
func (n *Navigator) CurrentDestination() (node.Destination, bool) {
	return n.ctrl.CurrentDestination()
}

// PreviousDestination returns the destination a plain back navigation would
// land on.
func (n *Navigator) PreviousDestination() (node.Destination, bool) {
	return n.ctrl.PreviousDestination()
}

// CanGoBack reports whether back navigation has anywhere to go.
func (n *Navigator) CanGoBack() bool {
	return n.ctrl.CanGoBack()
}

// Metrics returns the transition machine's counters.
func (n *Navigator) Metrics() transition.MetricsSnapshot {
	return n.machine.Metrics()
}

// Save persists the current tree under id.
func (n *Navigator) Save(ctx context.Context, store persist.SnapshotStore, id string) error {
	return store.Save(ctx, id, n.ctrl.Current().Root)
}

// Restore loads the tree stored under id and publishes it as the new
// snapshot. Refused while a transition is active, like any other command.
func (n *Navigator) Restore(ctx context.Context, store persist.SnapshotStore, id string) error {
	root, err := store.Load(ctx, id)
	if err != nil {
		return err
	}
	return n.machine.Dispatch(func(node.NavNode) (node.NavNode, error) {
		return root, nil
	})
}

// backMutation pops the active stack, preserving its last entry; when the
// focused pane is out of history the configured pane policy decides the
// fallback.
func (n *Navigator) backMutation(tree node.NavNode) (node.NavNode, error) {
	rebuilt, err := mutate.Pop(tree, mutate.PreserveEmpty)
	if err == nil {
		return rebuilt, nil
	}
	if !errors.Is(err, mutate.ErrCannotPop) {
		return tree, err
	}

	rebuilt, paneErr := mutate.PopWithPaneBehavior(tree, n.paneBack)
	if paneErr == nil {
		return rebuilt, nil
	}
	if errors.Is(paneErr, mutate.ErrNoActivePanes) {
		return tree, err
	}
	return tree, paneErr
}
