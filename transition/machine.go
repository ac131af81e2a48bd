package transition

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/waypost/navtree/controller"
	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/node"
	"github.com/waypost/navtree/observability"
)

// Mutation is a staged tree transformation, held by the machine until the
// transition it belongs to reaches a commit decision.
type Mutation func(node.NavNode) (node.NavNode, error)

// Machine tracks whether a navigation change is idle, animating
// programmatically, gesture-driven, or externally scrubbed, and governs
// exactly when the controller is allowed to commit a staged mutation.
//
// The contract that justifies this component existing apart from the
// controller: while InProgress or PredictiveBack is active, the controller's
// published snapshot stays on the pre-mutation tree. Only Commit (or
// FinishNavigation) triggers the actual mutation and publish. The renderer
// therefore never loses the outgoing screen's state before its exit
// animation finishes. Cancel discards the staged mutation with zero side
// effects, because nothing was ever applied.
type Machine struct {
	ctrl *controller.Controller

	mu      sync.Mutex
	state   State
	pending Mutation

	threshold float64

	subsMu     sync.RWMutex
	subs       map[node.Key]chan State
	bufferSize int

	observer observability.Observer
	metrics  *Metrics
}

// NewMachine creates a Machine bound to a controller, resolving the observer
// by name from the observability registry.
func NewMachine(cfg Config, ctrl *controller.Controller) (*Machine, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}
	return NewMachineWithObserver(cfg, ctrl, observer)
}

// NewMachineWithObserver creates a Machine with an injected observer,
// bypassing the registry.
func NewMachineWithObserver(cfg Config, ctrl *controller.Controller, observer observability.Observer) (*Machine, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("%w: controller is nil", ErrNoTransition)
	}
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	threshold := cfg.CommitThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultCommitThreshold
	}
	bufferSize := cfg.SubscriberBuffer
	if bufferSize <= 0 {
		bufferSize = defaultSubscriberBuffer
	}

	return &Machine{
		ctrl:       ctrl,
		state:      Idle{},
		threshold:  threshold,
		subs:       make(map[node.Key]chan State),
		bufferSize: bufferSize,
		observer:   observer,
		metrics:    NewMetrics(),
	}, nil
}

// State returns the machine's current transition state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Metrics returns a snapshot of the machine's counters.
func (m *Machine) Metrics() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// StartGesture begins a predictive back gesture, staging the default back
// mutation (a pop that preserves the last entry). Fails with
// ErrTransitionActive unless the machine is idle.
func (m *Machine) StartGesture() error {
	return m.StartGestureWith(func(tree node.NavNode) (node.NavNode, error) {
		return mutate.Pop(tree, mutate.PreserveEmpty)
	})
}

// StartGestureWith begins a predictive back gesture with an explicit staged
// mutation, for callers whose back semantics are not a plain pop (pane
// policies, clearing flows).
func (m *Machine) StartGestureWith(staged Mutation) error {
	m.mu.Lock()
	if _, idle := m.state.(Idle); !idle {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: %T", ErrTransitionActive, state)
	}
	next := PredictiveBack{Progress: 0, ShouldComplete: false}
	m.state = next
	m.pending = staged
	m.mu.Unlock()

	m.metrics.RecordGestureStart()
	m.emit(EventGestureStart, observability.LevelInfo, nil)
	m.publish(next)
	return nil
}

// UpdateGesture records new gesture progress. ShouldComplete flips on at the
// configured commit threshold. Progress arrives per pointer-move event, so
// this path does no tree work at all, O(1) per call.
func (m *Machine) UpdateGesture(progress float64) error {
	m.mu.Lock()
	if _, ok := m.state.(PredictiveBack); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	progress = clamp(progress)
	next := PredictiveBack{Progress: progress, ShouldComplete: progress >= m.threshold}
	m.state = next
	m.mu.Unlock()

	m.emit(EventGestureUpdate, observability.LevelVerbose, map[string]any{
		"progress":        progress,
		"should_complete": next.ShouldComplete,
	})
	m.publish(next)
	return nil
}

// CommitGesture concludes the gesture by applying the staged mutation and
// returning to Idle. The renderer calls this once the exit animation has
// finished; committing earlier would destroy the outgoing screen
// mid-transition. Returns the mutate sentinel when the staged mutation is
// refused; the state still resets to Idle.
func (m *Machine) CommitGesture() error {
	m.mu.Lock()
	if _, ok := m.state.(PredictiveBack); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	staged := m.pending
	m.state = Idle{}
	m.pending = nil
	m.mu.Unlock()

	var err error
	if staged != nil {
		err = m.ctrl.Apply(staged)
	}

	m.metrics.RecordGestureCommit()
	m.emit(EventGestureCommit, observability.LevelInfo, nil)
	m.publish(Idle{})
	return err
}

// CancelGesture discards the gesture and its staged mutation. The tree was
// never touched, so cancellation has zero side effects beyond the state
// reset.
func (m *Machine) CancelGesture() error {
	m.mu.Lock()
	if _, ok := m.state.(PredictiveBack); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	m.state = Idle{}
	m.pending = nil
	m.mu.Unlock()

	m.metrics.RecordGestureCancel()
	m.emit(EventGestureCancel, observability.LevelInfo, nil)
	m.publish(Idle{})
	return nil
}

// ShouldComplete reports whether releasing the gesture right now would
// commit.
func (m *Machine) ShouldComplete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	back, ok := m.state.(PredictiveBack)
	return ok && back.ShouldComplete
}

// BeginNavigation starts a programmatic transition between two nodes,
// staging the mutation to apply when the animation finishes.
func (m *Machine) BeginNavigation(from, to node.Key, staged Mutation) error {
	m.mu.Lock()
	if _, idle := m.state.(Idle); !idle {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: %T", ErrTransitionActive, state)
	}
	next := InProgress{From: from, To: to, Progress: 0}
	m.state = next
	m.pending = staged
	m.mu.Unlock()

	m.emit(EventNavigationBegin, observability.LevelInfo, map[string]any{
		"from": string(from),
		"to":   string(to),
	})
	m.publish(next)
	return nil
}

// Tick advances the programmatic animation's progress.
func (m *Machine) Tick(progress float64) error {
	m.mu.Lock()
	current, ok := m.state.(InProgress)
	if !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	next := InProgress{From: current.From, To: current.To, Progress: clamp(progress)}
	m.state = next
	m.mu.Unlock()

	m.emit(EventNavigationTick, observability.LevelVerbose, map[string]any{"progress": next.Progress})
	m.publish(next)
	return nil
}

// FinishNavigation concludes the programmatic transition, applying the
// staged mutation and returning to Idle.
func (m *Machine) FinishNavigation() error {
	m.mu.Lock()
	if _, ok := m.state.(InProgress); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	staged := m.pending
	m.state = Idle{}
	m.pending = nil
	m.mu.Unlock()

	var err error
	if staged != nil {
		err = m.ctrl.Apply(staged)
	}

	m.metrics.RecordNavigation()
	m.emit(EventNavigationFinish, observability.LevelInfo, nil)
	m.publish(Idle{})
	return err
}

// CancelNavigation abandons the programmatic transition without applying its
// staged mutation.
func (m *Machine) CancelNavigation() error {
	m.mu.Lock()
	if _, ok := m.state.(InProgress); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	m.state = Idle{}
	m.pending = nil
	m.mu.Unlock()

	m.emit(EventNavigationCancel, observability.LevelInfo, nil)
	m.publish(Idle{})
	return nil
}

// Seek enters external scrub control from any state. A staged mutation from
// an interrupted transition is discarded; the scrubbing caller re-stages
// whatever it intends to commit.
func (m *Machine) Seek(progress float64) {
	m.mu.Lock()
	next := Seeking{Progress: clamp(progress)}
	m.state = next
	m.pending = nil
	m.mu.Unlock()

	m.emit(EventSeekStart, observability.LevelVerbose, map[string]any{"progress": next.Progress})
	m.publish(next)
}

// EndSeek leaves scrub control and returns to Idle.
func (m *Machine) EndSeek() error {
	m.mu.Lock()
	if _, ok := m.state.(Seeking); !ok {
		m.mu.Unlock()
		return ErrNoTransition
	}
	m.state = Idle{}
	m.mu.Unlock()

	m.emit(EventSeekEnd, observability.LevelVerbose, nil)
	m.publish(Idle{})
	return nil
}

// Dispatch runs a programmatic command through the machine's gate: applied
// immediately when no transition is active, refused with ErrTransitionActive
// while one is. Refusing instead of queueing keeps the published snapshot on
// the pre-mutation tree for the whole life of the transition.
func (m *Machine) Dispatch(fn Mutation) error {
	m.mu.Lock()
	_, idle := m.state.(Idle)
	state := m.state
	m.mu.Unlock()

	if !idle {
		return fmt.Errorf("%w: %T", ErrTransitionActive, state)
	}
	return m.ctrl.Apply(fn)
}

func (m *Machine) emit(eventType observability.EventType, level observability.Level, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	m.observer.OnEvent(context.Background(), observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "transition",
		Data:      data,
	})
}
