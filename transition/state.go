package transition

import "github.com/waypost/navtree/node"

// State is the closed set of transition states: Idle, InProgress,
// PredictiveBack and Seeking. The variants are comparable value types so
// callers can switch exhaustively and compare states directly in tests.
type State interface {
	transitionState()
}

// Idle means no navigation change is in flight. The published snapshot is
// the settled truth.
type Idle struct{}

// InProgress is a programmatic navigation animating between two nodes. The
// staged mutation is applied only when the transition finishes.
type InProgress struct {
	From     node.Key
	To       node.Key
	Progress float64
}

// PredictiveBack is a gesture-driven back navigation whose outcome is decided
// only at release. ShouldComplete tracks whether releasing now would commit.
type PredictiveBack struct {
	Progress       float64
	ShouldComplete bool
}

// Seeking is fine-grained external progress control, e.g. element-morph
// scrubbing driven by something other than the gesture recognizer.
type Seeking struct {
	Progress float64
}

func (Idle) transitionState()           {}
func (InProgress) transitionState()     {}
func (PredictiveBack) transitionState() {}
func (Seeking) transitionState()        {}

// clamp pins a progress value into [0, 1].
func clamp(progress float64) float64 {
	switch {
	case progress < 0:
		return 0
	case progress > 1:
		return 1
	default:
		return progress
	}
}
