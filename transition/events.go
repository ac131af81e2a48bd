package transition

import "github.com/waypost/navtree/observability"

const (
	// Gesture-driven back navigation
	EventGestureStart  observability.EventType = "transition.gesture.start"
	EventGestureUpdate observability.EventType = "transition.gesture.update"
	EventGestureCommit observability.EventType = "transition.gesture.commit"
	EventGestureCancel observability.EventType = "transition.gesture.cancel"

	// Programmatic navigation animation
	EventNavigationBegin  observability.EventType = "transition.begin"
	EventNavigationTick   observability.EventType = "transition.tick"
	EventNavigationFinish observability.EventType = "transition.finish"
	EventNavigationCancel observability.EventType = "transition.cancel"

	// External scrubbing
	EventSeekStart observability.EventType = "transition.seek.start"
	EventSeekEnd   observability.EventType = "transition.seek.end"
)
