package transition

import "errors"

// Sentinel errors for transition conflicts.
var (
	ErrTransitionActive = errors.New("a transition is already in progress")
	ErrNoTransition     = errors.New("no transition is pending")
)
