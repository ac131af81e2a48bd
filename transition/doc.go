// Package transition is the state machine that governs when a navigation
// mutation may actually be committed.
//
// # States
//
// Idle - nothing in flight; the published snapshot is settled
//
// InProgress - a programmatic navigation animating between two nodes
//
// PredictiveBack - a gesture-driven back navigation, outcome decided at
// release
//
// Seeking - fine-grained external progress control (scrubbing)
//
// # The ordering contract
//
// Tree mutations staged for a transition are held, not applied. While
// InProgress or PredictiveBack is active the controller keeps publishing the
// pre-mutation tree; only CommitGesture / FinishNavigation triggers the
// mutate call and the new publish. Committing a pop before the exit
// animation finishes destroys the outgoing screen mid-transition, so the
// commit decision always belongs to the renderer's gesture/animation layer,
// via the explicit commit and cancel entry points.
//
// Cancellation at any point before commit has zero side effects: no tree
// mutation ever happened, so cancel is nothing but a state reset.
package transition
