// Package controller wraps the current navigation tree in a stateful,
// observable cell.
//
// The controller owns exactly one piece of mutable state: the latest
// Snapshot. Every navigation command reads the newest tree, runs the
// corresponding mutate function, and on success atomically publishes the
// result to all subscribers. Refused commands surface the mutate sentinel to
// the caller and leave the published tree untouched: navigation either
// happened or it did not, never a half-updated state.
//
// # Concurrency
//
// Writes are serialized through a single mutex; reads load an atomic pointer
// and never block. Snapshots are immutable, so any number of goroutines can
// read a snapshot while the next one is being computed. Publication is a
// cheap pointer swap plus non-blocking channel sends.
package controller
