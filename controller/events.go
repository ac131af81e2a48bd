package controller

import "github.com/waypost/navtree/observability"

const (
	// Snapshot lifecycle
	EventCreate  observability.EventType = "nav.create"
	EventApply   observability.EventType = "nav.apply"
	EventRefused observability.EventType = "nav.refused"

	// Subscriptions
	EventSubscribe   observability.EventType = "nav.subscribe"
	EventUnsubscribe observability.EventType = "nav.unsubscribe"
)
