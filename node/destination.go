package node

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Destination is the opaque value a Screen renders: a route identifier plus
// whatever argument payload the consuming application attaches to it. The
// core never inspects the payload beyond identity comparisons for route
// matching.
//
// Implementations must be immutable, comparable value types (usable with ==)
// and JSON-marshalable so trees containing them round-trip through the codec.
type Destination interface {
	// Route returns the stable route identifier for this destination.
	Route() string
}

// EqualDestinations reports whether two destinations are identical values.
func EqualDestinations(a, b Destination) bool {
	return a == b
}

// DecodeFunc rebuilds a destination value from its JSON payload. The payload
// is whatever json.Marshal produced for the registered implementation.
type DecodeFunc func(data json.RawMessage) (Destination, error)

type destinationRegistry struct {
	decoders map[string]DecodeFunc
	mu       sync.RWMutex
}

var destinations = &destinationRegistry{
	decoders: make(map[string]DecodeFunc),
}

// RegisterDestination adds a route's decoder to the shared tagged-union
// scheme. Returns ErrRouteRegistered if the route is already taken; use
// ReplaceDestination to swap a decoder. Thread-safe for concurrent
// registration.
func RegisterDestination(route string, decode DecodeFunc) error {
	if route == "" {
		return ErrEmptyRoute
	}

	destinations.mu.Lock()
	defer destinations.mu.Unlock()

	if _, exists := destinations.decoders[route]; exists {
		return fmt.Errorf("%w: %s", ErrRouteRegistered, route)
	}

	destinations.decoders[route] = decode
	return nil
}

// ReplaceDestination updates an existing route's decoder.
// Returns ErrRouteNotRegistered if the route is unknown.
func ReplaceDestination(route string, decode DecodeFunc) error {
	if route == "" {
		return ErrEmptyRoute
	}

	destinations.mu.Lock()
	defer destinations.mu.Unlock()

	if _, exists := destinations.decoders[route]; !exists {
		return fmt.Errorf("%w: %s", ErrRouteNotRegistered, route)
	}

	destinations.decoders[route] = decode
	return nil
}

// DecodeDestination rebuilds a destination from its route tag and payload.
// Returns ErrRouteNotRegistered if no decoder is registered for the route.
func DecodeDestination(route string, data json.RawMessage) (Destination, error) {
	destinations.mu.RLock()
	decode, exists := destinations.decoders[route]
	destinations.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotRegistered, route)
	}

	dest, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding destination %s: %w", route, err)
	}
	return dest, nil
}

// RegisteredRoutes returns the routes currently known to the registry.
func RegisteredRoutes() []string {
	destinations.mu.RLock()
	defer destinations.mu.RUnlock()

	routes := make([]string, 0, len(destinations.decoders))
	for route := range destinations.decoders {
		routes = append(routes, route)
	}
	return routes
}
