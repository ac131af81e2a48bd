// Package node defines the navigation tree data model: a closed tagged union
// of four variants plus the pure queries that read it.
//
// # Variants
//
// Screen - a terminal, renderable destination
//
// Stack - ordered linear history; the last child is active
//
// Tabs - N parallel stacks with independent, preserved history
//
// Panes - role-keyed simultaneous regions (Primary/Supporting/Extra)
//
// # Immutability
//
// Nodes never change after construction. Transformations live in the mutate
// package and produce a new root that reuses every untouched subtree by
// reference (structural sharing), so one snapshot can be read concurrently
// by any number of observers without locks.
//
// # Invariants
//
// Constructors validate container invariants (at least one stack in Tabs,
// in-bounds active index, Primary pane presence, configured active role) and
// fail at the point the invalid node would be built. Validate re-checks a
// whole tree plus key uniqueness, for trees arriving from the codec or a
// snapshot store.
//
// # Destinations
//
// Destination is an opaque route-plus-payload value supplied by the consuming
// application. Applications register a decoder per route so trees containing
// their destinations survive the tagged-union JSON round trip:
//
//	node.RegisterDestination("profile", func(data json.RawMessage) (node.Destination, error) {
//	    var d ProfileDestination
//	    if err := json.Unmarshal(data, &d); err != nil {
//	        return nil, err
//	    }
//	    return d, nil
//	})
package node
