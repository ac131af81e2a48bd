package node

import "errors"

// Sentinel errors for construction-time invariant violations and codec
// failures. Constructors fail at the point the invalid node would be built;
// invariants are never relaxed after construction.
var (
	ErrNilDestination     = errors.New("destination is nil")
	ErrNilChild           = errors.New("child node is nil")
	ErrNoStacks           = errors.New("tabs requires at least one stack")
	ErrIndexOutOfRange    = errors.New("active index out of range")
	ErrMissingPrimary     = errors.New("primary pane is not configured")
	ErrPrimaryRequired    = errors.New("primary pane cannot be removed")
	ErrRoleNotConfigured  = errors.New("pane role not configured")
	ErrInvalidRole        = errors.New("invalid pane role")
	ErrInvalidStrategy    = errors.New("invalid adapt strategy")
	ErrDuplicateKey       = errors.New("duplicate node key")
	ErrUnknownVariant     = errors.New("unknown node variant")
	ErrRouteNotRegistered = errors.New("destination route not registered")
	ErrRouteRegistered    = errors.New("destination route already registered")
	ErrEmptyRoute         = errors.New("destination route is empty")
)
