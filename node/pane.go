package node

// PaneRole names a semantic slot in a multi-region layout, distinct from raw
// positional indexing.
type PaneRole string

const (
	RolePrimary    PaneRole = "primary"
	RoleSupporting PaneRole = "supporting"
	RoleExtra      PaneRole = "extra"
)

// roleOrder fixes a deterministic iteration order over pane roles.
var roleOrder = []PaneRole{RolePrimary, RoleSupporting, RoleExtra}

// Valid reports whether the role is one of the three defined slots.
func (r PaneRole) Valid() bool {
	switch r {
	case RolePrimary, RoleSupporting, RoleExtra:
		return true
	default:
		return false
	}
}

// AdaptStrategy describes how a pane behaves when the layout cannot show it
// at full size.
type AdaptStrategy string

const (
	// AdaptHide removes the pane from the layout entirely.
	AdaptHide AdaptStrategy = "hide"
	// AdaptLevitate floats the pane above the primary region.
	AdaptLevitate AdaptStrategy = "levitate"
	// AdaptReflow moves the pane's content into the primary region's flow.
	AdaptReflow AdaptStrategy = "reflow"
)

// Valid reports whether the strategy is one of the defined adaptations.
func (s AdaptStrategy) Valid() bool {
	switch s {
	case AdaptHide, AdaptLevitate, AdaptReflow:
		return true
	default:
		return false
	}
}

// PaneConfiguration pairs a role's content subtree with its adapt strategy.
// Content is expected to be stack-shaped so the role can hold its own
// navigation history.
type PaneConfiguration struct {
	Content  NavNode
	Strategy AdaptStrategy
}
