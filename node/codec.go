package node

import (
	"encoding/json"
	"fmt"
)

// Variant tags for the serialized tagged union.
const (
	variantScreen = "screen"
	variantStack  = "stack"
	variantTabs   = "tabs"
	variantPanes  = "panes"
)

type encodedDestination struct {
	Route string          `json:"route"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type encodedPane struct {
	Content  json.RawMessage `json:"content"`
	Strategy AdaptStrategy   `json:"strategy"`
}

type encodedNode struct {
	Type        string                   `json:"type"`
	Key         Key                      `json:"key"`
	ParentKey   Key                      `json:"parentKey,omitempty"`
	Destination *encodedDestination      `json:"destination,omitempty"`
	Children    []json.RawMessage        `json:"children,omitempty"`
	Stacks      []json.RawMessage        `json:"stacks,omitempty"`
	ActiveIndex *int                     `json:"activeIndex,omitempty"`
	Panes       map[PaneRole]encodedPane `json:"panes,omitempty"`
	ActiveRole  PaneRole                 `json:"activeRole,omitempty"`
}

// Marshal serializes a tree to its tagged-union JSON form. Each node carries
// its variant tag plus fields; destinations are encoded as their route tag
// plus the payload json.Marshal produces for the registered implementation.
func Marshal(tree NavNode) ([]byte, error) {
	if tree == nil {
		return nil, fmt.Errorf("%w: root", ErrNilChild)
	}
	return encodeNode(tree)
}

// Unmarshal rebuilds a tree from its tagged-union JSON form, resolving
// destination payloads through the registry and re-validating every
// construction invariant plus whole-tree key uniqueness.
func Unmarshal(data []byte) (NavNode, error) {
	tree, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func encodeNode(n NavNode) ([]byte, error) {
	enc := encodedNode{Key: n.Key(), ParentKey: n.ParentKey()}

	switch v := n.(type) {
	case *Screen:
		enc.Type = variantScreen
		payload, err := json.Marshal(v.destination)
		if err != nil {
			return nil, fmt.Errorf("encoding destination %s: %w", v.destination.Route(), err)
		}
		enc.Destination = &encodedDestination{Route: v.destination.Route(), Data: payload}

	case *Stack:
		enc.Type = variantStack
		enc.Children = make([]json.RawMessage, len(v.children))
		for i, child := range v.children {
			raw, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			enc.Children[i] = raw
		}

	case *Tabs:
		enc.Type = variantTabs
		index := v.activeIndex
		enc.ActiveIndex = &index
		enc.Stacks = make([]json.RawMessage, len(v.stacks))
		for i, stack := range v.stacks {
			raw, err := encodeNode(stack)
			if err != nil {
				return nil, err
			}
			enc.Stacks[i] = raw
		}

	case *Panes:
		enc.Type = variantPanes
		enc.ActiveRole = v.activeRole
		enc.Panes = make(map[PaneRole]encodedPane, len(v.panes))
		for role, cfg := range v.panes {
			raw, err := encodeNode(cfg.Content)
			if err != nil {
				return nil, err
			}
			enc.Panes[role] = encodedPane{Content: raw, Strategy: cfg.Strategy}
		}

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownVariant, n)
	}

	return json.Marshal(enc)
}

func decodeNode(data []byte) (NavNode, error) {
	var enc encodedNode
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("decoding node: %w", err)
	}

	switch enc.Type {
	case variantScreen:
		if enc.Destination == nil {
			return nil, fmt.Errorf("%w: screen %s", ErrNilDestination, enc.Key)
		}
		dest, err := DecodeDestination(enc.Destination.Route, enc.Destination.Data)
		if err != nil {
			return nil, err
		}
		return NewScreenWithKey(enc.Key, enc.ParentKey, dest)

	case variantStack:
		kids := make([]NavNode, len(enc.Children))
		for i, raw := range enc.Children {
			child, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			kids[i] = child
		}
		return NewStackWithKey(enc.Key, enc.ParentKey, kids...)

	case variantTabs:
		if enc.ActiveIndex == nil {
			return nil, fmt.Errorf("%w: tabs %s missing active index", ErrIndexOutOfRange, enc.Key)
		}
		stacks := make([]*Stack, len(enc.Stacks))
		for i, raw := range enc.Stacks {
			child, err := decodeNode(raw)
			if err != nil {
				return nil, err
			}
			stack, ok := child.(*Stack)
			if !ok {
				return nil, fmt.Errorf("%w: tabs %s slot %d holds %T", ErrUnknownVariant, enc.Key, i, child)
			}
			stacks[i] = stack
		}
		return NewTabsWithKey(enc.Key, enc.ParentKey, *enc.ActiveIndex, stacks...)

	case variantPanes:
		panes := make(map[PaneRole]PaneConfiguration, len(enc.Panes))
		for role, pane := range enc.Panes {
			content, err := decodeNode(pane.Content)
			if err != nil {
				return nil, err
			}
			panes[role] = PaneConfiguration{Content: content, Strategy: pane.Strategy}
		}
		return NewPanesWithKey(enc.Key, enc.ParentKey, enc.ActiveRole, panes)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, enc.Type)
	}
}
