package mutate_test

import (
	"bytes"
	"testing"

	"github.com/waypost/navtree/node"
)

type testDest struct {
	Name string `json:"name"`
}

func (d testDest) Route() string { return d.Name }

func mustScreen(t *testing.T, name string) *node.Screen {
	t.Helper()
	screen, err := node.NewScreen(testDest{Name: name})
	if err != nil {
		t.Fatalf("NewScreen(%q) failed: %v", name, err)
	}
	return screen
}

func mustStack(t *testing.T, children ...node.NavNode) *node.Stack {
	t.Helper()
	stack, err := node.NewStack(children...)
	if err != nil {
		t.Fatalf("NewStack failed: %v", err)
	}
	return stack
}

func mustTabs(t *testing.T, active int, stacks ...*node.Stack) *node.Tabs {
	t.Helper()
	tabs, err := node.NewTabs(active, stacks...)
	if err != nil {
		t.Fatalf("NewTabs failed: %v", err)
	}
	return tabs
}

func mustPanes(t *testing.T, active node.PaneRole, panes map[node.PaneRole]node.PaneConfiguration) *node.Panes {
	t.Helper()
	built, err := node.NewPanes(active, panes)
	if err != nil {
		t.Fatalf("NewPanes failed: %v", err)
	}
	return built
}

// treesEqual compares two trees structurally via their canonical encoding.
func treesEqual(t *testing.T, a, b node.NavNode) bool {
	t.Helper()
	encA, err := node.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	encB, err := node.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return bytes.Equal(encA, encB)
}

// routes reads the destination routes of a stack's screens in order.
func routes(t *testing.T, stack *node.Stack) []string {
	t.Helper()
	var names []string
	for _, child := range stack.Children() {
		screen, ok := child.(*node.Screen)
		if !ok {
			t.Fatalf("stack child is %T, want *node.Screen", child)
		}
		names = append(names, screen.Destination().Route())
	}
	return names
}

func activeStack(t *testing.T, tree node.NavNode) *node.Stack {
	t.Helper()
	stack, ok := node.ActiveStack(tree)
	if !ok {
		t.Fatal("no active stack")
	}
	return stack
}

func equalRoutes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
