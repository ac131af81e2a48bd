package mutate_test

import (
	"errors"
	"testing"

	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/node"
)

// buildPanes assembles a two-region layout with the given per-role stack
// contents, focused on Primary.
func buildPanes(t *testing.T, primary, supporting []string) *node.Panes {
	t.Helper()
	build := func(names []string) *node.Stack {
		var screens []node.NavNode
		for _, name := range names {
			screens = append(screens, mustScreen(t, name))
		}
		return mustStack(t, screens...)
	}
	cfg := map[node.PaneRole]node.PaneConfiguration{
		node.RolePrimary: {Content: build(primary), Strategy: node.AdaptHide},
	}
	if supporting != nil {
		cfg[node.RoleSupporting] = node.PaneConfiguration{Content: build(supporting), Strategy: node.AdaptLevitate}
	}
	return mustPanes(t, node.RolePrimary, cfg)
}

func paneRoutes(t *testing.T, tree node.NavNode, role node.PaneRole) []string {
	t.Helper()
	panes, ok := tree.(*node.Panes)
	if !ok {
		t.Fatalf("root is %T, want *node.Panes", tree)
	}
	cfg, ok := panes.Configuration(role)
	if !ok {
		t.Fatalf("role %q not configured", role)
	}
	stack, ok := node.ActiveStack(cfg.Content)
	if !ok {
		t.Fatalf("role %q content is not stack-shaped", role)
	}
	return routes(t, stack)
}

func TestNavigateToPane_PushesIntoRole(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, []string{"placeholder"})

	got, err := mutate.NavigateToPane(tree, node.RoleSupporting, testDest{Name: "detail"}, false)
	if err != nil {
		t.Fatalf("NavigateToPane failed: %v", err)
	}

	if r := paneRoutes(t, got, node.RoleSupporting); !equalRoutes(r, []string{"placeholder", "detail"}) {
		t.Fatalf("supporting routes = %v, want [placeholder detail]", r)
	}
	if r := paneRoutes(t, got, node.RolePrimary); !equalRoutes(r, []string{"list"}) {
		t.Fatalf("primary routes = %v, want [list]", r)
	}
	// Without switchFocus the Primary role keeps focus.
	if role := got.(*node.Panes).ActiveRole(); role != node.RolePrimary {
		t.Fatalf("active role = %q, want primary", role)
	}
}

func TestNavigateToPane_SwitchFocus(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, []string{"placeholder"})

	got, err := mutate.NavigateToPane(tree, node.RoleSupporting, testDest{Name: "detail"}, true)
	if err != nil {
		t.Fatalf("NavigateToPane failed: %v", err)
	}
	if role := got.(*node.Panes).ActiveRole(); role != node.RoleSupporting {
		t.Fatalf("active role = %q, want supporting", role)
	}
	leaf, ok := node.ActiveLeaf(got)
	if !ok {
		t.Fatal("no active leaf")
	}
	if leaf.Destination().Route() != "detail" {
		t.Fatalf("active leaf = %q, want detail", leaf.Destination().Route())
	}
}

func TestNavigateToPane_RoleNotConfigured(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, nil)

	got, err := mutate.NavigateToPane(tree, node.RoleExtra, testDest{Name: "detail"}, false)
	if !errors.Is(err, mutate.ErrRoleNotConfigured) {
		t.Fatalf("NavigateToPane error = %v, want ErrRoleNotConfigured", err)
	}
	if got != node.NavNode(tree) {
		t.Fatal("failed navigation must return the input tree")
	}
}

func TestSwitchActivePane(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, []string{"detail"})

	got, err := mutate.SwitchActivePane(tree, node.RoleSupporting)
	if err != nil {
		t.Fatalf("SwitchActivePane failed: %v", err)
	}
	if role := got.(*node.Panes).ActiveRole(); role != node.RoleSupporting {
		t.Fatalf("active role = %q, want supporting", role)
	}

	// Switching to the focused role is a no-op.
	again, err := mutate.SwitchActivePane(got, node.RoleSupporting)
	if err != nil {
		t.Fatalf("second SwitchActivePane failed: %v", err)
	}
	if again != got {
		t.Fatal("no-op switch must return the input tree")
	}

	if _, err := mutate.SwitchActivePane(tree, node.RoleExtra); !errors.Is(err, mutate.ErrRoleNotConfigured) {
		t.Fatalf("SwitchActivePane error = %v, want ErrRoleNotConfigured", err)
	}
}

func TestPopPane_TargetsRoleRegardlessOfFocus(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, []string{"detail", "comments"})

	got, err := mutate.PopPane(tree, node.RoleSupporting)
	if err != nil {
		t.Fatalf("PopPane failed: %v", err)
	}
	if r := paneRoutes(t, got, node.RoleSupporting); !equalRoutes(r, []string{"detail"}) {
		t.Fatalf("supporting routes = %v, want [detail]", r)
	}
	// Focus stays on Primary; PopPane never moves it.
	if role := got.(*node.Panes).ActiveRole(); role != node.RolePrimary {
		t.Fatalf("active role = %q, want primary", role)
	}

	// A role down to one entry refuses.
	if _, err := mutate.PopPane(got, node.RoleSupporting); !errors.Is(err, mutate.ErrCannotPop) {
		t.Fatalf("PopPane error = %v, want ErrCannotPop", err)
	}
}

func TestPopWithPaneBehavior_PopsFocusedWhilePossible(t *testing.T) {
	tree := buildPanes(t, []string{"list", "filters"}, []string{"detail"})

	got, err := mutate.PopWithPaneBehavior(tree, mutate.PopLatest)
	if err != nil {
		t.Fatalf("PopWithPaneBehavior failed: %v", err)
	}
	if r := paneRoutes(t, got, node.RolePrimary); !equalRoutes(r, []string{"list"}) {
		t.Fatalf("primary routes = %v, want [list]", r)
	}
}

func TestPopWithPaneBehavior_Fallbacks(t *testing.T) {
	// Focus sits on Supporting, whose stack is down to one entry.
	base := buildPanes(t, []string{"list", "filters"}, []string{"detail"})
	focused, err := mutate.SwitchActivePane(base, node.RoleSupporting)
	if err != nil {
		t.Fatalf("SwitchActivePane failed: %v", err)
	}

	t.Run("latest refuses", func(t *testing.T) {
		_, err := mutate.PopWithPaneBehavior(focused, mutate.PopLatest)
		if !errors.Is(err, mutate.ErrCannotPop) {
			t.Fatalf("error = %v, want ErrCannotPop", err)
		}
	})

	t.Run("scaffold change refocuses primary", func(t *testing.T) {
		got, err := mutate.PopWithPaneBehavior(focused, mutate.PopUntilScaffoldValueChange)
		if err != nil {
			t.Fatalf("PopWithPaneBehavior failed: %v", err)
		}
		if role := got.(*node.Panes).ActiveRole(); role != node.RolePrimary {
			t.Fatalf("active role = %q, want primary", role)
		}
		// Nothing was popped anywhere.
		if r := paneRoutes(t, got, node.RolePrimary); !equalRoutes(r, []string{"list", "filters"}) {
			t.Fatalf("primary routes = %v, want [list filters]", r)
		}
	})

	t.Run("destination change refocuses first other role", func(t *testing.T) {
		got, err := mutate.PopWithPaneBehavior(focused, mutate.PopUntilCurrentDestinationChange)
		if err != nil {
			t.Fatalf("PopWithPaneBehavior failed: %v", err)
		}
		if role := got.(*node.Panes).ActiveRole(); role != node.RolePrimary {
			t.Fatalf("active role = %q, want primary", role)
		}
	})

	t.Run("content change pops another role", func(t *testing.T) {
		got, err := mutate.PopWithPaneBehavior(focused, mutate.PopUntilContentChange)
		if err != nil {
			t.Fatalf("PopWithPaneBehavior failed: %v", err)
		}
		if r := paneRoutes(t, got, node.RolePrimary); !equalRoutes(r, []string{"list"}) {
			t.Fatalf("primary routes = %v, want [list]", r)
		}
		// Focus is untouched; only content moved.
		if role := got.(*node.Panes).ActiveRole(); role != node.RoleSupporting {
			t.Fatalf("active role = %q, want supporting", role)
		}
	})

	t.Run("content change exhausted refuses", func(t *testing.T) {
		drained := buildPanes(t, []string{"list"}, []string{"detail"})
		_, err := mutate.PopWithPaneBehavior(drained, mutate.PopUntilContentChange)
		if !errors.Is(err, mutate.ErrCannotPop) {
			t.Fatalf("error = %v, want ErrCannotPop", err)
		}
	})

	t.Run("scaffold change already on primary refuses", func(t *testing.T) {
		drained := buildPanes(t, []string{"list"}, []string{"detail"})
		_, err := mutate.PopWithPaneBehavior(drained, mutate.PopUntilScaffoldValueChange)
		if !errors.Is(err, mutate.ErrCannotPop) {
			t.Fatalf("error = %v, want ErrCannotPop", err)
		}
	})
}

func TestSetPaneConfiguration_AddsRole(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, nil)
	extra := mustStack(t, mustScreen(t, "tools"))

	got, err := mutate.SetPaneConfiguration(tree, tree.Key(), node.RoleExtra, node.PaneConfiguration{
		Content:  extra,
		Strategy: node.AdaptReflow,
	})
	if err != nil {
		t.Fatalf("SetPaneConfiguration failed: %v", err)
	}
	if r := paneRoutes(t, got, node.RoleExtra); !equalRoutes(r, []string{"tools"}) {
		t.Fatalf("extra routes = %v, want [tools]", r)
	}
}

func TestRemovePaneConfiguration(t *testing.T) {
	tree := buildPanes(t, []string{"list"}, []string{"detail"})

	got, err := mutate.RemovePaneConfiguration(tree, tree.Key(), node.RoleSupporting)
	if err != nil {
		t.Fatalf("RemovePaneConfiguration failed: %v", err)
	}
	if _, ok := got.(*node.Panes).Configuration(node.RoleSupporting); ok {
		t.Fatal("supporting role still configured after removal")
	}

	if _, err := mutate.RemovePaneConfiguration(tree, tree.Key(), node.RolePrimary); !errors.Is(err, node.ErrPrimaryRequired) {
		t.Fatalf("error = %v, want ErrPrimaryRequired", err)
	}
}

func TestPaneOps_NoActivePanes(t *testing.T) {
	tree := mustStack(t, mustScreen(t, "home"))

	ops := []struct {
		name string
		run  func() error
	}{
		{name: "navigate", run: func() error {
			_, err := mutate.NavigateToPane(tree, node.RolePrimary, testDest{Name: "x"}, false)
			return err
		}},
		{name: "switch", run: func() error { _, err := mutate.SwitchActivePane(tree, node.RolePrimary); return err }},
		{name: "pop pane", run: func() error { _, err := mutate.PopPane(tree, node.RolePrimary); return err }},
		{name: "pop with behavior", run: func() error { _, err := mutate.PopWithPaneBehavior(tree, mutate.PopLatest); return err }},
	}
	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, mutate.ErrNoActivePanes) {
				t.Fatalf("error = %v, want ErrNoActivePanes", err)
			}
		})
	}
}
