package mutate_test

import (
	"errors"
	"testing"

	"github.com/waypost/navtree/mutate"
	"github.com/waypost/navtree/node"
)

func TestPush_AppendsToActiveStack(t *testing.T) {
	tree := node.NavNode(mustStack(t, mustScreen(t, "home")))

	for _, route := range []string{"feed", "detail"} {
		next, err := mutate.Push(tree, testDest{Name: route})
		if err != nil {
			t.Fatalf("Push(%q) failed: %v", route, err)
		}
		tree = next
	}

	got := routes(t, activeStack(t, tree))
	want := []string{"home", "feed", "detail"}
	if !equalRoutes(got, want) {
		t.Fatalf("stack routes = %v, want %v", got, want)
	}

	leaf, ok := node.ActiveLeaf(tree)
	if !ok {
		t.Fatal("no active leaf")
	}
	if leaf.Destination().Route() != "detail" {
		t.Fatalf("active leaf route = %q, want %q", leaf.Destination().Route(), "detail")
	}
	if leaf.ParentKey() != tree.Key() {
		t.Fatalf("pushed screen parent key = %q, want stack key %q", leaf.ParentKey(), tree.Key())
	}
}

func TestPush_PreservesUntouchedSiblings(t *testing.T) {
	active := mustStack(t, mustScreen(t, "home"))
	background := mustStack(t, mustScreen(t, "search"))
	tree := mustTabs(t, 0, active, background)

	rebuilt, err := mutate.Push(tree, testDest{Name: "feed"})
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	kept, ok := node.FindByKey(rebuilt, background.Key())
	if !ok {
		t.Fatal("background stack missing after push")
	}
	if kept != node.NavNode(background) {
		t.Fatal("background stack was rebuilt, want the same node by reference")
	}

	// The input tree stays as it was before the push.
	if got := routes(t, activeStack(t, tree)); !equalRoutes(got, []string{"home"}) {
		t.Fatalf("original tree mutated, active routes = %v", got)
	}
	if got := routes(t, activeStack(t, rebuilt)); !equalRoutes(got, []string{"home", "feed"}) {
		t.Fatalf("rebuilt active routes = %v", got)
	}
}

func TestPop_UndoesPush(t *testing.T) {
	tree := node.NavNode(mustTabs(t, 0,
		mustStack(t, mustScreen(t, "home"), mustScreen(t, "feed")),
		mustStack(t, mustScreen(t, "search")),
	))

	pushed, err := mutate.Push(tree, testDest{Name: "detail"})
	if err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	popped, err := mutate.Pop(pushed, mutate.PreserveEmpty)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if !treesEqual(t, popped, tree) {
		t.Fatal("pop after push does not restore the original tree")
	}
}

func TestPop_PreserveEmptyRefusesLastEntry(t *testing.T) {
	tree := mustStack(t, mustScreen(t, "home"))

	got, err := mutate.Pop(tree, mutate.PreserveEmpty)
	if !errors.Is(err, mutate.ErrCannotPop) {
		t.Fatalf("Pop error = %v, want ErrCannotPop", err)
	}
	if got != node.NavNode(tree) {
		t.Fatal("refused pop must return the input tree")
	}
}

func TestPop_CascadeRemovesEmptiedStack(t *testing.T) {
	inner := mustStack(t, mustScreen(t, "detail"))
	tree := mustStack(t, mustScreen(t, "home"), inner)

	got, err := mutate.Pop(tree, mutate.Cascade)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if _, ok := node.FindByKey(got, inner.Key()); ok {
		t.Fatal("emptied stack still present after cascade")
	}
	if got := routes(t, activeStack(t, got)); !equalRoutes(got, []string{"home"}) {
		t.Fatalf("active routes = %v, want [home]", got)
	}
}

func TestPop_CascadeRefusedAcrossTabsBoundary(t *testing.T) {
	tree := mustTabs(t, 0,
		mustStack(t, mustScreen(t, "home")),
		mustStack(t, mustScreen(t, "search")),
	)

	_, err := mutate.Pop(tree, mutate.Cascade)
	if !errors.Is(err, mutate.ErrIllegalCascade) {
		t.Fatalf("Pop error = %v, want ErrIllegalCascade", err)
	}
}

func TestPop_CascadeAtRootRefused(t *testing.T) {
	tree := mustStack(t, mustScreen(t, "home"))

	_, err := mutate.Pop(tree, mutate.Cascade)
	if !errors.Is(err, mutate.ErrCannotPop) {
		t.Fatalf("Pop error = %v, want ErrCannotPop", err)
	}
}

func TestPushToStack_TargetsExplicitStack(t *testing.T) {
	active := mustStack(t, mustScreen(t, "home"))
	background := mustStack(t, mustScreen(t, "search"))
	tree := mustTabs(t, 0, active, background)

	rebuilt, err := mutate.PushToStack(tree, background.Key(), testDest{Name: "results"})
	if err != nil {
		t.Fatalf("PushToStack failed: %v", err)
	}

	found, ok := node.FindByKey(rebuilt, background.Key())
	if !ok {
		t.Fatal("background stack missing")
	}
	if got := routes(t, found.(*node.Stack)); !equalRoutes(got, []string{"search", "results"}) {
		t.Fatalf("background routes = %v, want [search results]", got)
	}
	// The active stack stays where it was.
	if got := routes(t, activeStack(t, rebuilt)); !equalRoutes(got, []string{"home"}) {
		t.Fatalf("active routes = %v, want [home]", got)
	}
}

func TestPushToStack_Errors(t *testing.T) {
	screen := mustScreen(t, "home")
	tree := mustStack(t, screen)

	tests := []struct {
		name string
		key  node.Key
		want error
	}{
		{name: "unknown key", key: node.Key("missing"), want: mutate.ErrNodeNotFound},
		{name: "key of a screen", key: screen.Key(), want: mutate.ErrTypeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mutate.PushToStack(tree, tc.key, testDest{Name: "x"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("PushToStack error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestPopTo_TruncatesToMatch(t *testing.T) {
	tree := mustStack(t,
		mustScreen(t, "home"),
		mustScreen(t, "feed"),
		mustScreen(t, "detail"),
		mustScreen(t, "comments"),
	)

	got, err := mutate.PopToRoute(tree, "feed")
	if err != nil {
		t.Fatalf("PopToRoute failed: %v", err)
	}
	if r := routes(t, activeStack(t, got)); !equalRoutes(r, []string{"home", "feed"}) {
		t.Fatalf("routes = %v, want [home feed]", r)
	}

	// A second application finds the target already on top and changes nothing.
	again, err := mutate.PopToRoute(got, "feed")
	if err != nil {
		t.Fatalf("second PopToRoute failed: %v", err)
	}
	if again != got {
		t.Fatal("PopToRoute is not idempotent")
	}
}

func TestPopTo_Inclusive(t *testing.T) {
	tree := mustStack(t,
		mustScreen(t, "home"),
		mustScreen(t, "feed"),
		mustScreen(t, "detail"),
	)

	got, err := mutate.PopTo(tree, true, func(n node.NavNode) bool {
		screen, ok := n.(*node.Screen)
		return ok && screen.Destination().Route() == "feed"
	})
	if err != nil {
		t.Fatalf("PopTo failed: %v", err)
	}
	if r := routes(t, activeStack(t, got)); !equalRoutes(r, []string{"home"}) {
		t.Fatalf("routes = %v, want [home]", r)
	}
}

func TestPopTo_MatchesTopmostDuplicate(t *testing.T) {
	tree := mustStack(t,
		mustScreen(t, "detail"),
		mustScreen(t, "feed"),
		mustScreen(t, "detail"),
		mustScreen(t, "comments"),
	)

	got, err := mutate.PopToRoute(tree, "detail")
	if err != nil {
		t.Fatalf("PopToRoute failed: %v", err)
	}
	if r := routes(t, activeStack(t, got)); !equalRoutes(r, []string{"detail", "feed", "detail"}) {
		t.Fatalf("routes = %v, want the scan to stop at the topmost match", r)
	}
}

func TestPopTo_NoMatchIsNoop(t *testing.T) {
	tree := mustStack(t, mustScreen(t, "home"), mustScreen(t, "feed"))

	got, err := mutate.PopToRoute(tree, "missing")
	if err != nil {
		t.Fatalf("PopToRoute failed: %v", err)
	}
	if got != node.NavNode(tree) {
		t.Fatal("no-op PopTo must return the input tree")
	}
}

func TestReplace_SwapsTopEntry(t *testing.T) {
	tree := mustStack(t, mustScreen(t, "home"), mustScreen(t, "feed"))

	got, err := mutate.Replace(tree, testDest{Name: "detail"})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if r := routes(t, activeStack(t, got)); !equalRoutes(r, []string{"home", "detail"}) {
		t.Fatalf("routes = %v, want [home detail]", r)
	}
}

func TestClearAndPush_ResetsStack(t *testing.T) {
	tree := mustStack(t,
		mustScreen(t, "home"),
		mustScreen(t, "feed"),
		mustScreen(t, "detail"),
	)

	got, err := mutate.ClearAndPush(tree, testDest{Name: "login"})
	if err != nil {
		t.Fatalf("ClearAndPush failed: %v", err)
	}
	if r := routes(t, activeStack(t, got)); !equalRoutes(r, []string{"login"}) {
		t.Fatalf("routes = %v, want [login]", r)
	}
}

func TestStackOps_NoActiveStack(t *testing.T) {
	tree := mustScreen(t, "home")

	ops := []struct {
		name string
		run  func() error
	}{
		{name: "push", run: func() error { _, err := mutate.Push(tree, testDest{Name: "x"}); return err }},
		{name: "pop", run: func() error { _, err := mutate.Pop(tree, mutate.PreserveEmpty); return err }},
		{name: "pop to", run: func() error { _, err := mutate.PopToRoute(tree, "x"); return err }},
		{name: "replace", run: func() error { _, err := mutate.Replace(tree, testDest{Name: "x"}); return err }},
		{name: "clear and push", run: func() error { _, err := mutate.ClearAndPush(tree, testDest{Name: "x"}); return err }},
	}
	for _, tc := range ops {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, mutate.ErrNoActiveStack) {
				t.Fatalf("error = %v, want ErrNoActiveStack", err)
			}
		})
	}
}
