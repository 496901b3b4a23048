package surface

import (
	"bytes"
	"slices"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/layout"
	"github.com/matzehuels/flowgraph/pkg/scene"
	"github.com/matzehuels/flowgraph/pkg/theme"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

func buildScene(t *testing.T) scene.Scene {
	t.Helper()
	g, err := layout.Compute([]workflow.Node{
		{ID: "a", Name: "build", State: workflow.StateCompleted},
		{ID: "b", Name: "test", State: workflow.StateExecuting, Deps: []string{"build"}},
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return scene.Build(g, theme.Light(), "/runs/1")
}

func TestDispatchOrder(t *testing.T) {
	m := NewMemory(geom.Size{W: 800, H: 600})

	var calls []string
	m.Listen(func(Event) bool { calls = append(calls, "first"); return false })
	m.Listen(func(ev Event) bool {
		calls = append(calls, "second")
		return ev.Kind == Click
	})

	if m.Dispatch(Event{Kind: PointerDown}) {
		t.Error("PointerDown should not be consumed")
	}
	if want := []string{"second", "first"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}

	calls = nil
	if !m.Dispatch(Event{Kind: Click}) {
		t.Error("Click should be consumed")
	}
	if want := []string{"second"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestListenRelease(t *testing.T) {
	m := NewMemory(geom.Size{W: 100, H: 100})
	r1 := m.Listen(func(Event) bool { return false })
	r2 := m.Listen(func(Event) bool { return false })
	if m.Listeners() != 2 {
		t.Fatalf("Listeners() = %d, want 2", m.Listeners())
	}

	r1()
	r1()
	if m.Listeners() != 1 {
		t.Errorf("after double release Listeners() = %d, want 1", m.Listeners())
	}
	r2()
	if m.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", m.Listeners())
	}
}

func TestReleaseDuringDispatch(t *testing.T) {
	m := NewMemory(geom.Size{W: 100, H: 100})
	hits := 0
	var release func()
	release = m.Listen(func(Event) bool {
		hits++
		release()
		return false
	})

	m.Dispatch(Event{Kind: Click})
	m.Dispatch(Event{Kind: Click})
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestContentLifecycle(t *testing.T) {
	m := NewMemory(geom.Size{W: 800, H: 600})
	if _, ok := m.Content(); ok {
		t.Fatal("new surface should be empty")
	}
	if m.SVG() != nil {
		t.Error("empty surface should render nothing")
	}

	s := buildScene(t)
	m.Replace(Content{Scene: s, Controls: true})
	m.SetTransform(geom.Transform{Scale: 2, X: 10, Y: 20})

	svg := m.SVG()
	for _, want := range []string{`transform="matrix(2 0 0 2 10 20)"`, `class="zoom-controls"`, `data-node-id="a"`} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("SVG missing %q", want)
		}
	}

	m.SetVisible(false)
	if m.SVG() != nil {
		t.Error("hidden surface should render nothing")
	}
	m.SetVisible(true)

	m.Clear()
	if _, ok := m.Content(); ok {
		t.Error("Clear should remove content")
	}
	if m.Transform() != geom.Identity {
		t.Errorf("Clear should reset transform, got %+v", m.Transform())
	}
	if m.Replaces() != 1 {
		t.Errorf("Replaces() = %d, want 1", m.Replaces())
	}
}

func TestResize(t *testing.T) {
	m := NewMemory(geom.Size{W: 800, H: 600})
	m.Resize(geom.Size{W: 1024, H: 768})
	if got := m.Size(); got != (geom.Size{W: 1024, H: 768}) {
		t.Errorf("Size() = %+v", got)
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{PointerDown, "pointerdown"},
		{PointerMove, "pointermove"},
		{PointerUp, "pointerup"},
		{Wheel, "wheel"},
		{Click, "click"},
		{EventKind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
