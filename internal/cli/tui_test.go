package cli

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/view"
)

func newTestModel(t *testing.T, payload string) viewModel {
	t.Helper()
	path := writeFile(t, t.TempDir(), "graph.json", payload)
	m, err := newViewModel(path, geom.Size{W: 800, H: 600}, view.Config{
		BasePath: "/runs/42",
		Logger:   log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("newViewModel: %v", err)
	}
	return m
}

func press(t *testing.T, m viewModel, keys ...tea.KeyMsg) viewModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(viewModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func transformOf(t *testing.T, m viewModel) geom.Transform {
	t.Helper()
	tr, ok := m.view.Transform()
	if !ok {
		t.Fatal("view has no transform")
	}
	return tr
}

func TestViewModelMountsFitted(t *testing.T) {
	m := newTestModel(t, buildTest)
	if got, want := transformOf(t, m), (geom.Transform{Scale: 1, X: 170, Y: 236}); got != want {
		t.Errorf("transform = %+v, want %+v", got, want)
	}
	out := m.View()
	for _, want := range []string{"build", "test", "/runs/42/a", "scale 1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewModelPan(t *testing.T) {
	m := press(t, newTestModel(t, buildTest), tea.KeyMsg{Type: tea.KeyLeft})
	if got, want := transformOf(t, m), (geom.Transform{Scale: 1, X: 130, Y: 236}); got != want {
		t.Errorf("after left: %+v, want %+v", got, want)
	}
	m = press(t, m, runes("j"))
	if got, want := transformOf(t, m), (geom.Transform{Scale: 1, X: 130, Y: 276}); got != want {
		t.Errorf("after j: %+v, want %+v", got, want)
	}
	m = press(t, m, runes("f"))
	if got, want := transformOf(t, m), (geom.Transform{Scale: 1, X: 170, Y: 236}); got != want {
		t.Errorf("after fit: %+v, want %+v", got, want)
	}
}

func TestViewModelZoomControls(t *testing.T) {
	m := press(t, newTestModel(t, buildTest), runes("+"))
	if got := transformOf(t, m).Scale; math.Abs(got-1.4) > 1e-9 {
		t.Errorf("scale after + = %v, want 1.4", got)
	}
	m = press(t, m, runes("-"))
	if got := transformOf(t, m).Scale; math.Abs(got-1) > 1e-9 {
		t.Errorf("scale after - = %v, want 1", got)
	}
	if m.nav.count != 0 {
		t.Error("zoom controls must not navigate")
	}
}

func TestViewModelNavigate(t *testing.T) {
	m := press(t, newTestModel(t, buildTest), tea.KeyMsg{Type: tea.KeyEnter})
	if m.nav.last != "/runs/42/a" || m.nav.count != 1 {
		t.Errorf("navigation = %+v, want /runs/42/a once", *m.nav)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.nav.last != "/runs/42/b" {
		t.Errorf("after tab: last = %q", m.nav.last)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != 0 {
		t.Errorf("shift+tab: selected = %d", m.selected)
	}
}

func TestViewModelReloadKeepsTransform(t *testing.T) {
	m := press(t, newTestModel(t, buildTest), tea.KeyMsg{Type: tea.KeyLeft})
	before := transformOf(t, m)

	grown := `[
  {"id": "a", "name": "build", "deps": []},
  {"id": "b", "name": "test", "deps": ["build"]},
  {"id": "c", "name": "deploy", "deps": ["test"]}
]`
	if err := os.WriteFile(m.path, []byte(grown), 0o644); err != nil {
		t.Fatal(err)
	}
	m = press(t, m, runes("r"))
	if m.err != nil {
		t.Fatalf("reload: %v", m.err)
	}
	if got := transformOf(t, m); got != before {
		t.Errorf("transform after reload = %+v, want %+v", got, before)
	}
	if sc, _ := m.view.Scene(); len(sc.Nodes) != 3 {
		t.Errorf("scene has %d nodes, want 3", len(sc.Nodes))
	}
	if m.status != "reloaded 3 nodes" {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewModelSnapshot(t *testing.T) {
	m := press(t, newTestModel(t, buildTest), runes("s"))
	if m.err != nil {
		t.Fatalf("snapshot: %v", m.err)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(m.path), "graph.view.svg"))
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if !strings.Contains(string(data), "matrix(1 0 0 1 170 236)") {
		t.Error("snapshot should carry the current transform")
	}
}

func TestViewModelEmptyPayload(t *testing.T) {
	m := newTestModel(t, "[]")
	if m.view.Phase() != view.MountedEmpty {
		t.Fatalf("phase = %v", m.view.Phase())
	}
	if !strings.Contains(m.View(), "No graph to show") {
		t.Error("empty view should say so")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("+"), runes("s"))
	if m.err == nil {
		t.Error("snapshot of an empty surface should fail")
	}
}

func TestViewModelQuit(t *testing.T) {
	m := newTestModel(t, buildTest)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.view.Phase() != view.Destroyed {
		t.Errorf("phase = %v, want destroyed", m.view.Phase())
	}
}
