package transform

import (
	"slices"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/dag"
)

func build(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New()
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	changed := BreakCycles(g)

	if len(changed) != 0 {
		t.Errorf("BreakCycles() changed %v, want none", changed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_TwoCycle(t *testing.T) {
	g := build([]string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	changed := BreakCycles(g)

	if !slices.Equal(changed, []dag.Edge{{From: "b", To: "a"}}) {
		t.Errorf("BreakCycles() = %v, want [b→a]", changed)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.FindCycle() != nil {
		t.Error("graph still cyclic")
	}
}

func TestBreakCycles_Triangle(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	changed := BreakCycles(g)

	if !slices.Equal(changed, []dag.Edge{{From: "c", To: "a"}}) {
		t.Fatalf("BreakCycles() = %v, want [c→a]", changed)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3 (reversed, not removed)", g.EdgeCount())
	}
	want := dag.Edge{From: "a", To: "c", Reversed: true}
	if !slices.Contains(g.Edges(), want) {
		t.Errorf("Edges() = %v, want to contain %v", g.Edges(), want)
	}
	if g.FindCycle() != nil {
		t.Error("graph still cyclic")
	}
}

func TestBreakCycles_SelfLoop(t *testing.T) {
	g := build([]string{"a", "b"}, [][2]string{{"a", "a"}, {"a", "b"}})

	changed := BreakCycles(g)

	if !slices.Equal(changed, []dag.Edge{{From: "a", To: "a"}}) {
		t.Errorf("BreakCycles() = %v", changed)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBreakCycles_Deterministic(t *testing.T) {
	ids := []string{"e", "d", "c", "b", "a"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}, {"d", "e"}, {"e", "c"}}

	first := BreakCycles(build(ids, edges))
	for range 20 {
		if got := BreakCycles(build(ids, edges)); !slices.Equal(got, first) {
			t.Fatalf("BreakCycles() = %v, previously %v", got, first)
		}
	}
}

func TestAssignLayers(t *testing.T) {
	g := build(
		[]string{"report", "fetch", "clean", "load"},
		[][2]string{{"fetch", "clean"}, {"clean", "load"}, {"fetch", "report"}, {"load", "report"}},
	)

	AssignLayers(g)

	want := map[string]int{"fetch": 0, "clean": 1, "load": 2, "report": 3}
	for id, rank := range want {
		n, _ := g.Node(id)
		if n.Rank != rank {
			t.Errorf("%s.Rank = %d, want %d", id, n.Rank, rank)
		}
	}
}

func TestAssignLayers_Disconnected(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}})

	AssignLayers(g)

	if got := dag.NodeIDs(g.NodesInRank(0)); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("rank 0 = %v, want [a c]", got)
	}
}

func TestSubdivide(t *testing.T) {
	g := build(
		[]string{"fetch", "clean", "load", "report"},
		[][2]string{{"fetch", "clean"}, {"clean", "load"}, {"load", "report"}, {"fetch", "report"}},
	)
	AssignLayers(g)

	chains := Subdivide(g)

	if len(chains) != 4 {
		t.Fatalf("len(chains) = %d, want 4", len(chains))
	}
	long := chains[3]
	wantPath := []string{"fetch", "fetch_report_v1", "fetch_report_v2", "report"}
	if !slices.Equal(long.Path, wantPath) {
		t.Errorf("Path = %v, want %v", long.Path, wantPath)
	}
	if got := long.Virtuals(); len(got) != 2 {
		t.Errorf("Virtuals() = %v", got)
	}
	for _, id := range long.Virtuals() {
		n, ok := g.Node(id)
		if !ok || !n.IsVirtual() || n.Origin != long.Edge {
			t.Errorf("virtual node %s = %+v", id, n)
		}
	}
	if chains[0].Virtuals() != nil {
		t.Errorf("short edge got virtuals %v", chains[0].Virtuals())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after Subdivide: %v", err)
	}
}

func TestSubdivide_IDCollision(t *testing.T) {
	g := build([]string{"a", "a_c_v1", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	AssignLayers(g)

	chains := Subdivide(g)

	if got := chains[2].Virtuals(); !slices.Equal(got, []string{"a_c_v1__1"}) {
		t.Errorf("Virtuals() = %v, want [a_c_v1__1]", got)
	}
}

func TestSubdivide_KeepsReversedFlag(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	BreakCycles(g)
	AssignLayers(g)
	Subdivide(g)

	reversed := 0
	for _, e := range g.Edges() {
		if e.Reversed {
			reversed++
		}
	}
	if reversed != 2 {
		t.Errorf("reversed hops = %d, want 2", reversed)
	}
}
