package transform

import (
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/dag"
)

// Chain is the path an original edge takes through the subdivided graph:
// its source, the virtual nodes inserted for it, and its target.
type Chain struct {
	Edge dag.Edge
	Path []string
}

// Virtuals returns the IDs of the virtual nodes in the chain.
func (c Chain) Virtuals() []string {
	if len(c.Path) <= 2 {
		return nil
	}
	return c.Path[1 : len(c.Path)-1]
}

// Subdivide replaces every edge spanning more than one rank with a chain of
// single-rank edges through [dag.NodeKindVirtual] nodes:
//
//	Before: fetch (rank 0) → report (rank 3)
//	After:  fetch → fetch_report_v1 → fetch_report_v2 → report
//
// It returns one [Chain] per edge, in edge order, including edges that did not
// need subdividing (their Path is just source and target). Layout uses the
// chains to turn waypoint positions back into one polyline per edge.
//
// Virtual nodes record the edge they were inserted for in [dag.Node.Origin].
// Their IDs never collide with existing node IDs; a numeric suffix is added
// when needed.
func Subdivide(g *dag.DAG) []Chain {
	gen := newIDGen(g.Nodes())
	edges := g.Edges()
	chains := make([]Chain, 0, len(edges))

	for _, e := range edges {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK {
			continue
		}
		if dst.Rank <= src.Rank+1 {
			chains = append(chains, Chain{Edge: e, Path: []string{src.ID, dst.ID}})
			continue
		}

		g.RemoveEdge(e.From, e.To)
		path := []string{src.ID}
		prev := src.ID
		for rank := src.Rank + 1; rank < dst.Rank; rank++ {
			id := gen.next(e, rank-src.Rank)
			mustAdd(g.AddNode(dag.Node{ID: id, Rank: rank, Kind: dag.NodeKindVirtual, Origin: e}))
			mustAdd(g.AddEdge(dag.Edge{From: prev, To: id, Reversed: e.Reversed}))
			path = append(path, id)
			prev = id
		}
		mustAdd(g.AddEdge(dag.Edge{From: prev, To: dst.ID, Reversed: e.Reversed}))
		chains = append(chains, Chain{Edge: e, Path: append(path, dst.ID)})
	}
	return chains
}

func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(e dag.Edge, step int) string {
	prefix := fmt.Sprintf("%s_%s_v%d", e.From, e.To, step)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
