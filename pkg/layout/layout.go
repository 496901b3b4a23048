package layout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/flowgraph/pkg/dag"
	"github.com/matzehuels/flowgraph/pkg/dag/transform"
	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/geom"
	"github.com/matzehuels/flowgraph/pkg/workflow"
)

// Node is a payload node with its position. X and Y are the box center.
type Node struct {
	workflow.Node
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"width"`
	H     float64 `json:"height"`
	Rank  int     `json:"rank"`  // column, 0 = leftmost
	Order int     `json:"order"` // position within the rank, 0 = topmost
}

// Center returns the box center.
func (n Node) Center() geom.Point { return geom.Point{X: n.X, Y: n.Y} }

// Rect returns the box in scene coordinates.
func (n Node) Rect() geom.Rect {
	return geom.Rect{X: n.X - n.W/2, Y: n.Y - n.H/2, W: n.W, H: n.H}
}

// Edge is a routed dependency. Points run from the prerequisite (From) to the
// dependent (To) and always hold at least two points.
type Edge struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Points   []geom.Point `json:"points"`
	Reversed bool         `json:"reversed,omitempty"` // routed against the rank direction to break a cycle
}

// Graph is the positioned graph: nodes in payload order, edges in derivation
// order, and the bounding size including margins.
type Graph struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
}

// Size returns the bounding size.
func (g Graph) Size() geom.Size { return geom.Size{W: g.Width, H: g.Height} }

// Node looks a node up by name.
func (g Graph) Node(name string) (Node, bool) {
	i := slices.IndexFunc(g.Nodes, func(n Node) bool { return n.Name == name })
	if i < 0 {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// Compute lays nodes out left to right.
//
// Dependencies naming no node are skipped. The result depends only on nodes
// and options: identical input yields identical coordinates. Compute fails
// with INVALID_PAYLOAD when node names are empty or duplicated, with
// CYCLIC_GRAPH under [CycleReject] when the dependencies form a cycle, and
// with LAYOUT_FAILED if the engine itself breaks.
func Compute(nodes []workflow.Node, opts ...Option) (g Graph, err error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Graph{}, err
	}
	if err := workflow.Validate(nodes); err != nil {
		return Graph{}, err
	}
	if len(nodes) == 0 {
		return Graph{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			g = Graph{}
			err = errors.New(errors.ErrCodeLayoutFailed, "layout of %d nodes panicked: %v", len(nodes), r)
		}
	}()

	e := &engine{opts: o}
	return e.run(nodes)
}

type engine struct {
	opts Options
	g    *dag.DAG
	pos  map[string]geom.Point
	size map[string]geom.Size
}

func (e *engine) run(nodes []workflow.Node) (Graph, error) {
	edges := workflow.Edges(nodes)
	e.g = dag.New()
	for _, n := range nodes {
		if err := e.g.AddNode(dag.Node{ID: n.Name}); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeLayoutFailed, err, "add node %q", n.Name)
		}
	}
	for _, ed := range edges {
		if err := e.g.AddEdge(dag.Edge{From: ed.From, To: ed.To}); err != nil {
			return Graph{}, errors.Wrap(errors.ErrCodeLayoutFailed, err, "add edge %s→%s", ed.From, ed.To)
		}
	}

	if e.opts.Cycles == CycleReject {
		if cycle := e.g.FindCycle(); cycle != nil {
			return Graph{}, errors.New(errors.ErrCodeCyclicGraph, "dependency cycle: %s", strings.Join(cycle, " → "))
		}
	}
	if changed := transform.BreakCycles(e.g); len(changed) > 0 {
		e.opts.Logger.Debug("broke dependency cycles", "edges", len(changed))
	}
	transform.AssignLayers(e.g)
	chains := transform.Subdivide(e.g)
	if err := e.g.Validate(); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeLayoutFailed, err, "normalize graph")
	}

	orders := e.opts.Orderer.OrderRanks(e.g)
	e.place(orders)

	out := Graph{Nodes: make([]Node, 0, len(nodes))}
	for _, n := range nodes {
		dn, _ := e.g.Node(n.Name)
		p := e.pos[n.Name]
		out.Nodes = append(out.Nodes, Node{
			Node:  n,
			X:     p.X,
			Y:     p.Y,
			W:     e.opts.NodeWidth,
			H:     e.opts.NodeHeight,
			Rank:  dn.Rank,
			Order: slices.Index(orders[dn.Rank], n.Name),
		})
	}
	out.Edges = e.route(edges, chains)
	out.Width, out.Height = e.bounds()

	e.opts.Logger.Debug("layout computed",
		"nodes", len(out.Nodes), "edges", len(out.Edges), "ranks", e.g.RankCount(),
		"crossings", dag.CountCrossings(e.g, orders))
	return out, nil
}

// place assigns centers. Ranks map to columns; within a rank each node is
// pulled towards the median of its predecessors while keeping order and
// minimum spacing. The content is then shifted so its top-left corner sits at
// the margin.
func (e *engine) place(orders map[int][]string) {
	o := e.opts
	e.pos = make(map[string]geom.Point, e.g.NodeCount())
	e.size = make(map[string]geom.Size, e.g.NodeCount())
	for _, n := range e.g.Nodes() {
		if n.IsVirtual() {
			e.size[n.ID] = geom.Size{}
			continue
		}
		e.size[n.ID] = geom.Size{W: o.NodeWidth, H: o.NodeHeight}
	}

	for _, r := range e.g.RankIDs() {
		x := float64(r)*(o.NodeWidth+o.RankSpacing) + o.NodeWidth/2
		ids := orders[r]
		prevBottom := 0.0
		for i, id := range ids {
			h := e.size[id].H
			minY := h / 2
			if i > 0 {
				minY = prevBottom + o.NodeSpacing + h/2
			}
			y := minY
			if want, ok := e.parentMedian(id); ok && want > y {
				y = want
			}
			e.pos[id] = geom.Point{X: x, Y: y}
			prevBottom = y + h/2
		}
	}

	minX, minY := 0.0, 0.0
	first := true
	for id, p := range e.pos {
		s := e.size[id]
		if first || p.X-s.W/2 < minX {
			minX = p.X - s.W/2
		}
		if first || p.Y-s.H/2 < minY {
			minY = p.Y - s.H/2
		}
		first = false
	}
	dx, dy := o.Margin-minX, o.Margin-minY
	for id, p := range e.pos {
		e.pos[id] = geom.Point{X: p.X + dx, Y: p.Y + dy}
	}
}

func (e *engine) parentMedian(id string) (float64, bool) {
	parents := e.g.Parents(id)
	if len(parents) == 0 {
		return 0, false
	}
	ys := make([]float64, 0, len(parents))
	for _, p := range parents {
		if pt, ok := e.pos[p]; ok {
			ys = append(ys, pt.Y)
		}
	}
	if len(ys) == 0 {
		return 0, false
	}
	slices.Sort(ys)
	mid := len(ys) / 2
	if len(ys)%2 == 1 {
		return ys[mid], true
	}
	return (ys[mid-1] + ys[mid]) / 2, true
}

// route builds one polyline per payload edge: the right side of the upstream
// box, the centers of the virtual nodes, the left side of the downstream box.
// Edges reversed for cycle breaking are routed along their chain and then
// flipped, so points always run prerequisite → dependent.
func (e *engine) route(edges []workflow.Edge, chains []transform.Chain) []Edge {
	byEdge := make(map[[2]string]transform.Chain, len(chains))
	for _, c := range chains {
		byEdge[[2]string{c.Edge.From, c.Edge.To}] = c
	}

	out := make([]Edge, 0, len(edges))
	for _, we := range edges {
		c, ok := byEdge[[2]string{we.From, we.To}]
		reversed := false
		if !ok {
			c, ok = byEdge[[2]string{we.To, we.From}]
			reversed = true
		}
		if !ok {
			// self-dependency, dropped by cycle breaking
			continue
		}
		pts := e.chainPoints(c.Path)
		if reversed {
			slices.Reverse(pts)
		}
		out = append(out, Edge{From: we.From, To: we.To, Points: pts, Reversed: reversed})
	}
	return out
}

func (e *engine) chainPoints(path []string) []geom.Point {
	pts := make([]geom.Point, 0, len(path))
	for i, id := range path {
		p, s := e.pos[id], e.size[id]
		switch i {
		case 0:
			pts = append(pts, geom.Point{X: p.X + s.W/2, Y: p.Y})
		case len(path) - 1:
			pts = append(pts, geom.Point{X: p.X - s.W/2, Y: p.Y})
		default:
			pts = append(pts, p)
		}
	}
	return pts
}

func (e *engine) bounds() (float64, float64) {
	maxX, maxY := 0.0, 0.0
	for id, p := range e.pos {
		s := e.size[id]
		maxX = max(maxX, p.X+s.W/2)
		maxY = max(maxY, p.Y+s.H/2)
	}
	return maxX + e.opts.Margin, maxY + e.opts.Margin
}

// String renders a compact text description, used in debug output.
func (g Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "graph %gx%g", g.Width, g.Height)
	for _, n := range g.Nodes {
		fmt.Fprintf(&b, "\n  %s r%d o%d (%g,%g)", n.Name, n.Rank, n.Order, n.X, n.Y)
	}
	for _, ed := range g.Edges {
		fmt.Fprintf(&b, "\n  %s → %s %d pts", ed.From, ed.To, len(ed.Points))
	}
	return b.String()
}
