package layout

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/dag"
)

// Orderer decides the top-to-bottom sequence of nodes within each rank.
// The DAG it receives is ranked and subdivided, so every edge joins
// consecutive ranks.
type Orderer interface {
	OrderRanks(g *dag.DAG) map[int][]string
}

// Barycentric is the classic Sugiyama barycenter heuristic. Each sweep sorts
// a rank by the mean position of its neighbours in the adjacent rank, then a
// transpose pass swaps neighbours while that removes crossings. Sweeps
// alternate direction and the ordering with the fewest crossings wins.
//
// Ties keep the current order, and the initial order is insertion order, so
// the result is a pure function of the input.
type Barycentric struct {
	Passes int
}

// OrderRanks implements Orderer.
func (b Barycentric) OrderRanks(g *dag.DAG) map[int][]string {
	ranks := g.RankIDs()
	orders := make(map[int][]string, len(ranks))
	for _, r := range ranks {
		orders[r] = dag.NodeIDs(g.NodesInRank(r))
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)
	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		down := pass%2 == 0
		if down {
			for i := 1; i < len(ranks); i++ {
				sortByBarycenter(g, orders, ranks[i], ranks[i-1], true)
			}
		} else {
			for i := len(ranks) - 2; i >= 0; i-- {
				sortByBarycenter(g, orders, ranks[i], ranks[i+1], false)
			}
		}
		transpose(g, orders, ranks)

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			bestCrossings = c
			best = cloneOrders(orders)
		}
	}
	return best
}

func sortByBarycenter(g *dag.DAG, orders map[int][]string, rank, adj int, useParents bool) {
	adjPos := dag.PosMap(orders[adj])
	ids := orders[rank]
	keys := make(map[string]float64, len(ids))
	for i, id := range ids {
		nbrs := g.Children(id)
		if useParents {
			nbrs = g.Parents(id)
		}
		sum, n := 0.0, 0
		for _, nb := range nbrs {
			if p, ok := adjPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			keys[id] = float64(i)
			continue
		}
		keys[id] = sum / float64(n)
	}
	slices.SortStableFunc(ids, func(a, b string) int {
		switch ka, kb := keys[a], keys[b]; {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}

func transpose(g *dag.DAG, orders map[int][]string, ranks []int) {
	for improved := true; improved; {
		improved = false
		for _, r := range ranks {
			ids := orders[r]
			prev, next := dag.PosMap(orders[r-1]), dag.PosMap(orders[r+1])
			for i := 0; i+1 < len(ids); i++ {
				a, b := ids[i], ids[i+1]
				cur := dag.CountPairCrossings(g, a, b, prev, true) + dag.CountPairCrossings(g, a, b, next, false)
				swapped := dag.CountPairCrossings(g, b, a, prev, true) + dag.CountPairCrossings(g, b, a, next, false)
				if swapped < cur {
					ids[i], ids[i+1] = b, a
					improved = true
				}
			}
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
