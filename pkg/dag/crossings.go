package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given
// rank orderings, summed over each pair of consecutive ranks. The orders map
// holds node IDs in top-to-bottom order for each rank; ranks missing from the
// map are treated as empty.
//
//	orders := map[int][]string{
//	    0: {"extract", "fetch"},
//	    1: {"transform", "load", "report"},
//	}
//	crossings := dag.CountCrossings(g, orders)
func CountCrossings(g *DAG, orders map[int][]string) int {
	ranks := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for _, r := range ranks {
		if next, ok := orders[r+1]; ok {
			crossings += CountLayerCrossings(g, orders[r], next)
		}
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent ranks using a
// Fenwick tree, in O(E log V) where E is the number of edges between the ranks
// and V the size of the next rank.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is an inversion in the sequence of target positions once edges are
// sorted by source position.
func CountLayerCrossings(g *DAG, from, to []string) int {
	if len(from) == 0 || len(to) == 0 {
		return 0
	}

	toPos := PosMap(to)

	type pair struct{ src, dst int }
	pairs := make([]pair, 0, len(from)*2)
	for i, id := range from {
		for _, child := range g.Children(id) {
			if pos, ok := toPos[child]; ok {
				pairs = append(pairs, pair{i, pos})
			}
		}
	}
	if len(pairs) < 2 {
		return 0
	}

	slices.SortFunc(pairs, func(a, b pair) int {
		if a.src != b.src {
			return a.src - b.src
		}
		return a.dst - b.dst
	})

	fenwick := make([]int, len(to)+1)
	crossings, seen := 0, 0
	for _, p := range pairs {
		lessOrEqual := 0
		for q := p.dst + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += seen - lessOrEqual

		seen++
		for i := p.dst + 1; i < len(fenwick); i += i & (-i) {
			fenwick[i]++
		}
	}
	return crossings
}

// CountPairCrossings counts the crossings between the edges of two nodes of
// the same rank when upper is placed before lower. If useParents is true the
// edges towards the previous rank are considered, otherwise those towards the
// next rank. adjPos maps the adjacent rank's node IDs to their positions.
//
// Comparing CountPairCrossings(g, a, b, ...) with CountPairCrossings(g, b, a, ...)
// tells a transposition heuristic whether swapping two neighbours helps.
func CountPairCrossings(g *DAG, upper, lower string, adjPos map[string]int, useParents bool) int {
	var un, ln []string
	if useParents {
		un, ln = g.Parents(upper), g.Parents(lower)
	} else {
		un, ln = g.Children(upper), g.Children(lower)
	}

	crossings := 0
	for _, u := range un {
		up, ok := adjPos[u]
		if !ok {
			continue
		}
		for _, l := range ln {
			if lp, ok := adjPos[l]; ok && up > lp {
				crossings++
			}
		}
	}
	return crossings
}
