// Package pathing provides the all-pairs shortest-path engine used to build
// the auxiliary network's admissible arc sets and to refresh each supply
// token's private routing tables.
//
// The engine only ever sees the auxiliary network's capacity/cost matrices
// (or a token's private, mask-restricted view of them); it has no notion of
// scenarios, tokens or fixed arcs.
package pathing

import (
	"robmcf/internal/matrix"
)

// FloydWarshall computes all-pairs shortest distances and a predecessor
// matrix over the arcs where capacities[x][y] > 0. Unreachable distances are
// matrix.Infinity; predecessor entries for unreachable pairs are also
// matrix.Infinity ("none"). The diagonal predecessor P[v][v] = v.
//
// Addition during relaxation saturates, so an already-infinite distance
// plugged into i->k->j relaxation cannot wrap around into a small number.
func FloydWarshall(capacities, costs *matrix.Matrix[uint64]) (dist, prev *matrix.Matrix[uint64]) {
	n := costs.Rows()
	dist = matrix.New(n, n, matrix.Infinity)
	prev = matrix.New(n, n, matrix.Infinity)

	for _, idx := range capacities.Indices() {
		x, y := idx.Row, idx.Col
		if capacities.Get(x, y) > 0 {
			dist.Set(x, y, costs.Get(x, y))
			prev.Set(x, y, uint64(x))
		}
	}
	for v := 0; v < n; v++ {
		dist.Set(v, v, 0)
		prev.Set(v, v, uint64(v))
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			dik := dist.Get(i, k)
			if dik == matrix.Infinity {
				continue
			}
			for j := 0; j < n; j++ {
				newDist := saturatingAdd(dik, dist.Get(k, j))
				if dist.Get(i, j) > newDist {
					dist.Set(i, j, newDist)
					prev.Set(i, j, prev.Get(k, j))
				}
			}
		}
	}

	return dist, prev
}

func saturatingAdd(a, b uint64) uint64 {
	if a > matrix.Infinity-b {
		return matrix.Infinity
	}
	return a + b
}
