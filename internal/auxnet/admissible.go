package auxnet

import (
	"robmcf/internal/matrix"
	"robmcf/internal/options"
)

// generateAdmissibleSets builds A(s, t) for every ordered pair with s != t
// and a finite distance: a boolean mask over the arcs (x, y) whose detour
// cost dist[s,x] + costs[x,y] + dist[y,t] fits within the configured radius
// around the shortest s->t path. Arcs leading into s, out of t, or with no
// capacity are never admissible.
func generateAdmissibleSets(dist, costs, capacities *matrix.Matrix[uint64], deltaFn options.DeltaFunction) map[pair]*matrix.Matrix[bool] {
	n := dist.Rows()
	sets := make(map[pair]*matrix.Matrix[bool])

	for _, stIdx := range dist.Indices() {
		s, t := stIdx.Row, stIdx.Col
		if s == t || dist.Get(s, t) == matrix.Infinity {
			continue
		}
		radius := deltaFn.Apply(dist.Get(s, t))
		mask := matrix.New(n, n, false)

		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				if x == y || y == s || x == t || capacities.Get(x, y) == 0 {
					continue
				}
				if dist.Get(s, x) == matrix.Infinity || dist.Get(y, t) == matrix.Infinity {
					continue
				}
				detour := saturatingAdd3(dist.Get(s, x), costs.Get(x, y), dist.Get(y, t))
				if detour <= radius {
					mask.Set(x, y, true)
				}
			}
		}
		sets[pair{s, t}] = mask
	}
	return sets
}

func saturatingAdd3(a, b, c uint64) uint64 {
	return saturatingAdd(saturatingAdd(a, b), c)
}

func saturatingAdd(a, b uint64) uint64 {
	if a > matrix.Infinity-b {
		return matrix.Infinity
	}
	return a + b
}
