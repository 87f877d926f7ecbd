package pathing

import (
	"robmcf/internal/matrix"
	"robmcf/internal/rmerr"
)

// InvertPredecessors turns a predecessor matrix into a successor matrix: for
// every reachable (s, t), succ[s][t] is the next hop from s on the shortest
// s->t path. Unreachable pairs map to matrix.Infinity.
//
// It walks the predecessor chain back from each (s, t) exactly once, filling
// the successor matrix one hop at a time, and fails with
// rmerr.PathMatrixCorrupt if a chain never makes it back to s.
func InvertPredecessors(prev *matrix.Matrix[uint64]) (*matrix.Matrix[uint64], error) {
	n := prev.Rows()
	succ := matrix.New(n, n, matrix.Infinity)

	for _, idx := range prev.Indices() {
		s, t := idx.Row, idx.Col
		if succ.Get(s, t) != matrix.Infinity {
			continue
		}

		path, err := shortestPath(prev, s, t)
		if err != nil {
			return nil, err
		}
		if len(path) == 0 {
			continue
		}

		next := t
		if len(path) > 1 {
			next = path[1]
		}
		succ.Set(s, t, uint64(next))
	}

	return succ, nil
}

// shortestPath reconstructs the vertex sequence s, ..., t from the
// predecessor matrix by walking backwards from t.
func shortestPath(prev *matrix.Matrix[uint64], s, t int) ([]int, error) {
	if prev.Get(s, t) == matrix.Infinity {
		return nil, nil
	}

	path := []int{t}
	for s != t {
		p := prev.Get(s, t)
		if p == matrix.Infinity {
			return nil, rmerr.New(rmerr.CodePathMatrixCorrupt, "predecessor chain broke before reaching the source")
		}
		t = int(p)
		path = append(path, t)
	}

	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
