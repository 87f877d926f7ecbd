// Package auxnet builds the auxiliary network (C3): the original network
// with each fixed arc replaced by a proxy vertex, the globally shortest-path
// tables over that augmented network, the admissible arc sets each token's
// private mask starts from, and the exploded per-scenario supply tokens.
package auxnet

import (
	"fmt"
	"sort"

	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/pathing"
	"robmcf/internal/rmerr"
	"robmcf/internal/token"
	"robmcf/pkg/domain"
)

// ProxyMapping is the builder's M: a proxy vertex p replacing the original
// fixed arc (OriginalSrc, OriginalDst). The proxy's own outgoing arc is
// (p, OriginalDst).
type ProxyMapping struct {
	Proxy        int
	OriginalSrc  int
	OriginalDst  int
}

// Target returns the vertex the proxy's outgoing arc leads to.
func (m ProxyMapping) Target() int { return m.OriginalDst }

// Auxiliary is the augmented network shared read-only by every scenario:
// n' = n + k vertices (k = number of fixed arcs), costs, the proxy mapping,
// and the globally shortest-path tables computed once during construction.
type Auxiliary struct {
	VertexCount    int
	OriginalCount  int
	Capacities     *matrix.Matrix[uint64]
	Costs          *matrix.Matrix[uint64]
	Distances      *matrix.Matrix[uint64]
	Successors     *matrix.Matrix[uint64]
	Proxies        []ProxyMapping
	AdmissibleSets map[pair]*matrix.Matrix[bool]
}

type pair struct{ s, t int }

// Build constructs the auxiliary network from a validated Network: fixed-arc
// duplication, a first Floyd-Warshall pass treating proxy arcs as unbounded,
// and the admissible arc sets every token's private mask starts from.
func Build(n *domain.Network) (*Auxiliary, error) {
	k := len(n.FixedArcs)
	n0 := n.VertexCount
	nPrime := n0 + k

	capacities := extend(n.Capacities, nPrime)
	costs := extend(n.Costs, nPrime)
	proxies := make([]ProxyMapping, k)

	for i, fa := range n.FixedArcs {
		proxy := n0 + i

		// the proxy's only outgoing arc carries the fixed arc's own
		// capacity and cost.
		capacities.Set(proxy, fa.Dst, capacities.Get(fa.Src, fa.Dst))
		costs.Set(proxy, fa.Dst, costs.Get(fa.Src, fa.Dst))

		// anything that could reach the original source can reach the
		// proxy the same way: its incoming column mirrors fa.Src's.
		for x := 0; x < nPrime; x++ {
			capacities.Set(x, proxy, capacities.Get(x, fa.Src))
			costs.Set(x, proxy, costs.Get(x, fa.Src))
		}

		capacities.Set(fa.Src, fa.Dst, 0)
		costs.Set(fa.Src, fa.Dst, 0)
		proxies[i] = ProxyMapping{Proxy: proxy, OriginalSrc: fa.Src, OriginalDst: fa.Dst}
	}

	routingCapacities := capacities.Clone()
	for _, p := range proxies {
		routingCapacities.Set(p.Proxy, p.Target(), matrix.Infinity)
	}

	dist, prev := pathing.FloydWarshall(routingCapacities, costs)
	succ, err := pathing.InvertPredecessors(prev)
	if err != nil {
		return nil, rmerr.Wrap(err, rmerr.CodePathMatrixCorrupt, "failed to invert the auxiliary network's global predecessor matrix")
	}

	arcSets := generateAdmissibleSets(dist, costs, routingCapacities, n.Options.DeltaFn)

	return &Auxiliary{
		VertexCount:    nPrime,
		OriginalCount:  n0,
		Capacities:     routingCapacities,
		Costs:          costs,
		Distances:      dist,
		Successors:     succ,
		Proxies:        proxies,
		AdmissibleSets: arcSets,
	}, nil
}

// extend returns a copy of m resized to size x size, with the original
// contents in the top-left corner and zero elsewhere.
func extend(m *matrix.Matrix[uint64], size int) *matrix.Matrix[uint64] {
	out := matrix.New(size, size, uint64(0))
	for _, idx := range m.Indices() {
		out.Set(idx.Row, idx.Col, m.Get(idx.Row, idx.Col))
	}
	return out
}

// GenerateTokens explodes one scenario's balance matrix into unit supply
// tokens, in the deterministic order a scenario's worker then drains them:
// sorted by shortest-path length ascending. If remainder is not Greedy,
// (s, t) pairs whose admissible set never touches a proxy are skipped; they
// are left for an external remainder solver. A balance entry for a pair with
// no admissible set at all means t is unreachable from s in the auxiliary
// network regardless of remainder strategy, which is always fatal.
func (a *Auxiliary) GenerateTokens(balance *matrix.Matrix[uint64], remainder options.RemainderSolveMethod) ([]*token.Token, error) {
	var generated []pendingToken

	for _, idx := range balance.Indices() {
		s, t := idx.Row, idx.Col
		if s == t {
			continue
		}
		units := balance.Get(s, t)
		if units == 0 {
			continue
		}

		mask, ok := a.AdmissibleSets[pair{s, t}]
		if !ok {
			return nil, rmerr.New(rmerr.CodeNoFeasibleFlow, fmt.Sprintf("no route exists from %d to %d", s, t))
		}
		if remainder != options.RemainderGreedy && !a.touchesAnyProxy(mask) {
			continue
		}

		d := a.Distances.Get(s, t)
		for u := uint64(0); u < units; u++ {
			generated = append(generated, pendingToken{
				tok:  token.New(s, t, mask, a.Distances, a.Successors),
				dist: d,
			})
		}
	}

	sortByDistance(generated)

	out := make([]*token.Token, len(generated))
	for i, g := range generated {
		out[i] = g.tok
	}
	return out, nil
}

func (a *Auxiliary) touchesAnyProxy(mask *matrix.Matrix[bool]) bool {
	for _, p := range a.Proxies {
		for x := 0; x < a.VertexCount; x++ {
			if mask.Get(x, p.Proxy) {
				return true
			}
		}
	}
	return false
}

type pendingToken struct {
	tok  *token.Token
	dist uint64
}

// sortByDistance orders tokens by shortest-path length ascending, so a
// scenario drains its shorter trips first. Stable so tokens tied on
// distance keep the balance matrix's row-major generation order.
func sortByDistance(items []pendingToken) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].dist < items[j].dist })
}
