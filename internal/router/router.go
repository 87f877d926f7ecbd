// Package router implements the scenario router state (C5): the mutable
// per-scenario capacities and arc loads, the fixed-arc relative-draw table,
// and the routing decision a scheduler worker asks for on every hop.
package router

import (
	"robmcf/internal/auxnet"
	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/rmerr"
	"robmcf/internal/token"
)

// State is one scenario's exclusive view of the auxiliary network: its own
// mutable capacities (seeded from the shared auxiliary capacities, proxy
// arcs already unbounded), its own arc loads, its own relative-draw table,
// and its own slack budget.
type State struct {
	ScenarioID int

	Proxies []auxnet.ProxyMapping
	Costs   *matrix.Matrix[uint64]

	Capacities    *matrix.Matrix[uint64]
	ArcLoads      *matrix.Matrix[uint64]
	RelativeDraws map[int]int64

	SlackTotal int64
	SlackUsed  int64
}

// New seeds a scenario's router state from the shared auxiliary network.
func New(scenarioID int, aux *auxnet.Auxiliary, slackTotal uint64) *State {
	return &State{
		ScenarioID:    scenarioID,
		Proxies:       aux.Proxies,
		Costs:         aux.Costs,
		Capacities:    aux.Capacities.Clone(),
		ArcLoads:      matrix.New(aux.VertexCount, aux.VertexCount, uint64(0)),
		RelativeDraws: make(map[int]int64, len(aux.Proxies)),
		SlackTotal:    int64(slackTotal),
	}
}

// arcLoad returns the load a proxy's single outgoing arc has carried so far,
// used both to feed RefreshRelativeDraws and to report fixed-arc usage.
func (s *State) arcLoad(p auxnet.ProxyMapping) uint64 {
	return s.ArcLoads.Get(p.Proxy, p.Target())
}

// SlackRemaining returns the scenario's unused slack budget.
func (s *State) SlackRemaining() uint64 {
	remaining := s.SlackTotal - s.SlackUsed
	if remaining < 0 {
		return 0
	}
	return uint64(remaining)
}

// UseArc records that token moves from its current position to next:
// disables the arc in the token's private mask (preventing revisits),
// increments this scenario's arc load and decrements its capacity.
func (s *State) UseArc(tok *token.Token, next int) {
	tok.Mask.Set(tok.Current, next, false)
	matrix.IncrementU64(s.ArcLoads, tok.Current, next)
	matrix.DecrementU64(s.Capacities, tok.Current, next)
}

// UseSlack charges amount against this scenario's slack budget, failing if
// the scenario does not have that much left.
func (s *State) UseSlack(amount uint64) error {
	if int64(amount) > s.SlackTotal-s.SlackUsed {
		return rmerr.NewForScenario(rmerr.CodeNoSlackLeft, "inconsistent release requested more slack than the scenario owns", s.ScenarioID)
	}
	s.SlackUsed += int64(amount)
	return nil
}

// RefreshRelativeDraws recomputes, for every fixed proxy, this scenario's
// bias towards routing through it: drawFn applied to the peer scenarios'
// current load on the proxy's outgoing arc against this scenario's own
// load, with this scenario's remaining slack as a third input.
func (s *State) RefreshRelativeDraws(peerLoads map[int][]int64, drawFn options.RelativeDrawFunction) {
	slackRemaining := s.SlackRemaining()
	for _, p := range s.Proxies {
		peers := peerLoads[p.Proxy]
		local := int64(s.arcLoad(p))
		s.RelativeDraws[p.Proxy] = drawFn.Apply(peers, local, slackRemaining)
	}
}

// GetNextVertex is the routing decision for token: refresh its private
// routing tables, then compare the direct shortest path against the
// nearest reachable fixed arc, biased by this scenario's relative draw.
// Ties prefer the fixed-arc route.
func (s *State) GetNextVertex(tok *token.Token) (int, error) {
	if err := tok.Refresh(s.Capacities, s.Costs); err != nil {
		return 0, err
	}

	direct := tok.Successors.Get(tok.Current, tok.Dest)
	if direct == matrix.Infinity {
		return 0, rmerr.NewForScenario(rmerr.CodeNoFeasibleFlow, "no path remains from current position to destination", s.ScenarioID)
	}

	nextViaFixed, score, found := s.closestFixedArc(tok)
	if !found {
		return int(direct), nil
	}

	directCost := tok.Distances.Get(tok.Current, tok.Dest)
	if directCost == matrix.Infinity {
		return 0, rmerr.NewForScenario(rmerr.CodeNoFeasibleFlow, "no path remains from current position to destination", s.ScenarioID)
	}

	if int64(directCost) < score {
		return int(direct), nil
	}
	return nextViaFixed, nil
}

// closestFixedArc finds the proxy whose biased detour cost is lowest among
// those the token's mask still allows, returning the vertex the token would
// move to next on that route and the biased score. found is false if no
// proxy is currently reachable. The proxy's single outgoing arc is already
// part of the token's distance table, so the detour cost via a proxy is
// simply dist(current, proxy) + dist(proxy, dest) — no separate cost term.
func (s *State) closestFixedArc(tok *token.Token) (vertex int, score int64, found bool) {
	best := int64(0)
	bestVertex := -1

	for _, p := range s.Proxies {
		if !tok.Mask.Get(p.Proxy, p.Target()) {
			continue
		}

		toProxy := tok.Distances.Get(tok.Current, p.Proxy)
		fromProxy := tok.Distances.Get(p.Proxy, tok.Dest)
		if toProxy == matrix.Infinity || fromProxy == matrix.Infinity {
			continue
		}

		biased := int64(saturatingAdd(toProxy, fromProxy)) - s.RelativeDraws[p.Proxy]
		if bestVertex != -1 && biased >= best {
			continue
		}

		best = biased
		if tok.Current == p.Proxy {
			bestVertex = p.Target()
		} else {
			bestVertex = int(tok.Successors.Get(tok.Current, p.Proxy))
		}
	}

	if bestVertex == -1 {
		return 0, 0, false
	}
	return bestVertex, best, true
}

func saturatingAdd(a, b uint64) uint64 {
	if a > matrix.Infinity-b {
		return matrix.Infinity
	}
	return a + b
}
