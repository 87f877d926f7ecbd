// Package solution implements the solution assembler (C7): collapsing each
// scenario's auxiliary-network arc loads back onto the original fixed
// arcs, shrinking away the proxy vertices, and reporting the per-scenario
// and cross-scenario figures a caller actually cares about.
package solution

import (
	"robmcf/internal/auxnet"
	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/rmerr"
	"robmcf/internal/scheduler"
	"robmcf/pkg/domain"
)

// ScenarioSolution is one scenario's finished result: arc loads collapsed
// onto the original fixed arcs and shrunk to the network's own n x n
// shape, remaining (undelivered) supply, and slack accounting.
type ScenarioSolution struct {
	ID int

	SlackTotal     uint64
	SlackRemaining uint64

	SupplyRemaining *matrix.Matrix[uint64]
	ArcLoads        *matrix.Matrix[uint64]
}

// Cost reports this scenario's total flow cost: the Hadamard product of its
// arc loads against the original cost matrix, summed.
func (s *ScenarioSolution) Cost(costs *matrix.Matrix[uint64]) uint64 {
	return matrix.SumU64(matrix.HadamardU64(s.ArcLoads, costs))
}

// SupplyDelivered reports how much of supplyTotal this scenario actually
// routed to its destination.
func (s *ScenarioSolution) SupplyDelivered(supplyTotal uint64) uint64 {
	remaining := matrix.SumU64(s.SupplyRemaining)
	if remaining > supplyTotal {
		return 0
	}
	return supplyTotal - remaining
}

// Assemble collapses every scheduler scenario's auxiliary-network state
// into a ScenarioSolution, one per scenario, in scenario order.
func Assemble(aux *auxnet.Auxiliary, scenarios []*scheduler.Scenario) ([]*ScenarioSolution, error) {
	out := make([]*ScenarioSolution, len(scenarios))
	for i, sc := range scenarios {
		arcLoads, err := collapseFixedArcs(aux, sc.Router.ArcLoads)
		if err != nil {
			return nil, rmerr.NewForScenario(rmerr.CodeFixedArcMemoryCorrupt, err.Error(), sc.ID)
		}

		out[i] = &ScenarioSolution{
			ID:              sc.ID,
			SlackTotal:      uint64(sc.Router.SlackTotal),
			SlackRemaining:  sc.Router.SlackRemaining(),
			SupplyRemaining: sc.SupplyRemaining.Clone(),
			ArcLoads:        arcLoads,
		}
	}
	return out, nil
}

// collapseFixedArcs copies each proxy's outgoing-arc load back onto the
// original fixed arc it replaced, then shrinks away the k proxy
// rows/columns the auxiliary network appended. Fails with
// FixedArcMemoryCorrupt if a proxy mapping no longer fits the arc-load
// matrix it is meant to describe.
func collapseFixedArcs(aux *auxnet.Auxiliary, arcLoads *matrix.Matrix[uint64]) (*matrix.Matrix[uint64], error) {
	collapsed := arcLoads.Clone()
	for _, p := range aux.Proxies {
		if p.Proxy >= collapsed.Rows() || p.Target() >= collapsed.Cols() ||
			p.OriginalSrc >= collapsed.Rows() || p.OriginalDst >= collapsed.Cols() {
			return nil, rmerr.New(rmerr.CodeFixedArcMemoryCorrupt, "proxy mapping does not fit the scenario's arc-load matrix")
		}
		collapsed.Set(p.OriginalSrc, p.OriginalDst, collapsed.Get(p.Proxy, p.Target()))
	}
	collapsed.Shrink(len(aux.Proxies))
	return collapsed, nil
}

// CostReport aggregates every scenario's cost under costFn, the way a
// caller compares one full solve against another.
func CostReport(solutions []*ScenarioSolution, costs *matrix.Matrix[uint64], costFn options.CostFunction) uint64 {
	perScenario := make([]uint64, len(solutions))
	for i, s := range solutions {
		perScenario[i] = s.Cost(costs)
	}
	return costFn.Apply(perScenario)
}

// ConsistentFlows reports, for every fixed arc, the minimum load any
// scenario placed on it — the volume that moved identically across every
// scenario's solution. Arcs not in fixedArcs read zero.
func ConsistentFlows(solutions []*ScenarioSolution, fixedArcs []domain.FixedArc) *matrix.Matrix[uint64] {
	if len(solutions) == 0 {
		return matrix.New(0, 0, uint64(0))
	}
	rows, cols := solutions[0].ArcLoads.Rows(), solutions[0].ArcLoads.Cols()
	out := matrix.New(rows, cols, uint64(0))

	for _, fa := range fixedArcs {
		min := solutions[0].ArcLoads.Get(fa.Src, fa.Dst)
		for _, s := range solutions[1:] {
			load := s.ArcLoads.Get(fa.Src, fa.Dst)
			if load < min {
				min = load
			}
		}
		out.Set(fa.Src, fa.Dst, min)
	}
	return out
}
