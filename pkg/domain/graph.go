// Package domain holds the public shape of a RobMCF problem instance: the
// Network input, its solve Options, and the validation that rejects a
// malformed instance before the core ever runs.
package domain

import (
	"fmt"

	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/rmerr"
)

// FixedArc identifies an ordered arc (Src, Dst) whose flow must agree across
// every scenario, up to each scenario's slack budget.
type FixedArc struct {
	Src int
	Dst int
}

// String renders the arc as "src->dst" for logging and error messages.
func (f FixedArc) String() string {
	return fmt.Sprintf("%d->%d", f.Src, f.Dst)
}

// Options collects every pure configuration function and method that
// parameterizes a solve.
type Options struct {
	DeltaFn               options.DeltaFunction
	RelativeDrawFn        options.RelativeDrawFunction
	SlackFn               options.SlackFunction
	CostFn                options.CostFunction
	RemainderSolveMethod  options.RemainderSolveMethod
}

// DefaultOptions returns the conservative defaults used by the teacher's
// solver-style option builders: a moderate arc-set radius, no fixed-arc
// bias, minimum-balance slack, and max-based cost aggregation.
func DefaultOptions() Options {
	return Options{
		DeltaFn:              options.DeltaLinearMedium,
		RelativeDrawFn:       options.DrawNone,
		SlackFn:              options.SlackBalanceMin,
		CostFn:               options.CostMax,
		RemainderSolveMethod: options.RemainderGreedy,
	}
}

// Network is a RobMCF problem instance: n vertices, an n×n capacity matrix,
// an n×n cost matrix, one n×n balance matrix per scenario, and the set of
// fixed arcs that must carry consistent flow across scenarios.
type Network struct {
	VertexCount int
	Capacities  *matrix.Matrix[uint64]
	Costs       *matrix.Matrix[uint64]
	Balances    []*matrix.Matrix[uint64]
	FixedArcs   []FixedArc
	Options     Options
}

// NewNetwork assembles a Network from its raw matrices. It does not
// validate; call Validate before handing the network to the solver.
func NewNetwork(vertexCount int, capacities, costs *matrix.Matrix[uint64], balances []*matrix.Matrix[uint64], fixedArcs []FixedArc, opts Options) *Network {
	return &Network{
		VertexCount: vertexCount,
		Capacities:  capacities,
		Costs:       costs,
		Balances:    balances,
		FixedArcs:   fixedArcs,
		Options:     opts,
	}
}

// Validate rejects a network shape that the core cannot run on: mismatched
// matrix dimensions, dead-end or unreachable vertices, self-supply, and
// scenarios demanding more than the network can possibly carry.
//
// Dead-end and unreachable checks are a direct capacity row/column sum test,
// not a reachability search: a vertex with zero total outgoing capacity can
// never pass flow onward, and one with zero total incoming capacity can
// never receive any, regardless of what else the network looks like.
func (n *Network) Validate() error {
	v := n.VertexCount
	errs := rmerr.NewValidationErrors()

	if n.Capacities.Rows() != v || n.Capacities.Cols() != v {
		errs.AddError(rmerr.CodeNetworkShape, "capacities matrix is not v x v")
	}
	if n.Costs.Rows() != v || n.Costs.Cols() != v {
		errs.AddError(rmerr.CodeNetworkShape, "costs matrix is not v x v")
	}
	if errs.HasErrors() {
		return errs.Combined()
	}

	for i := 0; i < v; i++ {
		if sumSlice(n.Capacities.Row(i)) == 0 {
			errs.AddError(rmerr.CodeNetworkShape, fmt.Sprintf("vertex %d is a dead end", i))
		}
	}
	for j := 0; j < v; j++ {
		if sumSlice(n.Capacities.Column(j)) == 0 {
			errs.AddError(rmerr.CodeNetworkShape, fmt.Sprintf("vertex %d is unreachable", j))
		}
	}

	totalCapacity := matrix.SumU64(n.Capacities)
	for i, balance := range n.Balances {
		if balance.Rows() != v || balance.Cols() != v {
			errs.AddError(rmerr.CodeNetworkShape, fmt.Sprintf("scenario %d balance matrix is not v x v", i))
			continue
		}
		for s := 0; s < v; s++ {
			if balance.Get(s, s) > 0 {
				errs.AddError(rmerr.CodeNetworkShape, fmt.Sprintf("scenario %d has self-supply at vertex %d", i, s))
			}
		}
		if matrix.SumU64(balance) > totalCapacity {
			errs.AddError(rmerr.CodeNetworkShape, fmt.Sprintf("scenario %d demands more than the network's total capacity", i))
		}
	}

	return errs.Combined()
}

func sumSlice(xs []uint64) uint64 {
	var total uint64
	for _, x := range xs {
		total += x
	}
	return total
}
