// Package robmcf solves the Robust Multi-Commodity Flow problem: given a
// capacitated network, a cost matrix, one supply/demand balance per
// scenario, and a set of fixed arcs that must carry identical flow across
// every scenario (up to a per-scenario slack budget), Solve routes every
// scenario's supply with a greedy, round-based heuristic and reports each
// scenario's arc loads, remaining supply, and slack usage.
//
// The public Network, Options, and ScenarioSolution types are defined in
// pkg/domain and internal/solution; this package only wires the pipeline
// together (auxiliary-network construction, scheduling, solution assembly)
// and adds the ambient logging/metrics the teacher's own entry points carry.
package robmcf

import (
	"context"
	"time"

	"robmcf/internal/auxnet"
	"robmcf/internal/matrix"
	"robmcf/internal/rmerr"
	"robmcf/internal/scheduler"
	"robmcf/internal/solution"
	"robmcf/pkg/domain"
	"robmcf/pkg/logger"
	"robmcf/pkg/metrics"
)

// Network is a RobMCF problem instance.
type Network = domain.Network

// FixedArc identifies an arc whose flow must agree across scenarios.
type FixedArc = domain.FixedArc

// Options parameterizes a solve: admissible-arc radius, fixed-arc bias,
// slack budgeting, cost aggregation, and remainder-solve handling.
type Options = domain.Options

// ScenarioSolution is one scenario's finished result.
type ScenarioSolution = solution.ScenarioSolution

// NewNetwork assembles a Network from its raw matrices. Call Validate (or
// rely on Solve, which validates internally) before trusting the result.
func NewNetwork(vertexCount int, capacities, costs *matrix.Matrix[uint64], balances []*matrix.Matrix[uint64], fixedArcs []FixedArc, opts Options) *Network {
	return domain.NewNetwork(vertexCount, capacities, costs, balances, fixedArcs, opts)
}

// DefaultOptions returns the module's conservative option defaults.
func DefaultOptions() Options {
	return domain.DefaultOptions()
}

// Solve validates n, builds its auxiliary network, runs the greedy
// scheduler to completion, and assembles each scenario's solution. It
// returns NetworkShape if n is malformed, NoFeasibleFlow if any scenario
// demands a destination nothing can reach, NoSlackLeft if a scenario
// exhausts its slack budget on an inconsistent fixed-arc release, and
// FixedArcMemoryCorrupt if a proxy mapping cannot be resolved back onto the
// original network during assembly.
//
// ctx is checked between scheduler rounds; it does not interrupt a round
// already in progress.
func Solve(ctx context.Context, n *Network, opts Options) ([]*ScenarioSolution, error) {
	start := time.Now()
	m := metrics.Get()

	solutions, rounds, err := solve(ctx, n, opts)

	m.RecordSolveOperation(err == nil, time.Since(start), rounds)
	if err != nil {
		logger.Error("solve failed", "error", err, "rounds", rounds)
		return nil, err
	}
	logger.Info("solve completed", "scenarios", len(solutions), "rounds", rounds)
	return solutions, nil
}

func solve(ctx context.Context, n *Network, opts Options) ([]*ScenarioSolution, int, error) {
	if err := n.Validate(); err != nil {
		return nil, 0, err
	}

	// the admissible arc sets are built with opts, the same options the
	// scheduler gets, not with whatever n itself carries.
	withOpts := *n
	withOpts.Options = opts
	aux, err := auxnet.Build(&withOpts)
	if err != nil {
		return nil, 0, err
	}

	sched, err := scheduler.New(aux, n.Balances, opts)
	if err != nil {
		return nil, 0, err
	}

	scenarios, err := sched.Run(ctx)
	if err != nil {
		// Preserve the originating code (NoFeasibleFlow, NoSlackLeft,
		// PathMatrixCorrupt, ...): rmerr.Wrap would otherwise bury it behind
		// CodeSkippedSolve, and ErrorCode/errors.As only look at the
		// outermost *Error.
		if rmerr.ErrorCode(err) != "" {
			return nil, sched.Rounds, err
		}
		return nil, sched.Rounds, rmerr.Wrap(err, rmerr.CodeSkippedSolve, "scheduler run failed")
	}

	solutions, err := solution.Assemble(aux, scenarios)
	if err != nil {
		return nil, sched.Rounds, err
	}

	for _, sc := range scenarios {
		// Slack usage itself is recorded incrementally as the scheduler
		// charges each inconsistent release (internal/scheduler.go); this is
		// just the drained-scenario summary line.
		logger.WithScenario(sc.ID).Debug("scenario drained",
			"slack_used", sc.Router.SlackUsed,
			"slack_total", sc.Router.SlackTotal,
		)
	}

	return solutions, sched.Rounds, nil
}
