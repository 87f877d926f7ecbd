package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"robmcf/internal/auxnet"
	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/rmerr"
	"robmcf/pkg/domain"
)

// TestRunSingleScenarioNoFixedArcs reproduces a single-scenario network
// with no fixed arcs: every token's route is an independent shortest path,
// and the scheduler should drain every scenario to zero remaining supply
// with no slack spent.
func TestRunSingleScenarioNoFixedArcs(t *testing.T) {
	capacities := matrix.New(3, 3, uint64(0))
	costs := matrix.New(3, 3, uint64(0))
	for _, arc := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
		capacities.Set(arc[0], arc[1], 10)
		costs.Set(arc[0], arc[1], 1)
	}

	balance := matrix.New(3, 3, uint64(0))
	balance.Set(0, 1, 2)
	balance.Set(1, 2, 3)

	network := domain.NewNetwork(3, capacities, costs, []*matrix.Matrix[uint64]{balance}, nil, domain.DefaultOptions())
	require.NoError(t, network.Validate())

	aux, err := auxnet.Build(network)
	require.NoError(t, err)

	sched, err := New(aux, network.Balances, network.Options)
	require.NoError(t, err)
	scenarios, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	assert.Equal(t, uint64(0), matrix.SumU64(scenarios[0].SupplyRemaining))
	assert.Equal(t, int64(0), scenarios[0].Router.SlackUsed)
}

// fixedArcChainNetwork builds the 4-vertex network both consistent-release
// tests share: 0->1->2->3 is the only route from 0 to 3, with (1,2) fixed,
// plus a cheap 3->0 return arc to keep every vertex's degree nonzero.
func fixedArcChainNetwork(t *testing.T, balances []*matrix.Matrix[uint64]) (*domain.Network, *auxnet.Auxiliary) {
	t.Helper()
	capacities := matrix.New(4, 4, uint64(0))
	costs := matrix.New(4, 4, uint64(0))
	for _, arc := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		capacities.Set(arc[0], arc[1], 10)
		costs.Set(arc[0], arc[1], 1)
	}

	opts := domain.DefaultOptions()
	opts.SlackFn = options.SlackBalanceMin

	network := domain.NewNetwork(4, capacities, costs, balances, []domain.FixedArc{{Src: 1, Dst: 2}}, opts)
	require.NoError(t, network.Validate())

	aux, err := auxnet.Build(network)
	require.NoError(t, err)
	return network, aux
}

// TestRunTwoScenarioConsistentReleaseChargesSlack reproduces the spec's
// two-scenario consistent-release example: n=4, F={(1,2)}, scenario one
// ships 3 units through the fixed arc and scenario two ships 5. The
// scheduler should move 3 units together every round the arc is used, then
// release scenario two's remaining 2 units against its slack budget once
// scenario one has no free supply left.
func TestRunTwoScenarioConsistentReleaseChargesSlack(t *testing.T) {
	balanceOne := matrix.New(4, 4, uint64(0))
	balanceOne.Set(0, 3, 3)
	balanceTwo := matrix.New(4, 4, uint64(0))
	balanceTwo.Set(0, 3, 5)

	network, aux := fixedArcChainNetwork(t, []*matrix.Matrix[uint64]{balanceOne, balanceTwo})

	sched, err := New(aux, network.Balances, network.Options)
	require.NoError(t, err)
	scenarios, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, uint64(0), matrix.SumU64(scenarios[0].SupplyRemaining))
	assert.Equal(t, uint64(0), matrix.SumU64(scenarios[1].SupplyRemaining))

	assert.Equal(t, int64(0), scenarios[0].Router.SlackUsed)
	assert.Equal(t, int64(2), scenarios[1].Router.SlackUsed)
}

// TestRunStopsBetweenRoundsOnCancelledContext reproduces the concurrency
// model's cancellation contract: Run checks ctx.Err() between rounds only.
// A context cancelled before the first round stops Run before any token
// moves at all, returning the context's error with Rounds left at zero.
func TestRunStopsBetweenRoundsOnCancelledContext(t *testing.T) {
	capacities := matrix.New(3, 3, uint64(0))
	costs := matrix.New(3, 3, uint64(0))
	for _, arc := range [][2]int{{0, 1}, {1, 2}, {2, 0}} {
		capacities.Set(arc[0], arc[1], 10)
		costs.Set(arc[0], arc[1], 1)
	}

	balance := matrix.New(3, 3, uint64(0))
	balance.Set(0, 1, 2)
	balance.Set(1, 2, 3)

	network := domain.NewNetwork(3, capacities, costs, []*matrix.Matrix[uint64]{balance}, nil, domain.DefaultOptions())
	require.NoError(t, network.Validate())

	aux, err := auxnet.Build(network)
	require.NoError(t, err)

	sched, err := New(aux, network.Balances, network.Options)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sched.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, sched.Rounds)
}

// TestNewReturnsNoFeasibleFlowWhenUnreachable reproduces E6: a destination
// with no incoming capacity at all is a fatal, not a partial, result —
// caught as soon as the scheduler tries to generate the scenario's tokens,
// before a single round ever runs.
func TestNewReturnsNoFeasibleFlowWhenUnreachable(t *testing.T) {
	capacities := matrix.New(3, 3, uint64(0))
	costs := matrix.New(3, 3, uint64(0))
	capacities.Set(0, 1, 5)
	costs.Set(0, 1, 1)
	capacities.Set(1, 0, 5)
	costs.Set(1, 0, 1)
	// vertex 2 has no incoming arc from anywhere; balance still demands it.

	balance := matrix.New(3, 3, uint64(0))
	balance.Set(0, 2, 1)

	network := domain.NewNetwork(3, capacities, costs, []*matrix.Matrix[uint64]{balance}, nil, domain.DefaultOptions())

	aux, err := auxnet.Build(network)
	require.NoError(t, err)

	_, err = New(aux, network.Balances, network.Options)
	require.Error(t, err)
	assert.Equal(t, rmerr.CodeNoFeasibleFlow, rmerr.ErrorCode(err))
}
