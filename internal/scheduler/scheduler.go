// Package scheduler implements the greedy scheduler (C6): one worker per
// scenario, all workers passing through the same barrier at the end of
// every round, with shared statistics computed between barriers co-ordinate
// progress on fixed arcs.
package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"robmcf/internal/auxnet"
	"robmcf/internal/matrix"
	"robmcf/internal/options"
	"robmcf/internal/rmerr"
	"robmcf/internal/router"
	"robmcf/internal/token"
	"robmcf/pkg/domain"
	"robmcf/pkg/logger"
	"robmcf/pkg/metrics"
)

// Scenario bundles one scenario's mutable round-to-round state: its router,
// the free-token list being drained, the per-proxy queues tokens sit in
// while waiting for a consistent release across scenarios, and the
// remaining supply per (origin, dest) pair reported back to the solution
// assembler.
type Scenario struct {
	ID              int
	Router          *router.State
	Free            []*token.Token
	Queues          map[int][]*token.Token
	SupplyRemaining *matrix.Matrix[uint64]
}

func newScenario(id int, aux *auxnet.Auxiliary, balance *matrix.Matrix[uint64], slackTotal uint64, remainder options.RemainderSolveMethod) (*Scenario, error) {
	queues := make(map[int][]*token.Token, len(aux.Proxies))
	for _, p := range aux.Proxies {
		queues[p.Proxy] = nil
	}
	free, err := aux.GenerateTokens(balance, remainder)
	if err != nil {
		return nil, rmerr.NewForScenario(rmerr.ErrorCode(err), err.Error(), id)
	}
	return &Scenario{
		ID:              id,
		Router:          router.New(id, aux, slackTotal),
		Free:            free,
		Queues:          queues,
		SupplyRemaining: balance.Clone(),
	}, nil
}

// Scheduler drives every scenario's worker through barrier-synchronized
// rounds until every scenario has delivered all its tokens.
type Scheduler struct {
	Aux       *auxnet.Auxiliary
	Scenarios []*Scenario
	DrawFn    options.RelativeDrawFunction
	Rounds    int

	proxies map[int]bool
}

// New builds one Scenario per balance matrix, with each scenario's slack
// budget assigned by slackFn over every scenario's total supply. Fails with
// NoFeasibleFlow if any scenario's balance demands a destination the
// auxiliary network cannot reach at all.
func New(aux *auxnet.Auxiliary, balances []*matrix.Matrix[uint64], opts domain.Options) (*Scheduler, error) {
	totals := make([]uint64, len(balances))
	for i, b := range balances {
		totals[i] = totalSupply(b)
	}
	budgets := opts.SlackFn.Apply(totals)

	scenarios := make([]*Scenario, len(balances))
	for i, b := range balances {
		sc, err := newScenario(i, aux, b, budgets[i], opts.RemainderSolveMethod)
		if err != nil {
			return nil, err
		}
		scenarios[i] = sc
	}

	proxies := make(map[int]bool, len(aux.Proxies))
	for _, p := range aux.Proxies {
		proxies[p.Proxy] = true
	}

	return &Scheduler{Aux: aux, Scenarios: scenarios, DrawFn: opts.RelativeDrawFn, proxies: proxies}, nil
}

func totalSupply(balance *matrix.Matrix[uint64]) uint64 {
	return matrix.SumU64(balance)
}

// Run drives rounds to completion and returns every scenario's final state
// for the solution assembler to shrink and report. ctx is checked between
// rounds only, never mid-round: cancellation is not part of the scheduler's
// correctness contract, it just stops the loop from starting another round.
func (s *Scheduler) Run(ctx context.Context) ([]*Scenario, error) {
	logger.Debug("scheduler starting", "scenarios", len(s.Scenarios), "fixed_arcs", len(s.Aux.Proxies))
	for s.anyTokensRemain() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.WithRound(s.Rounds).Debug("round starting")
		if err := s.round(); err != nil {
			return nil, err
		}
		s.Rounds++
	}
	logger.Info("scheduler finished", "rounds", s.Rounds)
	return s.Scenarios, nil
}

func (s *Scheduler) anyTokensRemain() bool {
	for _, sc := range s.Scenarios {
		if len(sc.Free) > 0 {
			return true
		}
		for _, q := range sc.Queues {
			if len(q) > 0 {
				return true
			}
		}
	}
	return false
}

// round runs one barrier-synchronized step: the pre-round shared compute
// (single-threaded), every scenario's worker in parallel (relative-draw
// refresh, free-token routing, fixed-queue draining), then the barrier
// itself — errgroup.Wait blocks until every worker has finished its round
// before any error is surfaced.
func (s *Scheduler) round() error {
	peerLoads := s.peerLoads()
	consistentToMove, existsFreeSupply := s.consistentToMove()

	var g errgroup.Group
	for _, sc := range s.Scenarios {
		sc := sc
		g.Go(func() error {
			return s.stepScenario(sc, peerLoads, consistentToMove, existsFreeSupply)
		})
	}
	return g.Wait()
}

// peerLoads returns, for every fixed proxy, the vector of current
// arc_loads[p, M(p).target] across all scenarios, indexed in scenario
// order — the "peers" input every scenario's RefreshRelativeDraws call
// reads its own draw from.
func (s *Scheduler) peerLoads() map[int][]int64 {
	loads := make(map[int][]int64, len(s.Aux.Proxies))
	for _, p := range s.Aux.Proxies {
		vec := make([]int64, len(s.Scenarios))
		for i, sc := range s.Scenarios {
			vec[i] = int64(sc.Router.ArcLoads.Get(p.Proxy, p.Target()))
		}
		loads[p.Proxy] = vec
	}
	return loads
}

// consistentToMove computes, for every fixed proxy, the largest number of
// tokens every scenario can move across it this round without breaking
// cross-scenario consistency (the minimum queue depth), plus whether any
// scenario still has free tokens left to route.
func (s *Scheduler) consistentToMove() (map[int]uint64, bool) {
	existsFree := false
	for _, sc := range s.Scenarios {
		if len(sc.Free) > 0 {
			existsFree = true
			break
		}
	}

	consistent := make(map[int]uint64, len(s.Aux.Proxies))
	for _, p := range s.Aux.Proxies {
		min := uint64(0)
		for i, sc := range s.Scenarios {
			depth := uint64(len(sc.Queues[p.Proxy]))
			if i == 0 || depth < min {
				min = depth
			}
		}
		consistent[p.Proxy] = min
	}
	return consistent, existsFree
}

func (s *Scheduler) stepScenario(sc *Scenario, peerLoads map[int][]int64, consistentToMove map[int]uint64, existsFreeSupply bool) error {
	sc.Router.RefreshRelativeDraws(peerLoads, s.DrawFn)

	if err := s.handleFreeTokens(sc); err != nil {
		return err
	}
	return s.handleFixedQueues(sc, consistentToMove, existsFreeSupply)
}

// handleFreeTokens advances every free token one hop: delivered tokens
// decrement the scenario's remaining supply, tokens landing on a fixed
// proxy move into that proxy's queue, everything else rejoins the free
// list for next round.
func (s *Scheduler) handleFreeTokens(sc *Scenario) error {
	pending := sc.Free
	sc.Free = nil

	for _, tok := range pending {
		next, err := sc.Router.GetNextVertex(tok)
		if err != nil {
			return err
		}
		sc.Router.UseArc(tok, next)
		tok.Current = next

		switch {
		case tok.Delivered():
			matrix.DecrementU64(sc.SupplyRemaining, tok.Origin, tok.Dest)
			metrics.Get().RecordTokenDelivered(sc.ID)
		case s.proxies[next]:
			sc.Queues[next] = append(sc.Queues[next], tok)
		default:
			sc.Free = append(sc.Free, tok)
		}
	}
	return nil
}

// handleFixedQueues drains each fixed proxy's queue, in the order proxies
// appear in the auxiliary network: by the pre-computed consistent amount,
// or — once no scenario has any free tokens left at all — by the entire
// remaining queue, charged against this scenario's slack budget as an
// inconsistent release.
func (s *Scheduler) handleFixedQueues(sc *Scenario, consistentToMove map[int]uint64, existsFreeSupply bool) error {
	for _, p := range s.Aux.Proxies {
		queue := sc.Queues[p.Proxy]
		m := consistentToMove[p.Proxy]

		inconsistent := false
		if m == 0 && !existsFreeSupply {
			m = uint64(len(queue))
			if m > 0 {
				if err := sc.Router.UseSlack(m); err != nil {
					return err
				}
				inconsistent = true
				logger.WithScenario(sc.ID).Debug("inconsistent proxy release charged against slack",
					"proxy", p.Proxy, "amount", m, "slack_remaining", sc.Router.SlackTotal-sc.Router.SlackUsed)
			}
		}
		if m == 0 {
			continue
		}
		if m > uint64(len(queue)) {
			m = uint64(len(queue))
		}

		metrics.Get().RecordProxyRelease(!inconsistent, int(m))
		if inconsistent {
			metrics.Get().RecordSlackUsed(sc.ID, m)
		}

		drained := queue[:m]
		sc.Queues[p.Proxy] = queue[m:]

		target := p.Target()
		for _, tok := range drained {
			sc.Router.UseArc(tok, target)
			tok.Current = target
			if tok.Delivered() {
				matrix.DecrementU64(sc.SupplyRemaining, tok.Origin, tok.Dest)
				metrics.Get().RecordTokenDelivered(sc.ID)
			} else {
				sc.Free = append(sc.Free, tok)
			}
		}
	}
	return nil
}
