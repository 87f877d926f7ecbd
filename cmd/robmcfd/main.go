// Package main is the entry point for robmcfd.
//
// robmcfd loads configuration, wires up structured logging and Prometheus
// metrics, and runs one RobMCF solve against a network built in code. It
// has no CLI flags and no network/file input format of its own: it exists
// to demonstrate the pkg/config -> pkg/logger -> pkg/metrics -> robmcf.Solve
// wiring a real caller of this module would follow, and to serve /metrics
// for scraping while it runs.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to lowest):
//  1. Environment variables (prefix: ROBMCF_)
//  2. Config files (config.yaml, config/config.yaml, /etc/robmcf/config.yaml)
//  3. Default values
//
// Key configuration options (environment variable format):
//
//	# Application
//	ROBMCF_APP_NAME        - Process name (default: robmcfd)
//	ROBMCF_APP_VERSION     - Process version (default: 0.1.0)
//	ROBMCF_APP_ENVIRONMENT - Environment: development, staging, production
//
//	# Logging
//	ROBMCF_LOG_LEVEL  - Log level: debug, info, warn, error (default: info)
//	ROBMCF_LOG_FORMAT - Log format: json, text (default: json)
//	ROBMCF_LOG_OUTPUT - Output: stdout, stderr, file (default: stdout)
//
//	# Metrics (Prometheus)
//	ROBMCF_METRICS_ENABLED - Serve /metrics over HTTP on port 9090 (default: true)
//
//	# Solver
//	ROBMCF_SOLVER_DELTA_FN               - see internal/options.DeltaFunction
//	ROBMCF_SOLVER_RELATIVE_DRAW_FN       - see internal/options.RelativeDrawFunction
//	ROBMCF_SOLVER_SLACK_FN               - see internal/options.SlackFunction
//	ROBMCF_SOLVER_COST_FN                - see internal/options.CostFunction
//	ROBMCF_SOLVER_REMAINDER_SOLVE_METHOD - see internal/options.RemainderSolveMethod
package main

import (
	"context"
	"log"

	"robmcf"
	"robmcf/internal/matrix"
	"robmcf/pkg/config"
	"robmcf/pkg/logger"
	"robmcf/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(9090); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	opts, err := buildOptions(cfg.Solver)
	if err != nil {
		logger.Fatal("invalid solver options", "error", err)
	}

	logger.Info("starting solve",
		"environment", cfg.App.Environment,
		"version", cfg.App.Version,
	)

	network := sampleNetwork()
	solutions, err := robmcf.Solve(context.Background(), network, opts)
	if err != nil {
		logger.Fatal("solve failed", "error", err)
	}

	for _, s := range solutions {
		logger.WithScenario(s.ID).Info("scenario solved",
			"cost", s.Cost(network.Costs),
			"supply_delivered", s.SupplyDelivered(matrix.SumU64(network.Balances[s.ID])),
			"slack_used", s.SlackTotal-s.SlackRemaining,
		)
	}
}

func buildOptions(sc config.SolverConfig) (robmcf.Options, error) {
	delta, draw, slack, cost, remainder, err := sc.ToOptions()
	if err != nil {
		return robmcf.Options{}, err
	}
	return robmcf.Options{
		DeltaFn:              delta,
		RelativeDrawFn:       draw,
		SlackFn:              slack,
		CostFn:               cost,
		RemainderSolveMethod: remainder,
	}, nil
}

// sampleNetwork builds a small illustrative network: two scenarios sharing
// a fixed arc, so the logged slack usage demonstrates a consistent release
// under the default configuration.
func sampleNetwork() *robmcf.Network {
	capacities := matrix.New(4, 4, uint64(0))
	costs := matrix.New(4, 4, uint64(0))
	for _, arc := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		capacities.Set(arc[0], arc[1], 10)
		costs.Set(arc[0], arc[1], 1)
	}

	balanceOne := matrix.New(4, 4, uint64(0))
	balanceOne.Set(0, 3, 3)
	balanceTwo := matrix.New(4, 4, uint64(0))
	balanceTwo.Set(0, 3, 5)

	return robmcf.NewNetwork(4, capacities, costs,
		[]*matrix.Matrix[uint64]{balanceOne, balanceTwo},
		[]robmcf.FixedArc{{Src: 1, Dst: 2}},
		robmcf.DefaultOptions(),
	)
}
