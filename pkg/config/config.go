// pkg/config/config.go
package config

import (
	"fmt"
	"strings"

	"robmcf/internal/options"
)

// Config is the root configuration structure: ambient process settings plus
// the solver tuning knobs that parameterize a RobMCF solve.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Solver  SolverConfig  `koanf:"solver"`
}

// AppConfig holds general process identity.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures pkg/metrics.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// SolverConfig selects the option-function variants and round limits a
// solve runs with. Each Fn field holds the string name of an
// internal/options constant (e.g. "linear_medium", "peer_pressure") — the
// same names those types' String() methods produce — so a solve's option
// choice is fully expressible from a config file or environment variable.
type SolverConfig struct {
	DeltaFn              string `koanf:"delta_fn"`
	RelativeDrawFn       string `koanf:"relative_draw_fn"`
	SlackFn              string `koanf:"slack_fn"`
	CostFn               string `koanf:"cost_fn"`
	RemainderSolveMethod string `koanf:"remainder_solve_method"`
	MaxRounds            int    `koanf:"max_rounds"` // validated as non-negative; not passed to the scheduler, which does not cap rounds
}

// ToOptions validates each configured option name against
// internal/options' known constants and returns them as typed option values,
// in field order. A remainder solve method that is recognized but not
// Supported() is rejected.
func (s SolverConfig) ToOptions() (options.DeltaFunction, options.RelativeDrawFunction, options.SlackFunction, options.CostFunction, options.RemainderSolveMethod, error) {
	delta := options.DeltaFunction(s.DeltaFn)
	if !validDelta[delta] {
		return "", "", "", "", "", fmt.Errorf("solver.delta_fn: unknown value %q", s.DeltaFn)
	}
	draw := options.RelativeDrawFunction(s.RelativeDrawFn)
	if !validDraw[draw] {
		return "", "", "", "", "", fmt.Errorf("solver.relative_draw_fn: unknown value %q", s.RelativeDrawFn)
	}
	slack := options.SlackFunction(s.SlackFn)
	if !validSlack[slack] {
		return "", "", "", "", "", fmt.Errorf("solver.slack_fn: unknown value %q", s.SlackFn)
	}
	cost := options.CostFunction(s.CostFn)
	if !validCost[cost] {
		return "", "", "", "", "", fmt.Errorf("solver.cost_fn: unknown value %q", s.CostFn)
	}
	remainder := options.RemainderSolveMethod(s.RemainderSolveMethod)
	if !remainder.Supported() {
		return "", "", "", "", "", fmt.Errorf("solver.remainder_solve_method: %q is recognized but not supported by this module (%s)", s.RemainderSolveMethod, remainder.Description())
	}
	return delta, draw, slack, cost, remainder, nil
}

var validDelta = map[options.DeltaFunction]bool{
	options.DeltaLinearMini: true, options.DeltaLinearLow: true,
	options.DeltaLinearMedium: true, options.DeltaLinearHigh: true,
	options.DeltaLogarithmicMini: true, options.DeltaLogarithmicLow: true,
	options.DeltaLogarithmicMedium: true, options.DeltaLogarithmicHigh: true,
	options.DeltaUnlimited: true,
}

var validDraw = map[options.RelativeDrawFunction]bool{
	options.DrawNone: true, options.DrawLinear: true, options.DrawLinearNonNeg: true,
	options.DrawQuadratic: true, options.DrawQuadraticNonNeg: true,
	options.DrawCubic: true, options.DrawCubicNonNeg: true,
	options.DrawExponential: true, options.DrawExponentialNonNeg: true,
	options.DrawPeerPressure: true,
}

var validSlack = map[options.SlackFunction]bool{
	options.SlackBalanceMin: true, options.SlackDifferenceToMax: true,
	options.SlackDifferenceToMaxPlusMin: true,
}

var validCost = map[options.CostFunction]bool{
	options.CostMax: true, options.CostMean: true, options.CostMedian: true,
}

// Validate rejects a configuration the process cannot run with.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Solver.MaxRounds < 0 {
		errs = append(errs, "solver.max_rounds must be non-negative")
	}

	if _, _, _, _, _, err := c.Solver.ToOptions(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the configured environment is development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
