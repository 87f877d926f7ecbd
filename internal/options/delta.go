// Package options provides the pure, configurable functions that parameterize
// a solve: admissible-arc-set radius (Delta), fixed-arc bias (RelativeDraw),
// per-scenario slack budget (Slack), cross-scenario cost aggregation (Cost),
// and what to do with (s, t) pairs the greedy router never visits
// (RemainderSolveMethod). None of them touch the network or scenario state;
// they are plain functions over integers and slices.
package options

import "math"

// DeltaFunction bounds how far the admissible arc set around a shortest path
// of length x may extend, trading routing flexibility for preprocessing cost.
type DeltaFunction string

const (
	DeltaLinearMini       DeltaFunction = "linear_mini"
	DeltaLinearLow        DeltaFunction = "linear_low"
	DeltaLinearMedium     DeltaFunction = "linear_medium"
	DeltaLinearHigh       DeltaFunction = "linear_high"
	DeltaLogarithmicMini  DeltaFunction = "log_mini"
	DeltaLogarithmicLow   DeltaFunction = "log_low"
	DeltaLogarithmicMedium DeltaFunction = "log_medium"
	DeltaLogarithmicHigh  DeltaFunction = "log_high"
	DeltaUnlimited        DeltaFunction = "unlimited"
)

// Apply returns the admissible-arc radius for a shortest path of length x.
func (d DeltaFunction) Apply(x uint64) uint64 {
	switch d {
	case DeltaLinearMini:
		return linear(x, 1.1)
	case DeltaLinearLow:
		return linear(x, 1.5)
	case DeltaLinearMedium:
		return linear(x, 2.0)
	case DeltaLinearHigh:
		return linear(x, 3.0)
	case DeltaLogarithmicMini:
		return logarithmic(x, 2.5)
	case DeltaLogarithmicLow:
		return logarithmic(x, 5.0)
	case DeltaLogarithmicMedium:
		return logarithmic(x, 10.0)
	case DeltaLogarithmicHigh:
		return logarithmic(x, 20.0)
	case DeltaUnlimited:
		return math.MaxUint64
	default:
		return x
	}
}

func linear(x uint64, factor float64) uint64 {
	return uint64(math.Floor(factor * float64(x)))
}

func logarithmic(x uint64, k float64) uint64 {
	return x + uint64(math.Floor(k*math.Log(float64(x)+1)))
}

func (d DeltaFunction) String() string { return string(d) }
