package options

import "math"

// RelativeDrawFunction computes a scenario's bias towards using a fixed arc,
// given every scenario's count at the arc's proxy ("peers") and this
// scenario's own count ("local"); the scheduler passes the loads carried on
// the proxy's outgoing arc. A positive draw lowers the apparent cost of the
// fixed-arc route and a negative one raises it. Routing does not clamp the
// biased score, so these functions return negative values freely except where
// a _non_neg variant is requested.
type RelativeDrawFunction string

const (
	DrawNone              RelativeDrawFunction = "none"
	DrawLinear            RelativeDrawFunction = "linear"
	DrawLinearNonNeg      RelativeDrawFunction = "linear_non_neg"
	DrawQuadratic         RelativeDrawFunction = "quadratic"
	DrawQuadraticNonNeg   RelativeDrawFunction = "quadratic_non_neg"
	DrawCubic             RelativeDrawFunction = "cubic"
	DrawCubicNonNeg       RelativeDrawFunction = "cubic_non_neg"
	DrawExponential       RelativeDrawFunction = "exponential"
	DrawExponentialNonNeg RelativeDrawFunction = "exponential_non_neg"
	DrawPeerPressure      RelativeDrawFunction = "peer_pressure"
)

// Apply computes the draw for a scenario with count local, given its peers'
// counts. slackRemaining is accepted for interface symmetry
// with the scheduler's per-scenario state but does not affect any variant.
func (f RelativeDrawFunction) Apply(peers []int64, local int64, slackRemaining uint64) int64 {
	switch f {
	case DrawNone:
		return 0
	case DrawLinear:
		return toPower(peers, local, 1)
	case DrawLinearNonNeg:
		return nonNeg(toPower(peers, local, 1))
	case DrawQuadratic:
		return toPower(peers, local, 2)
	case DrawQuadraticNonNeg:
		return nonNeg(toPower(peers, local, 2))
	case DrawCubic:
		return toPower(peers, local, 3)
	case DrawCubicNonNeg:
		return nonNeg(toPower(peers, local, 3))
	case DrawExponential:
		return exponential(peers, local)
	case DrawExponentialNonNeg:
		return nonNeg(exponential(peers, local))
	case DrawPeerPressure:
		return peerPressure(peers, local)
	default:
		return 0
	}
}

func nonNeg(x int64) int64 {
	if x < 0 {
		return 0
	}
	return x
}

// toPower sums the peers, subtracts len(peers)*local, and raises the result
// to e, preserving sign on odd exponents and flipping an even power back to
// negative when the base was negative.
func toPower(peers []int64, local int64, e int) int64 {
	difference := sum(peers) - int64(len(peers))*local
	draw := ipow(difference, e)
	if difference < 0 && e%2 == 0 {
		return -draw
	}
	return draw
}

func ipow(base int64, exp int) int64 {
	result := int64(1)
	neg := base < 0
	if neg {
		base = -base
	}
	for i := 0; i < exp; i++ {
		result *= base
	}
	if neg && exp%2 == 1 {
		return -result
	}
	return result
}

func exponential(peers []int64, local int64) int64 {
	difference := sum(peers) - int64(len(peers))*local
	if difference < 0 {
		return -int64(math.Exp(float64(-difference)))
	}
	return int64(math.Exp(float64(difference)))
}

func peerPressure(peers []int64, local int64) int64 {
	var m int64
	for _, peer := range peers {
		if peer > local {
			m++
		}
	}
	if m == 0 {
		return 0
	}
	var total int64
	for _, peer := range peers {
		total += nonNeg(peer - local)
	}
	return ipow(total, int(m))
}

func sum(xs []int64) int64 {
	var total int64
	for _, x := range xs {
		total += x
	}
	return total
}

func (f RelativeDrawFunction) String() string { return string(f) }
