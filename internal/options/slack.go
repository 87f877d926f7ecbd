package options

// SlackFunction derives each scenario's inconsistent-release budget from the
// scenarios' supply balances (total supply per scenario, summed across the
// auxiliary network's supply matrix).
type SlackFunction string

const (
	SlackBalanceMin             SlackFunction = "balance_min"
	SlackDifferenceToMax        SlackFunction = "difference_to_max"
	SlackDifferenceToMaxPlusMin SlackFunction = "difference_to_max_plus_min"
)

// Apply returns the slack budget for each scenario, in the same order as
// balances.
func (f SlackFunction) Apply(balances []uint64) []uint64 {
	if len(balances) == 0 {
		return nil
	}

	switch f {
	case SlackBalanceMin:
		min := minOf(balances)
		budgets := make([]uint64, len(balances))
		for i := range budgets {
			budgets[i] = min
		}
		return budgets
	case SlackDifferenceToMax:
		return differences(balances, 0)
	case SlackDifferenceToMaxPlusMin:
		return differences(balances, minOf(balances))
	default:
		return differences(balances, 0)
	}
}

func minOf(xs []uint64) uint64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []uint64) uint64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func differences(balances []uint64, offset uint64) []uint64 {
	max := maxOf(balances)
	out := make([]uint64, len(balances))
	for i, b := range balances {
		out[i] = max - b + offset
	}
	return out
}

func (f SlackFunction) String() string { return string(f) }
