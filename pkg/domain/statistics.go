package domain

// NetworkStatistics summarizes the shape of a Network: useful for logging
// before a solve starts, or for surfacing in an external report.
type NetworkStatistics struct {
	VertexCount    int
	ArcCount       int
	FixedArcCount  int
	ScenarioCount  int
	TotalCapacity  uint64
	MaxOutDegree   int
	MinOutDegree   int
	ComponentCount int
}

// CalculateNetworkStatistics walks the network's capacity matrix once and
// reports its basic shape.
func CalculateNetworkStatistics(n *Network) *NetworkStatistics {
	stats := &NetworkStatistics{
		VertexCount:   n.VertexCount,
		FixedArcCount: len(n.FixedArcs),
		ScenarioCount: len(n.Balances),
		MinOutDegree:  n.VertexCount,
	}

	for x := 0; x < n.VertexCount; x++ {
		degree := 0
		for y := 0; y < n.VertexCount; y++ {
			if n.Capacities.Get(x, y) == 0 {
				continue
			}
			stats.ArcCount++
			stats.TotalCapacity += n.Capacities.Get(x, y)
			degree++
		}
		if degree > stats.MaxOutDegree {
			stats.MaxOutDegree = degree
		}
		if degree < stats.MinOutDegree {
			stats.MinOutDegree = degree
		}
	}
	if n.VertexCount == 0 {
		stats.MinOutDegree = 0
	}

	stats.ComponentCount = len(ConnectedComponents(n))
	return stats
}

// ScenarioStatistics summarizes how much demand one scenario places on the
// network, independent of whether it has been solved yet.
type ScenarioStatistics struct {
	TotalSupply   uint64
	PairCount     int
	MaxPairDemand uint64
}

// CalculateScenarioStatistics summarizes scenario λ's balance matrix.
func CalculateScenarioStatistics(n *Network, scenario int) *ScenarioStatistics {
	stats := &ScenarioStatistics{}
	b := n.Balances[scenario]
	for _, idx := range b.Indices() {
		v := b.Get(idx.Row, idx.Col)
		if v == 0 {
			continue
		}
		stats.TotalSupply += v
		stats.PairCount++
		if v > stats.MaxPairDemand {
			stats.MaxPairDemand = v
		}
	}
	return stats
}
