package domain

// Reachable returns every vertex reachable from source by following arcs
// with positive capacity. It is a diagnostic aid, not part of Validate:
// Validate rejects dead ends/unreachable vertices via a cheap row/column sum
// test, but Reachable gives a caller (logging, a CLI summary) the actual
// reachable set when investigating why a network was rejected or why a
// scenario turned out infeasible.
func Reachable(n *Network, source int) map[int]bool {
	visited := map[int]bool{source: true}
	queue := []int{source}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		for v := 0; v < n.VertexCount; v++ {
			if visited[v] || n.Capacities.Get(u, v) == 0 {
				continue
			}
			visited[v] = true
			queue = append(queue, v)
		}
	}

	return visited
}

// ConnectedComponents partitions the network's vertices into weakly
// connected components, treating capacity in either direction as an
// undirected edge. A network with more than one component can never route
// supply between vertices in different components, which Validate's
// dead-end/unreachable checks would not by themselves always catch (a
// vertex can have nonzero row and column sums while still sitting in its own
// isolated component).
func ConnectedComponents(n *Network) [][]int {
	adjacency := make(map[int][]int, n.VertexCount)
	for x := 0; x < n.VertexCount; x++ {
		for y := 0; y < n.VertexCount; y++ {
			if x == y || n.Capacities.Get(x, y) == 0 {
				continue
			}
			adjacency[x] = append(adjacency[x], y)
			adjacency[y] = append(adjacency[y], x)
		}
	}

	visited := make(map[int]bool, n.VertexCount)
	var components [][]int
	for v := 0; v < n.VertexCount; v++ {
		if visited[v] {
			continue
		}
		var component []int
		queue := []int{v}
		visited[v] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, u)
			for _, w := range adjacency[u] {
				if !visited[w] {
					visited[w] = true
					queue = append(queue, w)
				}
			}
		}
		components = append(components, component)
	}
	return components
}
