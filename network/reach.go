package network

import "sort"

// Hop is an oscillator reached from the noise source, with its distance in
// couplings (1 for oscillators coupled to noise directly).
type Hop struct {
	Node  Node
	Depth int
}

// queueItem pairs a position with its BFS depth.
type queueItem struct {
	pos   Position
	depth int
}

// Reach runs a breadth-first search from the noise source and returns every
// reachable oscillator in visit order. Neighbors are visited in ascending
// index order, so the result is deterministic.
//
// Noise can only spread along couplings, so every decohering vector is
// supported on the reached oscillators, and each unreached one contributes
// its own decoherence-free direction.
//
// Complexity: O(N + E log E).
func (n *Network) Reach() []Hop {
	n.mu.RLock()
	defer n.mu.RUnlock()

	adj := n.adjacencyLocked()
	visited := map[Position]bool{n.noise: true}
	queue := []queueItem{{pos: n.noise}}
	out := make([]Hop, 0, len(n.order))
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		if it.pos != n.noise {
			out = append(out, Hop{Node: *n.nodes[it.pos], Depth: it.depth})
		}
		for _, next := range adj[it.pos] {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, queueItem{pos: next, depth: it.depth + 1})
		}
	}

	return out
}

// Unreached returns the oscillators with no coupling path to noise, in index order.
func (n *Network) Unreached() []Node {
	reached := make(map[int]bool)
	for _, h := range n.Reach() {
		reached[h.Node.Index] = true
	}
	out := make([]Node, 0)
	for _, nd := range n.Nodes() {
		if !reached[nd.Index] {
			out = append(out, nd)
		}
	}

	return out
}

// adjacencyLocked lists the neighbors of every position, oscillators sorted
// by index. The noise position sorts first.
func (n *Network) adjacencyLocked() map[Position][]Position {
	adj := make(map[Position][]Position)
	for _, c := range n.edges {
		adj[c.A] = append(adj[c.A], c.B)
		adj[c.B] = append(adj[c.B], c.A)
	}
	rank := func(p Position) int {
		if p == n.noise {
			return -1
		}

		return n.nodes[p].Index
	}
	for p := range adj {
		ns := adj[p]
		sort.Slice(ns, func(i, j int) bool { return rank(ns[i]) < rank(ns[j]) })
	}

	return adj
}
