package network

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/katalvlaran/dfsolve/matrix"
)

// Noise returns the position of the noise source.
func (n *Network) Noise() Position { return n.noise }

// AddNode places an oscillator at pos and returns a copy of it.
// Adding an existing position returns the existing node unchanged; options
// apply only on first insertion.
//
// Errors: ErrNoisePosition if pos is the noise position.
// Complexity: O(1) amortized.
func (n *Network) AddNode(pos Position, opts ...NodeOption) (Node, error) {
	if pos == n.noise {
		return Node{}, fmt.Errorf("AddNode %s: %w", pos, ErrNoisePosition)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	return n.addNodeLocked(pos, opts), nil
}

func (n *Network) addNodeLocked(pos Position, opts []NodeOption) Node {
	if nd, ok := n.nodes[pos]; ok {
		return *nd
	}
	idx := len(n.order)
	nd := &Node{Pos: pos, Index: idx, Label: strconv.Itoa(idx), Energy: n.defaultEnergy}
	for _, opt := range opts {
		opt(nd)
	}
	n.nodes[pos] = nd
	n.order = append(n.order, pos)

	return *nd
}

// Connect couples the nodes at a and b. Either endpoint may be the noise
// position. Repeated couplings collapse into one.
//
// Errors: ErrSelfCoupling (a == b), ErrNodeNotFound (unknown endpoint).
// Complexity: O(1).
func (n *Network) Connect(a, b Position) error {
	if a == b {
		return fmt.Errorf("Connect %s-%s: %w", a, b, ErrSelfCoupling)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, p := range [2]Position{a, b} {
		if _, ok := n.nodes[p]; !ok && p != n.noise {
			return fmt.Errorf("Connect %s-%s: %s: %w", a, b, p, ErrNodeNotFound)
		}
	}
	n.connectLocked(a, b)

	return nil
}

func (n *Network) connectLocked(a, b Position) {
	c := newCoupling(a, b)
	if _, dup := n.couplings[c]; dup {
		return
	}
	n.couplings[c] = struct{}{}
	n.edges = append(n.edges, c)
}

// Link adds any missing oscillator endpoint and couples a with b, mirroring a
// click between two grid cells.
//
// Errors: ErrSelfCoupling (a == b).
func (n *Network) Link(a, b Position) error {
	if a == b {
		return fmt.Errorf("Link %s-%s: %w", a, b, ErrSelfCoupling)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, p := range [2]Position{a, b} {
		if p != n.noise {
			n.addNodeLocked(p, nil)
		}
	}
	n.connectLocked(a, b)

	return nil
}

// Len returns the number of oscillators.
func (n *Network) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.order)
}

// Node returns the oscillator at pos.
func (n *Network) Node(pos Position) (Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	nd, ok := n.nodes[pos]
	if !ok {
		return Node{}, false
	}

	return *nd, true
}

// Nodes returns copies of all oscillators in index order.
func (n *Network) Nodes() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Node, len(n.order))
	for i, p := range n.order {
		out[i] = *n.nodes[p]
	}

	return out
}

// Couplings returns all couplings in insertion order.
func (n *Network) Couplings() []Coupling {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]Coupling, len(n.edges))
	copy(out, n.edges)

	return out
}

// NoiseCoupled returns the distinct oscillators adjacent to the noise source,
// ascending by index.
func (n *Network) NoiseCoupled() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.noiseCoupledLocked()
}

func (n *Network) noiseCoupledLocked() []Node {
	seen := make(map[Position]struct{})
	out := make([]Node, 0)
	for _, c := range n.edges {
		var other Position
		switch n.noise {
		case c.A:
			other = c.B
		case c.B:
			other = c.A
		default:
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, *n.nodes[other])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}

// Model converts the network into the solver input.
//
// Implementation:
//   - Stage 1: index oscillators by insertion order; collect self-energies.
//   - Stage 2: map every oscillator–oscillator coupling to a matrix.Pair and
//     build Q with matrix.BuildCoupling.
//   - Stage 3: emit e_i for every oscillator adjacent to noise, ascending i.
//
// Errors: ErrEmptyNetwork, matrix errors from BuildCoupling.
// Complexity: O(N² + E).
func (n *Network) Model() (*Model, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	size := len(n.order)
	if size == 0 {
		return nil, fmt.Errorf("Model: %w", ErrEmptyNetwork)
	}

	energies := make([]float64, size)
	labels := make([]string, size)
	for i, p := range n.order {
		energies[i] = n.nodes[p].Energy
		labels[i] = n.nodes[p].Label
	}

	pairs := make([]matrix.Pair, 0, len(n.edges))
	for _, c := range n.edges {
		if c.A == n.noise || c.B == n.noise {
			continue
		}
		pairs = append(pairs, matrix.Pair{U: n.nodes[c.A].Index, V: n.nodes[c.B].Index})
	}
	q, err := matrix.BuildCoupling(size, pairs, energies)
	if err != nil {
		return nil, fmt.Errorf("Model: %w", err)
	}

	coupled := n.noiseCoupledLocked()
	v0 := make([][]float64, len(coupled))
	for k, nd := range coupled {
		v0[k] = make([]float64, size)
		v0[k][nd.Index] = 1
	}

	return &Model{Q: q, V0: v0, Labels: labels}, nil
}
