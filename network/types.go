// Package network defines the oscillator Network, its Node and Coupling types,
// and converts a drawn network into the (Q, V₀) pair the solver consumes.
//
// A Network lives on a grid: every oscillator sits at a Position, and one
// reserved Position holds the noise source. Couplings are undirected edges
// between positions; an edge touching the noise position marks the other
// endpoint as coupled to the bath.
//
// The Network uses one sync.RWMutex, so it is safe to build and read from
// several goroutines.
//
// Errors:
//
//	ErrEmptyNetwork   - Model on a network with no oscillators.
//	ErrNodeNotFound   - Connect referenced an unknown position.
//	ErrSelfCoupling   - an edge from a position to itself (noise–noise included).
//	ErrNoisePosition  - AddNode on the reserved noise position.
//	ErrUnknownFormat  - file extension or format name not recognised.
//	ErrBadPosition    - a file position is not a [row, col] pair.
package network

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/dfsolve/matrix"
)

// NoiseLabel is the reserved label of the noise source.
const NoiseLabel = "noise"

// Sentinel errors for network operations.
var (
	// ErrEmptyNetwork indicates a Model request on a network with no oscillators.
	ErrEmptyNetwork = errors.New("network: no oscillators")

	// ErrNodeNotFound indicates an operation referenced a position with no node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrSelfCoupling indicates an edge whose endpoints coincide.
	ErrSelfCoupling = errors.New("network: self-coupling not allowed")

	// ErrNoisePosition indicates an oscillator placed on the noise position.
	ErrNoisePosition = errors.New("network: position reserved for noise")

	// ErrUnknownFormat indicates an unsupported network file format.
	ErrUnknownFormat = errors.New("network: unknown file format")

	// ErrBadPosition indicates a malformed position in a network file.
	ErrBadPosition = errors.New("network: position must be [row, col]")
)

// Position is a grid cell.
type Position struct {
	Row int
	Col int
}

// String renders "(row,col)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// less orders positions row-major.
func (p Position) less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}

	return p.Col < q.Col
}

// Node is one oscillator.
type Node struct {
	// Pos is the grid cell of the oscillator.
	Pos Position

	// Index is the 0-based insertion order; it is the row/column of the
	// oscillator in Q.
	Index int

	// Label names the node in reports; defaults to the decimal Index.
	Label string

	// Energy is the self-energy on the diagonal of Q.
	Energy float64
}

// Coupling is an undirected edge between two positions, stored with A <= B.
type Coupling struct {
	A Position
	B Position
}

// newCoupling returns the normalised coupling between a and b.
func newCoupling(a, b Position) Coupling {
	if b.less(a) {
		a, b = b, a
	}

	return Coupling{A: a, B: b}
}

// Option configures a Network at construction.
type Option func(*Network)

// WithDefaultEnergy sets the self-energy of nodes added without WithEnergy.
func WithDefaultEnergy(e float64) Option {
	return func(n *Network) { n.defaultEnergy = e }
}

// NodeOption configures a node when it is first added.
type NodeOption func(*Node)

// WithEnergy sets the node self-energy.
func WithEnergy(e float64) NodeOption {
	return func(n *Node) { n.Energy = e }
}

// WithLabel overrides the default node label.
func WithLabel(label string) NodeOption {
	return func(n *Node) { n.Label = label }
}

// Network is an oscillator network with a single noise source.
//
// nodes maps positions to oscillators; order keeps insertion order, which
// fixes the oscillator indices. couplings is a set, edges keeps its
// insertion order for deterministic output.
type Network struct {
	mu sync.RWMutex

	noise         Position
	defaultEnergy float64

	nodes     map[Position]*Node
	order     []Position
	couplings map[Coupling]struct{}
	edges     []Coupling
}

// New creates an empty Network whose noise source sits at noise.
// Complexity: O(1).
func New(noise Position, opts ...Option) *Network {
	n := &Network{
		noise:     noise,
		nodes:     make(map[Position]*Node),
		couplings: make(map[Coupling]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Model is the solver input derived from a Network.
type Model struct {
	// Q is the symmetric N×N coupling matrix.
	Q *matrix.Dense

	// V0 holds one standard basis vector per noise-coupled oscillator,
	// ascending by index.
	V0 [][]float64

	// Labels names row i of Q.
	Labels []string
}
