package subspace_test

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/katalvlaran/dfsolve/rational"
	"github.com/katalvlaran/dfsolve/subspace"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// modes runs every scenario in the float pipeline and the exact pipeline.
var modes = []struct {
	name string
	opts []subspace.Option
}{
	{"Float", nil},
	{"Exact", []subspace.Option{subspace.WithExactArithmetic()}},
}

func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.FromRows(rows)
	require.NoError(t, err)

	return m
}

func strs(vs []rational.Vector) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}

	return out
}

// requireProperties checks orthogonality, spanning, Q-invariance, noise
// containment, minimality and the complement relation on a result.
func requireProperties(t *testing.T, q, v0 [][]float64, res *subspace.Result) {
	t.Helper()
	n := len(q)
	require.Equal(t, n, res.Dim()+res.DFSDim)
	require.Len(t, res.DFS, res.DFSDim)
	require.Equal(t, krylovDim(t, q, v0), res.Dim(), "decohering dimension")

	all := append(append([]rational.Vector{}, res.Decohering...), res.DFS...)
	for i := range all {
		require.False(t, all[i].IsZero(), "vector %d is zero", i)
		for j := i + 1; j < len(all); j++ {
			d, err := rational.Dot(all[i], all[j])
			require.NoError(t, err)
			require.Zero(t, d.Sign(), "vectors %d and %d not orthogonal", i, j)
		}
	}

	qr, err := rational.FromFloatRows(q, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	for i, b := range res.Decohering {
		w, err := rational.MatVec(qr, b)
		require.NoError(t, err)
		for _, c := range res.Decohering {
			require.NoError(t, w.Project(c))
		}
		require.True(t, w.IsZero(), "Q·b%d leaves the decohering span", i)
	}
	for k, v := range v0 {
		w, err := rational.FromFloats(v, rational.DefaultMaxDenominator)
		require.NoError(t, err)
		for _, c := range res.Decohering {
			require.NoError(t, w.Project(c))
		}
		require.True(t, w.IsZero(), "noise vector %d outside the decohering span", k)
	}
}

// krylovDim is the rank of {Qʲv : v in v0, 0 <= j < n}, by exact row reduction.
func krylovDim(t *testing.T, q, v0 [][]float64) int {
	t.Helper()
	n := len(q)
	qr, err := rational.FromFloatRows(q, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	var rows []rational.Vector
	for _, v := range v0 {
		w, err := rational.FromFloats(v, rational.DefaultMaxDenominator)
		require.NoError(t, err)
		for j := 0; j < n; j++ {
			rows = append(rows, w)
			w, err = rational.MatVec(qr, w)
			require.NoError(t, err)
		}
	}
	_, pivots, err := rational.RREF(rows, n)
	require.NoError(t, err)

	return len(pivots)
}

// adjacency builds a symmetric 0/1 coupling matrix from an edge list.
func adjacency(n int, edges [][2]int) [][]float64 {
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}
	for _, e := range edges {
		q[e[0]][e[1]], q[e[1]][e[0]] = 1, 1
	}

	return q
}

// randomNetwork draws a coupling matrix with edge probability 0.3, random
// self-energies in {0, 1} and noise on one or two distinct oscillators.
func randomNetwork(seed int64, n int) ([][]float64, [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		q[i][i] = float64(rng.Intn(2))
		for j := i + 1; j < n; j++ {
			if rng.Float64() < 0.3 {
				q[i][j], q[j][i] = 1, 1
			}
		}
	}
	perm := rng.Perm(n)
	v0 := make([][]float64, 1+rng.Intn(2))
	for k := range v0 {
		v0[k] = make([]float64, n)
		v0[k][perm[k]] = 1
	}

	return q, v0
}

func TestSolve_Scenarios(t *testing.T) {
	t.Parallel()
	star := [][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}}
	ring := [][]float64{{0, 1, 0, 1}, {1, 0, 1, 0}, {0, 1, 0, 1}, {1, 0, 1, 0}}
	pairs := [][]float64{{0, 1, 0, 0}, {1, 0, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0}}

	tests := []struct {
		name       string
		q          [][]float64
		v0         [][]float64
		decohering []string
		dfs        []string
		passes     int
	}{
		{
			name:       "TwoNodeChain",
			q:          [][]float64{{0, 1}, {1, 0}},
			v0:         [][]float64{{1, 0}},
			decohering: []string{"[1, 0]", "[0, 1]"},
			passes:     2,
		},
		{
			name:       "StarNoiseOnCenter",
			q:          star,
			v0:         [][]float64{{1, 0, 0}},
			decohering: []string{"[1, 0, 0]", "[0, 1, 1]"},
			dfs:        []string{"[0, -1/2, 1/2]"},
			passes:     2,
		},
		{
			name:       "NoEdges",
			q:          [][]float64{{0, 0}, {0, 0}},
			v0:         [][]float64{{1, 0}},
			decohering: []string{"[1, 0]"},
			dfs:        []string{"[0, 1]"},
			passes:     1,
		},
		{
			name:       "FourCycle",
			q:          ring,
			v0:         [][]float64{{1, 0, 0, 0}},
			decohering: []string{"[1, 0, 0, 0]", "[0, 1, 0, 1]", "[0, 0, 2, 0]"},
			dfs:        []string{"[0, -1/2, 0, 1/2]"},
			passes:     3,
		},
		{
			name:       "DisjointComponents",
			q:          pairs,
			v0:         [][]float64{{1, 0, 0, 0}},
			decohering: []string{"[1, 0, 0, 0]", "[0, 1, 0, 0]"},
			dfs:        []string{"[0, 0, 1, 0]", "[0, 0, 0, 1]"},
			passes:     2,
		},
		{
			name:       "NoNoise",
			q:          star,
			v0:         nil,
			decohering: []string{},
			dfs:        []string{"[1, 0, 0]", "[0, 1, 0]", "[0, 0, 1]"},
			passes:     0,
		},
		{
			name:       "DuplicateNoise",
			q:          star,
			v0:         [][]float64{{1, 0, 0}, {1, 0, 0}},
			decohering: []string{"[1, 0, 0]", "[0, 1, 1]"},
			dfs:        []string{"[0, -1/2, 1/2]"},
			passes:     2,
		},
		{
			name:       "SelfEnergyOnDiagonal",
			q:          [][]float64{{2, 1, 1}, {1, 2, 0}, {1, 0, 2}},
			v0:         [][]float64{{1, 0, 0}},
			decohering: []string{"[1, 0, 0]", "[0, 1, 1]"},
			dfs:        []string{"[0, -1/2, 1/2]"},
			passes:     2,
		},
	}

	for _, m := range modes {
		for _, tc := range tests {
			m, tc := m, tc
			t.Run(m.name+"/"+tc.name, func(t *testing.T) {
				t.Parallel()
				res, err := subspace.Solve(mustDense(t, tc.q), tc.v0, m.opts...)
				require.NoError(t, err)

				require.Equal(t, len(tc.q), res.N)
				require.Equal(t, tc.decohering, strs(res.Decohering))
				require.Equal(t, len(tc.dfs), res.DFSDim)
				require.Equal(t, len(tc.dfs) > 0, res.HasDFS())
				if len(tc.dfs) == 0 {
					require.Nil(t, res.DFS)
					require.Nil(t, res.Transform)
				} else {
					require.Equal(t, tc.dfs, strs(res.DFS))
					require.NotNil(t, res.Transform)
					require.True(t, res.Transform.Verified)
				}
				require.Equal(t, tc.passes, res.Passes)
				require.Equal(t, m.name == "Exact", res.Exact)
				requireProperties(t, tc.q, tc.v0, res)
			})
		}
	}
}

func TestSolve_LargerNetworks(t *testing.T) {
	t.Parallel()
	type network struct {
		name string
		q    [][]float64
		v0   [][]float64
	}
	// Exact basis entries here have denominators far above the snapping bound.
	tenNode := adjacency(10, [][2]int{
		{0, 2}, {0, 6}, {1, 3}, {1, 4}, {1, 5}, {1, 8}, {2, 4},
		{2, 8}, {3, 4}, {4, 5}, {4, 7}, {4, 8}, {6, 8}, {8, 9},
	})
	noiseOn3 := make([]float64, 10)
	noiseOn3[3] = 1
	nets := []network{{"TenNodeNoiseOn3", tenNode, [][]float64{noiseOn3}}}
	for _, n := range []int{10, 12, 15, 20} {
		for seed := int64(1); seed <= 3; seed++ {
			q, v0 := randomNetwork(seed, n)
			nets = append(nets, network{fmt.Sprintf("Random%d/seed%d", n, seed), q, v0})
		}
	}

	for _, m := range modes {
		for _, nc := range nets {
			m, nc := m, nc
			t.Run(m.name+"/"+nc.name, func(t *testing.T) {
				t.Parallel()
				res, err := subspace.Solve(mustDense(t, nc.q), nc.v0, m.opts...)
				require.NoError(t, err)
				requireProperties(t, nc.q, nc.v0, res)
				if res.Transform != nil {
					require.True(t, res.Transform.Verified, "residual %g", res.Transform.Residual)
				}
			})
		}
	}

	t.Run("TenNodeDimension", func(t *testing.T) {
		t.Parallel()
		res, err := subspace.Solve(mustDense(t, tenNode), [][]float64{noiseOn3}, subspace.WithExactArithmetic())
		require.NoError(t, err)
		require.Equal(t, 9, res.Dim())
		require.Equal(t, 1, res.DFSDim)
		require.True(t, res.Exact)
	})
}

// pendant is a triangle 0-1-2 with a fourth oscillator hanging off 0. With
// noise on 0 the third basis vector is [0, 1/3, 1/3, -2/3].
var pendant = [][]float64{
	{0, 1, 1, 1},
	{1, 0, 1, 0},
	{1, 1, 0, 0},
	{1, 0, 0, 0},
}

func TestPropagate_PrecisionLoss(t *testing.T) {
	t.Parallel()
	q := mustDense(t, pendant)
	v0 := [][]float64{{1, 0, 0, 0}}

	// Integer snapping turns 1/3 into 0 and -2/3 into -1.
	_, _, err := subspace.Propagate(q, v0, subspace.WithMaxDenominator(1))
	require.ErrorIs(t, err, subspace.ErrPrecisionLoss)

	b, passes, err := subspace.Propagate(q, v0, subspace.WithMaxDenominator(1), subspace.WithExactArithmetic())
	require.NoError(t, err)
	require.Equal(t, 3, passes)
	require.Equal(t, []string{"[1, 0, 0, 0]", "[0, 1, 1, 1]", "[0, 1/3, 1/3, -2/3]"}, strs(b.Vectors()))
}

func TestSolve_FallsBackToExact(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	v0 := [][]float64{{1, 0, 0, 0}}
	res, err := subspace.Solve(mustDense(t, pendant), v0,
		subspace.WithMaxDenominator(1), subspace.WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.True(t, res.Exact)
	require.Equal(t, 3, res.Passes)
	require.Equal(t, []string{"[1, 0, 0, 0]", "[0, 1, 1, 1]", "[0, 1/3, 1/3, -2/3]"}, strs(res.Decohering))
	require.Equal(t, []string{"[0, -1/2, 1/2, 0]"}, strs(res.DFS))
	requireProperties(t, pendant, v0, res)

	warn := logs.FilterMessage("float propagation lost precision, retrying in exact arithmetic").All()
	require.Len(t, warn, 1)
	require.Equal(t, zapcore.WarnLevel, warn[0].Level)
	summary := logs.FilterMessage("subspace solved").All()
	require.Len(t, summary, 1)
	require.Equal(t, true, summary[0].ContextMap()["exact"])
}

func TestSolve_Idempotent(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1, 0, 1}, {1, 0, 1, 0}, {0, 1, 0, 1}, {1, 0, 1, 0}})
	v0 := [][]float64{{1, 0, 0, 0}}

	first, err := subspace.Solve(q, v0)
	require.NoError(t, err)
	second, err := subspace.Solve(q, v0)
	require.NoError(t, err)
	require.Equal(t, strs(first.Decohering), strs(second.Decohering))
	require.Equal(t, strs(first.DFS), strs(second.DFS))

	// Inputs untouched.
	require.Equal(t, []float64{1, 0, 0, 0}, v0[0])
	require.Equal(t, [][]float64{{0, 1, 0, 1}, {1, 0, 1, 0}, {0, 1, 0, 1}, {1, 0, 1, 0}}, q.RowsCopy())
}

func TestSolve_WithoutDecoupling(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
	res, err := subspace.Solve(q, [][]float64{{1, 0, 0}}, subspace.WithDecoupling(false))
	require.NoError(t, err)
	require.Equal(t, 1, res.DFSDim)
	require.Nil(t, res.Transform)
}

func TestSolve_Preconditions(t *testing.T) {
	t.Parallel()
	square := [][]float64{{0, 1}, {1, 0}}

	tests := []struct {
		name  string
		q     matrix.Matrix
		v0    [][]float64
		want  error
		cause error
	}{
		{"NilMatrix", nil, nil, subspace.ErrDimensionMismatch, matrix.ErrNilMatrix},
		{"TypedNil", (*matrix.Dense)(nil), nil, subspace.ErrDimensionMismatch, matrix.ErrNilMatrix},
		{"NonSquare", mustDense(t, [][]float64{{0, 1, 0}, {1, 0, 0}}), nil, subspace.ErrDimensionMismatch, matrix.ErrNonSquare},
		{"Asymmetric", mustDense(t, [][]float64{{0, 1}, {0, 0}}), nil, subspace.ErrNotSymmetric, matrix.ErrAsymmetry},
		{"ShortNoise", mustDense(t, square), [][]float64{{1}}, subspace.ErrDimensionMismatch, matrix.ErrDimensionMismatch},
		{"ZeroNoise", mustDense(t, square), [][]float64{{1, 0}, {0, 0}}, subspace.ErrZeroNoiseVector, nil},
		{"NaNNoise", mustDense(t, square), [][]float64{{math.NaN(), 1}}, matrix.ErrNaNInf, nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := subspace.Solve(tc.q, tc.v0)
			require.ErrorIs(t, err, tc.want)
			if tc.cause != nil {
				require.ErrorIs(t, err, tc.cause)
			}
			_, _, err = subspace.Propagate(tc.q, tc.v0)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSolve_SymmetryTolerance(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1}, {1 + 1e-12, 0}})
	_, err := subspace.Solve(q, [][]float64{{1, 0}})
	require.NoError(t, err)

	_, err = subspace.Solve(q, [][]float64{{1, 0}}, subspace.WithTolerance(0))
	require.ErrorIs(t, err, subspace.ErrNotSymmetric)
}

func TestPropagate_PassCap(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
	_, passes, err := subspace.Propagate(q, [][]float64{{1, 0, 0}}, subspace.WithMaxPasses(1))
	require.ErrorIs(t, err, subspace.ErrNotConverged)
	require.Equal(t, 1, passes)

	_, err = subspace.Solve(q, [][]float64{{1, 0, 0}}, subspace.WithMaxPasses(1))
	require.ErrorIs(t, err, subspace.ErrNotConverged)
}

func TestPropagate_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := mustDense(t, [][]float64{{0, 1}, {1, 0}})
	_, _, err := subspace.Propagate(q, [][]float64{{1, 0}}, subspace.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPropagate_Basis(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
	b, passes, err := subspace.Propagate(q, [][]float64{{1, 0, 0}})
	require.NoError(t, err)
	require.Equal(t, 2, passes)
	require.Equal(t, 3, b.Dim())
	require.Equal(t, 2, b.Len())
	require.Equal(t, "[0, 1, 1]", b.At(1).String())

	vs := b.Vectors()
	vs[1][0].SetInt64(9)
	require.Equal(t, "[0, 1, 1]", b.At(1).String())
}

func TestPropagate_ZeroCoupling(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	b, passes, err := subspace.Propagate(q, [][]float64{{0, 1, 0}, {0, 0, 3}})
	require.NoError(t, err)
	require.Equal(t, 1, passes)
	require.Equal(t, []string{"[0, 1, 0]", "[0, 0, 3]"}, strs(b.Vectors()))
}

func TestOrthogonalize(t *testing.T) {
	t.Parallel()
	b, err := rational.FromFloats([]float64{0, 1, 1}, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	e2 := rational.Unit(3, 2)

	got, err := subspace.Orthogonalize(e2, []rational.Vector{rational.Unit(3, 0), b}, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	require.Equal(t, "[0, -1/2, 1/2]", got.String())
	require.Equal(t, "[0, 0, 1]", e2.String())

	gotF, err := subspace.OrthogonalizeFloat([]float64{0, 0, 1}, [][]float64{{1, 0, 0}, {0, 1, 1}}, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	require.True(t, got.Equal(gotF))

	_, err = subspace.Orthogonalize(e2, []rational.Vector{rational.NewVector(3)}, rational.DefaultMaxDenominator)
	require.ErrorIs(t, err, subspace.ErrDegenerateBasis)
	_, err = subspace.OrthogonalizeFloat([]float64{0, 0, 1}, [][]float64{{0, 0, 0}}, rational.DefaultMaxDenominator)
	require.ErrorIs(t, err, subspace.ErrDegenerateBasis)
	_, err = subspace.OrthogonalizeFloat([]float64{0, 0, 1}, [][]float64{{0, 1}}, rational.DefaultMaxDenominator)
	require.ErrorIs(t, err, subspace.ErrDimensionMismatch)
	_, err = subspace.Orthogonalize(e2, nil, 0)
	require.ErrorIs(t, err, rational.ErrBadDenominator)
}

func TestOrthogonalizeExact_KeepsLargeDenominators(t *testing.T) {
	t.Parallel()
	b := rational.Vector{big.NewRat(1, 1), big.NewRat(1000001, 1)}
	got, err := subspace.OrthogonalizeExact(rational.Unit(2, 1), []rational.Vector{b})
	require.NoError(t, err)
	require.Equal(t, "[-1000001/1000002000002, 1/1000002000002]", got.String())
	d, err := rational.Dot(got, b)
	require.NoError(t, err)
	require.Zero(t, d.Sign())

	snapped, err := subspace.Orthogonalize(rational.Unit(2, 1), []rational.Vector{b}, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	require.Equal(t, "[-1/1000000, 0]", snapped.String())
	d, err = rational.Dot(snapped, b)
	require.NoError(t, err)
	require.NotZero(t, d.Sign(), "snapped residual is no longer orthogonal")
}

func TestOrthogonalizeFloat_SnapsResidue(t *testing.T) {
	t.Parallel()
	// 0.1+0.2 leaves a float residue that snapping removes.
	got, err := subspace.OrthogonalizeFloat([]float64{0.1 + 0.2, 0.3}, [][]float64{{1, 1}}, rational.DefaultMaxDenominator)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestComplement(t *testing.T) {
	t.Parallel()
	dec := []rational.Vector{rational.Unit(3, 1)}
	dfs, err := subspace.Complement(dec, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"[1, 0, 0]", "[0, 0, 1]"}, strs(dfs))

	full := []rational.Vector{rational.Unit(2, 0), rational.Unit(2, 1)}
	dfs, err = subspace.Complement(full, 2)
	require.NoError(t, err)
	require.Nil(t, dfs)

	// Residuals are kept exact, however large the denominator.
	wide := []rational.Vector{{big.NewRat(1, 1), big.NewRat(1000001, 1), big.NewRat(0, 1)}}
	dfs, err = subspace.Complement(wide, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"[-1000001/1000002000002, 1/1000002000002, 0]", "[0, 0, 1]"}, strs(dfs))

	skew := []rational.Vector{rational.Unit(3, 0), {big.NewRat(1, 1), big.NewRat(1, 1), big.NewRat(0, 1)}}
	_, err = subspace.Complement(skew, 3)
	require.ErrorIs(t, err, subspace.ErrNotOrthogonal)

	_, err = subspace.Complement([]rational.Vector{rational.NewVector(2)}, 2)
	require.ErrorIs(t, err, subspace.ErrDegenerateBasis)
	_, err = subspace.Complement(nil, 0)
	require.ErrorIs(t, err, subspace.ErrDimensionMismatch)
	_, err = subspace.Complement([]rational.Vector{rational.Unit(3, 0)}, 2)
	require.ErrorIs(t, err, subspace.ErrDimensionMismatch)
}

func TestDecouple(t *testing.T) {
	t.Parallel()
	q := mustDense(t, [][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
	res, err := subspace.Solve(q, [][]float64{{1, 0, 0}})
	require.NoError(t, err)
	tr := res.Transform
	require.NotNil(t, tr)
	require.Equal(t, 2, tr.NoisyDim)
	require.InDelta(t, 0, tr.Residual, 1e-12)

	want := [][]float64{{0, 2, 0}, {2, 0, 0}, {0, 0, 0}}
	for i := range want {
		for j := range want[i] {
			got, err := tr.Squared.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want[i][j], got, 1e-9, "squared[%d][%d]", i, j)
		}
	}

	// A non-invariant split is reported, not rejected.
	approx, err := subspace.Decouple(q,
		[]rational.Vector{rational.Unit(3, 0)},
		[]rational.Vector{rational.Unit(3, 1), rational.Unit(3, 2)})
	require.NoError(t, err)
	require.False(t, approx.Verified)
	require.InDelta(t, 1, approx.Residual, 1e-12)

	_, err = subspace.Decouple(q, []rational.Vector{rational.Unit(3, 0)}, nil)
	require.ErrorIs(t, err, subspace.ErrDimensionMismatch)
	_, err = subspace.Decouple(q,
		[]rational.Vector{rational.NewVector(3)},
		[]rational.Vector{rational.Unit(3, 1), rational.Unit(3, 2)})
	require.ErrorIs(t, err, subspace.ErrDegenerateBasis)
}

func TestSolve_Logging(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	q := mustDense(t, [][]float64{{0, 1}, {1, 0}})
	_, err := subspace.Solve(q, [][]float64{{1, 0}}, subspace.WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.Equal(t, 2, logs.FilterMessage("propagation pass").Len())
	summary := logs.FilterMessage("subspace solved").All()
	require.Len(t, summary, 1)
	require.Equal(t, int64(0), summary[0].ContextMap()["dfs"])
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { subspace.WithMaxDenominator(0) })
	require.Panics(t, func() { subspace.WithMaxPasses(-1) })
	require.Panics(t, func() { subspace.WithTolerance(-1) })
	//nolint:staticcheck // nil context is the case under test
	require.Panics(t, func() { subspace.WithContext(nil) })

	o := subspace.DefaultOptions()
	require.Equal(t, rational.DefaultMaxDenominator, o.MaxDenominator)
	require.True(t, o.Decouple)
	require.False(t, o.Exact)
}
