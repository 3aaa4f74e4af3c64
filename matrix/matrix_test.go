// Package matrix_test exercises Dense accessors, validators and the kernels
// used by the subspace solver, with table-driven, parallel tests.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dfsolve/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewDense_InvalidShape(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 2}} {
		m, err := matrix.NewDense(tc.r, tc.c)
		require.Nil(t, m)
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestDense_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))

	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestFromRows_Errors(t *testing.T) {
	t.Parallel()
	_, err := matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)
	_, err = matrix.FromRows([][]float64{{1, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestValidateSymmetric(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"Symmetric", [][]float64{{0, 1}, {1, 0}}, nil},
		{"Asymmetric", [][]float64{{0, 1}, {0, 0}}, matrix.ErrAsymmetry},
		{"NonSquare", [][]float64{{0, 1, 0}, {1, 0, 0}}, matrix.ErrNonSquare},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, err := matrix.FromRows(tc.rows)
			require.NoError(t, err)
			err = matrix.ValidateSymmetric(m, matrix.DefaultEpsilon)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}

	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateSymmetric(nilDense, 0), matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	t.Parallel()
	q, err := matrix.FromRows([][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
	require.NoError(t, err)

	y, err := matrix.MatVec(q, []float64{1, 0, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 1}, y)

	_, err = matrix.MatVec(q, []float64{1, 0})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestMulTransposeCongruence(t *testing.T) {
	t.Parallel()
	a, err := matrix.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, at.Rows())
	require.Equal(t, 2, at.Cols())

	p, err := matrix.Mul(a, at)
	require.NoError(t, err)
	want, _ := matrix.FromRows([][]float64{{14, 32}, {32, 77}})
	require.Equal(t, want.String(), p.(*matrix.Dense).String())

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// Identity change of basis leaves q untouched.
	q, _ := matrix.FromRows([][]float64{{0, 1}, {1, 2}})
	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	c, err := matrix.Congruence(q, id)
	require.NoError(t, err)
	require.Equal(t, q.String(), c.(*matrix.Dense).String())
}

func TestHadamardAndFromColumns(t *testing.T) {
	t.Parallel()
	m, err := matrix.FromColumns([][]float64{{1, -2}, {3, 0.5}})
	require.NoError(t, err)
	require.Equal(t, "[1, 3]\n[-2, 0.5]\n", m.String())

	sq, err := matrix.Hadamard(m, m)
	require.NoError(t, err)
	require.Equal(t, "[1, 9]\n[4, 0.25]\n", sq.(*matrix.Dense).String())

	_, err = matrix.FromColumns([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)
}

func TestBuildCoupling(t *testing.T) {
	t.Parallel()
	q, err := matrix.BuildCoupling(3, []matrix.Pair{{U: 0, V: 1}, {U: 2, V: 0}, {U: 1, V: 0}}, []float64{0.5, 0, 0})
	require.NoError(t, err)
	require.Equal(t, "[0.5, 1, 1]\n[1, 0, 0]\n[1, 0, 0]\n", q.String())
	require.NoError(t, matrix.ValidateSymmetric(q, 0))

	_, err = matrix.BuildCoupling(0, nil, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.BuildCoupling(2, []matrix.Pair{{U: 1, V: 1}}, nil)
	require.ErrorIs(t, err, matrix.ErrLoopNotAllowed)
	_, err = matrix.BuildCoupling(2, []matrix.Pair{{U: 0, V: 2}}, nil)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = matrix.BuildCoupling(2, nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
