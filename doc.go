// Package dfsolve finds decoherence-free subspaces of coupled oscillator
// networks.
//
// A network of oscillators shares one noise source. Noise reaches the
// oscillators coupled to it directly, and from there spreads through the
// couplings. dfsolve computes the smallest set of collective modes the
// noise can ever reach (the decohering subspace) and its orthogonal
// complement, the decoherence-free subspace (DFS): modes that evolve
// without ever touching the bath.
//
// Everything is organized under these packages:
//
//	network/      grid networks with a noise node; YAML/TOML files to (Q, V0)
//	matrix/       dense float64 matrices, coupling builder, validators
//	rational/     bounded-denominator snapping, exact vectors, exact RREF
//	subspace/     propagation, Gram-Schmidt, complement, decoupling
//	report/       plain and styled tables of vectors and matrices
//	config/       solver and CLI settings from file and DFSOLVE_* environment
//	cmd/dfsolve   the command-line front end (solve, watch, version)
//
// Quick start:
//
//	q, _ := matrix.FromRows([][]float64{{0, 1, 1}, {1, 0, 0}, {1, 0, 0}})
//	res, err := subspace.Solve(q, [][]float64{{1, 0, 0}})
//	if err != nil { … }
//	fmt.Println(res.DFSDim, res.DFS) // 1 [[0, -1/2, 1/2]]
//
// Or from a file:
//
//	dfsolve solve star.yaml
package dfsolve
