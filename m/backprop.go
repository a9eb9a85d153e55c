package m

import (
	"gonum.org/v1/gonum/mat"
)

// Deltas computes the error signal of every weighted layer for target y.
// The output layer is (A[L]-y) ⊙ σ'(Z[L-1]); each hidden layer needs the one after it,
// so they are filled from the back.
func Deltas(weights []*mat.Dense, p Pass, y mat.Matrix) []*mat.Dense {
	last := len(weights) - 1
	deltas := make([]*mat.Dense, len(weights))
	deltas[last] = multiply(subtract(p.Output(), y), SigmoidPrime(p.Z[last]))
	for i := last - 1; i >= 0; i-- {
		deltas[i] = multiply(dot(weights[i+1].T(), deltas[i+1]), SigmoidPrime(p.Z[i]))
	}
	return deltas
}

// Step applies one gradient-descent update for the pair (x, y), mutating weights and
// biases in place. Every delta is taken from the pre-update parameters.
func Step(weights, biases []*mat.Dense, x, y mat.Matrix, alpha float64) {
	p := Forward(weights, biases, x)
	deltas := Deltas(weights, p, y)
	for i := range weights {
		weights[i].Sub(weights[i], scale(alpha, dot(deltas[i], p.A[i].T())))
		biases[i].Sub(biases[i], scale(alpha, deltas[i]))
	}
}
