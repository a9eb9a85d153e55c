package m

import (
	"gonum.org/v1/gonum/mat"
)

// Pass holds the values produced by one forward pass.
// A[0] is the input and A[i+1] = σ(Z[i]), so len(A) == len(Z)+1.
type Pass struct {
	Z []*mat.Dense
	A []*mat.Dense
}

// Output returns the final activation of the pass.
func (p Pass) Output() *mat.Dense {
	return p.A[len(p.A)-1]
}

// Forward runs x through every layer. It does not touch weights or biases.
func Forward(weights, biases []*mat.Dense, x mat.Matrix) Pass {
	p := Pass{
		Z: make([]*mat.Dense, len(weights)),
		A: make([]*mat.Dense, len(weights)+1),
	}
	p.A[0] = mat.DenseCopyOf(x)
	for i := range weights {
		p.Z[i] = add(dot(weights[i], p.A[i]), biases[i])
		p.A[i+1] = Sigmoid(p.Z[i])
	}
	return p
}

// Output returns only the final activation for x.
func Output(weights, biases []*mat.Dense, x mat.Matrix) *mat.Dense {
	a := mat.DenseCopyOf(x)
	for i := range weights {
		a = Sigmoid(add(dot(weights[i], a), biases[i]))
	}
	return a
}

// Predict returns the index of the strongest output for x.
func Predict(weights, biases []*mat.Dense, x mat.Matrix) int {
	return Argmax(Output(weights, biases, x))
}

// Argmax returns the row of the largest value in the first column of v.
// Ties go to the lowest row.
func Argmax(v mat.Matrix) int {
	rows, _ := v.Dims()
	best := 0
	for i := 1; i < rows; i++ {
		if v.At(i, 0) > v.At(best, 0) {
			best = i
		}
	}
	return best
}
