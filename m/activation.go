package m

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func sigmoid(_, _ int, v float64) float64 {
	if v >= 0 {
		return 1.0 / (1.0 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1.0 + e)
}

func sigmoidPrime(i, j int, v float64) float64 {
	s := sigmoid(i, j, v)
	return s * (1 - s)
}

// Sigmoid applies the logistic function to every element of z.
func Sigmoid(z mat.Matrix) *mat.Dense {
	return apply(sigmoid, z)
}

// SigmoidPrime returns σ(z)(1-σ(z)) elementwise, computed from the pre-activation.
func SigmoidPrime(z mat.Matrix) *mat.Dense {
	return apply(sigmoidPrime, z)
}
