package m

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLayers is the MNIST topology: 784 pixels, two hidden layers of 60, 10 digits.
var DefaultLayers = []int{784, 60, 60, 10}

func validateLayers(layers []int) error {
	if len(layers) < 2 {
		return fmt.Errorf("%w: need at least 2 layers (input and output), got %d", ErrConfiguration, len(layers))
	}
	for i, n := range layers {
		if n <= 0 {
			return fmt.Errorf("%w: layer %d has size %d", ErrConfiguration, i, n)
		}
	}
	return nil
}

// InitParams builds one weight matrix and one bias column per weighted transition.
// weights[i] has shape (layers[i+1], layers[i]) and biases[i] has shape (layers[i+1], 1).
// Entries are standard normal draws scaled by sqrt(2/layers[i]).
func InitParams(layers []int, src rand.Source) (weights, biases []*mat.Dense, err error) {
	if err := validateLayers(layers); err != nil {
		return nil, nil, err
	}
	dist := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	weights = make([]*mat.Dense, len(layers)-1)
	biases = make([]*mat.Dense, len(layers)-1)
	for i := range weights {
		rows, cols := layers[i+1], layers[i]
		s := math.Sqrt(2.0 / float64(cols))
		weights[i] = mat.NewDense(rows, cols, normalArray(dist, rows*cols, s))
		biases[i] = mat.NewDense(rows, 1, normalArray(dist, rows, s))
	}
	return weights, biases, nil
}

func normalArray(dist distuv.Normal, size int, s float64) []float64 {
	data := make([]float64, size)
	for i := range data {
		data[i] = dist.Rand() * s
	}
	return data
}
