package m

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MSE returns 0.5 * Σ(a_j - y_j)².
func MSE(a, y mat.Matrix) float64 {
	d := subtract(a, y).RawMatrix().Data
	return 0.5 * floats.Dot(d, d)
}

// DatasetLoss averages MSE over every line. It is a report, gradients never use it.
func DatasetLoss(weights, biases []*mat.Dense, lines Lines) (float64, error) {
	if len(lines) == 0 {
		return 0, fmt.Errorf("computing loss: %w", ErrEmptyDataset)
	}
	var total float64
	for _, line := range lines {
		total += MSE(Output(weights, biases, Column(line.Inputs)), Column(line.Targets))
	}
	return total / float64(len(lines)), nil
}
