// Package pca projects feature rows onto their principal components, computed with a
// thin singular value decomposition of the column-centred data.
package pca

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmpty      = errors.New("pca: no observations")
	ErrComponents = errors.New("pca: invalid number of components")
	ErrFactorize  = errors.New("pca: SVD did not converge")
)

// Result holds the first K principal directions of a dataset.
type Result struct {
	// Mean of every column, subtracted before projecting.
	Mean []float64
	// Components is K×d, one unit direction per row, strongest first.
	Components *mat.Dense
	// Singular values of the centred data, all of them.
	Singular []float64
	// Variance explained by each kept component (σ²/(n-1)).
	Variance []float64
	// Ratio of Variance to the total variance of the data.
	Ratio []float64
}

// Fit computes k principal components of the n×d matrix x.
func Fit(x mat.Matrix, k int) (*Result, error) {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, ErrEmpty
	}
	if k < 1 || k > min(n, d) {
		return nil, fmt.Errorf("%w: %d not in [1,%d]", ErrComponents, k, min(n, d))
	}

	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean[j] = stat.Mean(col, nil)
	}
	centred := center(x, mean)

	var svd mat.SVD
	if ok := svd.Factorize(centred, mat.SVDThin); !ok {
		return nil, ErrFactorize
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	denom := float64(n - 1)
	if n == 1 {
		denom = 1
	}
	var total float64
	for _, s := range values {
		total += s * s / denom
	}

	res := &Result{
		Mean:       mean,
		Components: mat.DenseCopyOf(v.Slice(0, d, 0, k).T()),
		Singular:   values,
		Variance:   make([]float64, k),
		Ratio:      make([]float64, k),
	}
	for i := 0; i < k; i++ {
		res.Variance[i] = values[i] * values[i] / denom
		if total > 0 {
			res.Ratio[i] = res.Variance[i] / total
		}
	}
	return res, nil
}

// Transform centres x with the fitted mean and projects it, giving n×K scores.
func (r *Result) Transform(x mat.Matrix) (*mat.Dense, error) {
	n, d := x.Dims()
	if d != len(r.Mean) {
		return nil, fmt.Errorf("pca: data has %d columns, fitted on %d", d, len(r.Mean))
	}
	k, _ := r.Components.Dims()
	out := mat.NewDense(n, k, nil)
	out.Mul(center(x, r.Mean), r.Components.T())
	return out, nil
}

// Cumulative returns the running sum of Ratio.
func (r *Result) Cumulative() []float64 {
	out := make([]float64, len(r.Ratio))
	var sum float64
	for i, v := range r.Ratio {
		sum += v
		out[i] = sum
	}
	return out
}

// FromRows copies equal-length rows into an n×d matrix.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	d := len(rows[0])
	out := mat.NewDense(len(rows), d, nil)
	for i, row := range rows {
		if len(row) != d {
			return nil, fmt.Errorf("pca: row %d has %d values, expected %d", i, len(row), d)
		}
		out.SetRow(i, row)
	}
	return out, nil
}

func center(x mat.Matrix, mean []float64) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, d, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return v - mean[j]
	}, x)
	return out
}
