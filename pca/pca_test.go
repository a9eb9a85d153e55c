package pca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func sample(t *testing.T, n int) *mat.Dense {
	t.Helper()
	rnd := rand.New(rand.NewSource(17))
	x := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		a := rnd.NormFloat64() * 3
		b := rnd.NormFloat64()
		x.SetRow(i, []float64{
			a + 10,
			2*a + 0.1*rnd.NormFloat64(),
			b - 4,
			0.5*b + a*0.2 + 0.05*rnd.NormFloat64(),
		})
	}
	return x
}

func TestFitMatchesStatPC(t *testing.T) {
	x := sample(t, 200)
	res, err := Fit(x, 4)
	require.NoError(t, err)

	var pc stat.PC
	require.True(t, pc.PrincipalComponents(x, nil))
	vars := pc.VarsTo(nil)
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	assert.InDeltaSlice(t, vars, res.Variance, 1e-9)
	for i := 0; i < 4; i++ {
		got := mat.Row(nil, i, res.Components)
		want := mat.Col(nil, i, &vecs)
		// directions are unique up to sign
		assert.InDelta(t, 1, math.Abs(floats.Dot(got, want)), 1e-9, "component %d", i)
	}
}

func TestFitRatios(t *testing.T) {
	x := sample(t, 150)
	all, err := Fit(x, 4)
	require.NoError(t, err)
	assert.InDelta(t, 1, floats.Sum(all.Ratio), 1e-12)
	cum := all.Cumulative()
	assert.InDelta(t, 1, cum[3], 1e-12)
	for i := 1; i < 4; i++ {
		assert.LessOrEqual(t, all.Ratio[i], all.Ratio[i-1])
	}

	two, err := Fit(x, 2)
	require.NoError(t, err)
	r, c := two.Components.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
	assert.InDeltaSlice(t, all.Ratio[:2], two.Ratio, 1e-12)
	assert.Len(t, two.Singular, 4)
}

func TestTransform(t *testing.T) {
	x := sample(t, 100)
	res, err := Fit(x, 2)
	require.NoError(t, err)

	scores, err := res.Transform(x)
	require.NoError(t, err)
	n, k := scores.Dims()
	assert.Equal(t, 100, n)
	assert.Equal(t, 2, k)

	// scores are centred and their variance is the explained variance
	col := make([]float64, n)
	for j := 0; j < k; j++ {
		mat.Col(col, j, scores)
		mean, std := stat.MeanStdDev(col, nil)
		assert.InDelta(t, 0, mean, 1e-9)
		assert.InDelta(t, res.Variance[j], std*std, 1e-9)
	}

	_, err = res.Transform(mat.NewDense(2, 3, nil))
	assert.Error(t, err)
}

func TestFitErrors(t *testing.T) {
	x := sample(t, 10)
	_, err := Fit(x, 0)
	assert.ErrorIs(t, err, ErrComponents)
	_, err = Fit(x, 5)
	assert.ErrorIs(t, err, ErrComponents)

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = FromRows([][]float64{{1, 2}, {3}})
	assert.Error(t, err)
}

func TestFromRows(t *testing.T) {
	x, err := FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 4.0, x.At(1, 1))

	res, err := Fit(x, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, res.Mean)
	assert.InDelta(t, 1, res.Ratio[0], 1e-12)
}
