package m

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestForwardShapes(t *testing.T) {
	layers := []int{6, 5, 4, 3}
	weights, biases, err := InitParams(layers, rand.NewSource(11))
	require.NoError(t, err)

	x := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 0.3, 0.4, 1})
	p := Forward(weights, biases, x)
	require.Len(t, p.Z, 3)
	require.Len(t, p.A, 4)
	assert.True(t, mat.Equal(x, p.A[0]))
	for i := range p.Z {
		r, c := p.Z[i].Dims()
		assert.Equal(t, layers[i+1], r)
		assert.Equal(t, 1, c)
	}
	r, c := p.Output().Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 1, c)
	assert.True(t, mat.Equal(p.Output(), Output(weights, biases, x)))
}

func TestForwardKnownValues(t *testing.T) {
	weights := []*mat.Dense{mat.NewDense(2, 2, []float64{1, 2, -1, 0.5})}
	biases := []*mat.Dense{mat.NewDense(2, 1, []float64{0.5, -0.25})}
	x := mat.NewDense(2, 1, []float64{1, 2})

	p := Forward(weights, biases, x)
	assert.InDelta(t, 5.5, p.Z[0].At(0, 0), 1e-12)
	assert.InDelta(t, -0.25, p.Z[0].At(1, 0), 1e-12)
	assert.InDelta(t, sigmoid(0, 0, 5.5), p.A[1].At(0, 0), 1e-15)
	assert.InDelta(t, sigmoid(0, 0, -0.25), p.A[1].At(1, 0), 1e-15)
}

func TestForwardIsPure(t *testing.T) {
	weights, biases, err := InitParams([]int{3, 4, 2}, rand.NewSource(5))
	require.NoError(t, err)
	w0 := copyAll(weights)
	b0 := copyAll(biases)

	x := mat.NewDense(3, 1, []float64{0.2, 0.7, 0.1})
	first := Forward(weights, biases, x)
	second := Forward(weights, biases, x)
	for i := range first.Z {
		assert.True(t, mat.Equal(first.Z[i], second.Z[i]))
	}
	for i := range first.A {
		assert.True(t, mat.Equal(first.A[i], second.A[i]))
	}
	for i := range weights {
		assert.True(t, mat.Equal(w0[i], weights[i]))
		assert.True(t, mat.Equal(b0[i], biases[i]))
	}

	// the pass must not alias the caller's input
	first.A[0].Set(0, 0, 99)
	assert.Equal(t, 0.2, x.At(0, 0))
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, Argmax(mat.NewDense(4, 1, []float64{0.1, 0.2, 0.9, 0.3})))
	assert.Equal(t, 0, Argmax(mat.NewDense(1, 1, []float64{-3})))
	assert.Equal(t, 1, Argmax(mat.NewDense(4, 1, []float64{0.1, 0.7, 0.7, 0.2})), "ties go to the lowest index")
	assert.Equal(t, 0, Argmax(mat.NewDense(3, 1, []float64{0.5, 0.5, 0.5})))
}

func TestPredictSaturated(t *testing.T) {
	weights := []*mat.Dense{mat.NewDense(3, 2, nil)}
	biases := []*mat.Dense{mat.NewDense(3, 1, []float64{-30, 30, -30})}
	assert.Equal(t, 1, Predict(weights, biases, mat.NewDense(2, 1, []float64{1, 0})))
}
