package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestP0Shapeset_Values(t *testing.T) {
	ss := P0Shapeset()
	assert.Equal(t, 0, ss.Order)
	assert.Equal(t, 1, ss.LocalDofCount)

	points := mat.NewDense(2, 3, []float64{
		0, 0.5, 0.25,
		0, 0.25, 0.5,
	})
	values := ss.Evaluate(points)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, values.RawMatrix().Data, 1e-15)
}

func TestP1Shapeset_PartitionOfUnity(t *testing.T) {
	ss := P1Shapeset()
	assert.Equal(t, 1, ss.Order)
	assert.Equal(t, 3, ss.LocalDofCount)

	points := mat.NewDense(2, 4, []float64{
		0, 1, 0, 1. / 3,
		0, 0, 1, 1. / 3,
	})
	values := ss.Evaluate(points)

	// Kronecker property at the corners.
	assert.InDelta(t, 1.0, values.At(0, 0), 1e-15)
	assert.InDelta(t, 1.0, values.At(1, 1), 1e-15)
	assert.InDelta(t, 1.0, values.At(2, 2), 1e-15)

	// Partition of unity everywhere.
	for j := 0; j < 4; j++ {
		sum := values.At(0, j) + values.At(1, j) + values.At(2, j)
		assert.InDelta(t, 1.0, sum, 1e-15)
	}
}

func TestP1Shapeset_GradientsSumToZero(t *testing.T) {
	ss := P1Shapeset()
	points := mat.NewDense(2, 2, []float64{
		0.1, 0.7,
		0.3, 0.2,
	})
	gradients := ss.EvaluateGradient(points)
	if len(gradients) != 3 {
		t.Fatalf("got %d gradients, want 3", len(gradients))
	}

	for j := 0; j < 2; j++ {
		for d := 0; d < 2; d++ {
			sum := gradients[0].At(d, j) + gradients[1].At(d, j) + gradients[2].At(d, j)
			assert.InDelta(t, 0.0, sum, 1e-15)
		}
	}
}
