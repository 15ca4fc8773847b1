package space

import (
	"github.com/notargets/bemspace/grid"
	"gonum.org/v1/gonum/mat"
)

// SurfaceGradientFunc evaluates physical surface gradients of the basis
// functions on one element. points is a 2×N matrix of local coordinates;
// the result holds one 3×N matrix per local basis function. The multiplier
// arrays are part of the evaluation contract for higher-order spaces but
// are not consumed by the scalar shapesets. Implementations are pure: no
// shared state is touched, only the output is allocated, and concurrent
// calls for different elements are safe.
type SurfaceGradientFunc func(g *grid.Grid, elementIndex int, gradient ShapesetGradient,
	points *mat.Dense, localMultipliers, normalMultipliers []float64) []*mat.Dense

// p0SurfaceGradient returns the identically zero gradient of the constant
// basis function.
func p0SurfaceGradient(g *grid.Grid, elementIndex int, gradient ShapesetGradient,
	points *mat.Dense, localMultipliers, normalMultipliers []float64) []*mat.Dense {

	_, n := points.Dims()
	return []*mat.Dense{mat.NewDense(3, n, nil)}
}

// p1SurfaceGradient maps the reference gradients of the three linear basis
// functions to physical space through the element's 3×2 inverse-transpose
// Jacobian.
func p1SurfaceGradient(g *grid.Grid, elementIndex int, gradient ShapesetGradient,
	points *mat.Dense, localMultipliers, normalMultipliers []float64) []*mat.Dense {

	referenceGradients := gradient(points)
	_, n := points.Dims()

	result := make([]*mat.Dense, len(referenceGradients))
	for i, ref := range referenceGradients {
		physical := mat.NewDense(3, n, nil)
		physical.Mul(g.JacInvTrans[elementIndex], ref)
		result[i] = physical
	}
	return result
}
