package space

import "gonum.org/v1/gonum/mat"

// ShapesetEvaluate evaluates the reference basis functions of a shapeset
// at local coordinates. points is a 2×N matrix of coordinates on the unit
// triangle; the result is a LocalDofCount×N matrix of basis values.
type ShapesetEvaluate func(points *mat.Dense) *mat.Dense

// ShapesetGradient evaluates the reference gradients of a shapeset at
// local coordinates. points is 2×N; the result holds one 2×N matrix per
// local basis function.
type ShapesetGradient func(points *mat.Dense) []*mat.Dense

// Shapeset bundles the reference basis functions of a scalar element.
type Shapeset struct {
	Identifier    string
	Order         int
	LocalDofCount int

	Evaluate         ShapesetEvaluate
	EvaluateGradient ShapesetGradient
}

// P0Shapeset returns the piecewise constant shapeset: a single basis
// function identically 1 on the reference triangle.
func P0Shapeset() Shapeset {
	return Shapeset{
		Identifier:    "p0_discontinuous",
		Order:         0,
		LocalDofCount: 1,
		Evaluate: func(points *mat.Dense) *mat.Dense {
			_, n := points.Dims()
			values := mat.NewDense(1, n, nil)
			for j := 0; j < n; j++ {
				values.Set(0, j, 1)
			}
			return values
		},
		EvaluateGradient: func(points *mat.Dense) []*mat.Dense {
			_, n := points.Dims()
			return []*mat.Dense{mat.NewDense(2, n, nil)}
		},
	}
}

// P1Shapeset returns the linear shapeset with barycentric basis functions
// 1-x-y, x and y attached to the reference triangle corners (0,0), (1,0)
// and (0,1) in that order.
func P1Shapeset() Shapeset {
	return Shapeset{
		Identifier:    "p1_discontinuous",
		Order:         1,
		LocalDofCount: 3,
		Evaluate: func(points *mat.Dense) *mat.Dense {
			_, n := points.Dims()
			values := mat.NewDense(3, n, nil)
			for j := 0; j < n; j++ {
				x := points.At(0, j)
				y := points.At(1, j)
				values.Set(0, j, 1-x-y)
				values.Set(1, j, x)
				values.Set(2, j, y)
			}
			return values
		},
		EvaluateGradient: func(points *mat.Dense) []*mat.Dense {
			_, n := points.Dims()
			gradients := make([]*mat.Dense, 3)
			refGrads := [3][2]float64{{-1, -1}, {1, 0}, {0, 1}}
			for i := range gradients {
				grad := mat.NewDense(2, n, nil)
				for j := 0; j < n; j++ {
					grad.Set(0, j, refGrads[i][0])
					grad.Set(1, j, refGrads[i][1])
				}
				gradients[i] = grad
			}
			return gradients
		},
	}
}
