package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// computeGeometry fills the per-element geometric factors: the 3×2
// Jacobian, its inverse transpose, the integration element and the unit
// normal. The reference element is the unit triangle with vertices
// (0,0), (1,0), (0,1); the map to physical space is
//
//	p(x, y) = v0 + x*(v1 - v0) + y*(v2 - v0)
//
// so the Jacobian columns are the edge vectors v1-v0 and v2-v0.
func (g *Grid) computeGeometry() error {
	g.Jacobians = make([]*mat.Dense, g.NumElements)
	g.JacInvTrans = make([]*mat.Dense, g.NumElements)
	g.IntegrationElements = make([]float64, g.NumElements)
	g.Normals = make([]float64, 3*g.NumElements)

	for k := 0; k < g.NumElements; k++ {
		v0 := g.VertexCoordinates(g.Elements[3*k])
		v1 := g.VertexCoordinates(g.Elements[3*k+1])
		v2 := g.VertexCoordinates(g.Elements[3*k+2])

		jac := mat.NewDense(3, 2, nil)
		for d := 0; d < 3; d++ {
			jac.Set(d, 0, v1[d]-v0[d])
			jac.Set(d, 1, v2[d]-v0[d])
		}

		// Gram matrix G = JᵀJ; det(G) is the squared integration element.
		var gram mat.Dense
		gram.Mul(jac.T(), jac)
		detG := mat.Det(&gram)
		if detG <= 0 || math.IsNaN(detG) {
			return fmt.Errorf("degenerate element %d: Gram determinant %g", k, detG)
		}
		g.IntegrationElements[k] = math.Sqrt(detG)

		var gramInv mat.Dense
		if err := gramInv.Inverse(&gram); err != nil {
			return fmt.Errorf("element %d: cannot invert Gram matrix: %w", k, err)
		}

		jit := mat.NewDense(3, 2, nil)
		jit.Mul(jac, &gramInv)

		g.Jacobians[k] = jac
		g.JacInvTrans[k] = jit

		// Unit normal by the right-hand rule over (v1-v0, v2-v0). The
		// cross product magnitude equals the integration element for a
		// nondegenerate triangle.
		nx := jac.At(1, 0)*jac.At(2, 1) - jac.At(2, 0)*jac.At(1, 1)
		ny := jac.At(2, 0)*jac.At(0, 1) - jac.At(0, 0)*jac.At(2, 1)
		nz := jac.At(0, 0)*jac.At(1, 1) - jac.At(1, 0)*jac.At(0, 1)
		norm := math.Sqrt(nx*nx + ny*ny + nz*nz)
		g.Normals[3*k] = nx / norm
		g.Normals[3*k+1] = ny / norm
		g.Normals[3*k+2] = nz / norm
	}

	return nil
}
