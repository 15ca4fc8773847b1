package grid

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Grid is an immutable triangulated surface mesh embedded in 3D space.
// All per-element geometry is precomputed at construction; afterwards a
// Grid is read-only and may be shared across goroutines without locking.
type Grid struct {
	NumElements int
	NumVertices int

	// Vertices holds coordinates flattened as [x0 y0 z0 x1 y1 z1 ...],
	// three values per vertex.
	Vertices []float64

	// Elements holds connectivity flattened as three vertex indices per
	// triangle: element k owns Elements[3*k : 3*k+3].
	Elements []int

	// DomainIndices marks each element with a physical segment identifier.
	// All elements belong to segment 0 when no indices are supplied.
	DomainIndices []int

	// Jacobians[k] is the 3×2 map from reference coordinates on the unit
	// triangle to physical coordinates on element k; its columns are the
	// two edge vectors leaving the element's first vertex.
	Jacobians []*mat.Dense

	// JacInvTrans[k] is the 3×2 inverse transpose J·(JᵀJ)⁻¹ of element
	// k's Jacobian, used to push reference gradients to physical space.
	JacInvTrans []*mat.Dense

	// IntegrationElements[k] is sqrt(det(JᵀJ)), twice the area of
	// element k.
	IntegrationElements []float64

	// Normals holds unit normals flattened as three values per element,
	// oriented by the right-hand rule over the element's vertex order.
	Normals []float64
}

// NewGrid creates a grid from flat vertex coordinates (three per vertex)
// and flat triangle connectivity (three vertex indices per element), and
// precomputes all per-element geometric factors.
func NewGrid(vertices []float64, elements []int) (*Grid, error) {
	return NewGridWithDomainIndices(vertices, elements, nil)
}

// NewGridWithDomainIndices creates a grid whose elements carry physical
// segment identifiers, used for segment-restricted function spaces.
// domainIndices may be nil, in which case every element is in segment 0.
func NewGridWithDomainIndices(vertices []float64, elements []int, domainIndices []int) (*Grid, error) {
	if len(vertices) == 0 || len(vertices)%3 != 0 {
		return nil, fmt.Errorf("vertex array length %d is not a positive multiple of 3", len(vertices))
	}
	if len(elements) == 0 || len(elements)%3 != 0 {
		return nil, fmt.Errorf("element array length %d is not a positive multiple of 3", len(elements))
	}

	g := &Grid{
		NumElements: len(elements) / 3,
		NumVertices: len(vertices) / 3,
		Vertices:    vertices,
		Elements:    elements,
	}

	for i, v := range elements {
		if v < 0 || v >= g.NumVertices {
			return nil, fmt.Errorf("element %d references vertex %d outside [0, %d)",
				i/3, v, g.NumVertices)
		}
	}

	if domainIndices != nil {
		if len(domainIndices) != g.NumElements {
			return nil, fmt.Errorf("domain index array length %d does not match %d elements",
				len(domainIndices), g.NumElements)
		}
		g.DomainIndices = domainIndices
	} else {
		g.DomainIndices = make([]int, g.NumElements)
	}

	if err := g.computeGeometry(); err != nil {
		return nil, err
	}

	return g, nil
}

// ElementVertices returns the three vertex indices of element k.
func (g *Grid) ElementVertices(k int) []int {
	return g.Elements[3*k : 3*k+3]
}

// VertexCoordinates returns the coordinate triple of vertex v.
func (g *Grid) VertexCoordinates(v int) []float64 {
	return g.Vertices[3*v : 3*v+3]
}

// ElementNormal returns the unit normal of element k.
func (g *Grid) ElementNormal(k int) []float64 {
	return g.Normals[3*k : 3*k+3]
}

// String returns a summary of the grid properties
func (g *Grid) String() string {
	var sb strings.Builder

	sb.WriteString("=== Surface Grid Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Number of elements: %d\n", g.NumElements))
	sb.WriteString(fmt.Sprintf("  Number of vertices: %d\n", g.NumVertices))

	segments := make(map[int]int)
	for _, d := range g.DomainIndices {
		segments[d]++
	}
	sb.WriteString(fmt.Sprintf("  Number of segments: %d\n", len(segments)))

	var area, minIE, maxIE float64
	if g.NumElements > 0 {
		minIE = g.IntegrationElements[0]
		maxIE = minIE
	}
	for _, ie := range g.IntegrationElements {
		area += 0.5 * ie
		if ie < minIE {
			minIE = ie
		}
		if ie > maxIE {
			maxIE = ie
		}
	}
	sb.WriteString(fmt.Sprintf("  Total surface area: %.6e\n", area))
	sb.WriteString(fmt.Sprintf("  Integration element range: [%.4e, %.4e]\n", minIE, maxIE))
	sb.WriteString("============================\n")

	return sb.String()
}
