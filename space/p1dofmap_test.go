package space

import (
	"testing"

	"github.com/notargets/bemspace/grid"
	"github.com/stretchr/testify/assert"
)

// fanGrid surrounds element 0 with one neighbor across each edge, so every
// vertex of element 0 touches an element outside support {0}.
func fanGrid(t *testing.T) *grid.Grid {
	t.Helper()
	vertices := []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	}
	elements := []int{
		0, 1, 2,
		0, 3, 1,
		1, 4, 2,
		2, 5, 0,
	}
	g, err := grid.NewGrid(vertices, elements)
	if err != nil {
		t.Fatalf("Failed to create fan grid: %v", err)
	}
	return g
}

func TestP1Continuous_TwoTriangleFullSupport(t *testing.T) {
	// Shared-edge mesh, full support, no boundary DOFs: every vertex is
	// interior to the support, so all four vertices carry exactly one DOF.
	g := twoTriangleGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 4, s.GlobalDofCount)
	// Compaction runs in ascending vertex order over a full-vertex set, so
	// DOF indices coincide with vertex indices here.
	assert.Equal(t, []int{0, 1, 2, 1, 2, 3}, s.Local2Global)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, s.LocalMultipliers)
	assert.Equal(t, []bool{true, true}, s.Support)

	// Shared vertices 1 and 2 are referenced by both elements.
	assert.Equal(t, 2, s.Global2Local.Count(1))
	assert.Equal(t, 2, s.Global2Local.Count(2))
	assert.Equal(t, 1, s.Global2Local.Count(0))
	assert.Equal(t, 1, s.Global2Local.Count(3))

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_InteriorVerticesOnly(t *testing.T) {
	// Support {0} of the shared-edge mesh: only vertex 0 has all incident
	// elements in support. The remaining slots of element 0 are min-filled
	// inert placeholders pointing at DOF 0.
	g := twoTriangleGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig: SegmentConfig{SupportElements: []int{0}},
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 1, s.GlobalDofCount)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, s.Local2Global)
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0}, s.LocalMultipliers)
	assert.Equal(t, []bool{true, false}, s.Support)

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_IncludeBoundaryDofs(t *testing.T) {
	// Boundary DOFs included but no continuity extension: element 0 owns
	// DOFs at all three of its vertices, element 1 stays untouched.
	g := twoTriangleGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig:       SegmentConfig{SupportElements: []int{0}},
		IncludeBoundaryDofs: true,
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 3, s.GlobalDofCount)
	assert.Equal(t, []int{0, 1, 2, 0, 0, 0}, s.Local2Global)
	assert.Equal(t, []float64{1, 1, 1, 0, 0, 0}, s.LocalMultipliers)
	assert.Equal(t, []bool{true, false}, s.Support)

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_GlobalContinuityExtension(t *testing.T) {
	// With both flags set the shared boundary DOFs leak onto element 1,
	// which then receives a DOF for its own far vertex as well.
	g := twoTriangleGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig:          SegmentConfig{SupportElements: []int{0}},
		IncludeBoundaryDofs:    true,
		EnsureGlobalContinuity: true,
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 4, s.GlobalDofCount)
	assert.Equal(t, []int{0, 1, 2, 1, 2, 3}, s.Local2Global)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, s.LocalMultipliers)
	// Element 1 entered the support through the extension.
	assert.Equal(t, []bool{true, true}, s.Support)

	// The shared vertices resolve to the same DOF from both sides.
	assert.Equal(t, s.ElementDofs(0)[1], s.ElementDofs(1)[0])
	assert.Equal(t, s.ElementDofs(0)[2], s.ElementDofs(1)[1])

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_ContinuityWithoutBoundaryDofsIsNoOp(t *testing.T) {
	g := twoTriangleGrid(t)
	base, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig: SegmentConfig{SupportElements: []int{0}},
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}
	withContinuity, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig:          SegmentConfig{SupportElements: []int{0}},
		EnsureGlobalContinuity: true,
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, base.Local2Global, withContinuity.Local2Global)
	assert.Equal(t, base.LocalMultipliers, withContinuity.LocalMultipliers)
	assert.Equal(t, base.GlobalDofCount, withContinuity.GlobalDofCount)
}

func TestP1Continuous_FullyInertSupportElement(t *testing.T) {
	// Element 0 of the fan has a non-support neighbor across every vertex.
	// Without boundary DOFs the space is legally empty.
	g := fanGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig: SegmentConfig{SupportElements: []int{0}},
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 0, s.GlobalDofCount)
	assert.Equal(t, make([]float64, 12), s.LocalMultipliers)
	assert.Equal(t, []bool{false, false, false, false}, s.Support)

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_ExtensionCoversFan(t *testing.T) {
	// Extension from the center element floods all three neighbors and
	// assigns every vertex of the fan a shared DOF.
	g := fanGrid(t)
	s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
		SegmentConfig:          SegmentConfig{SupportElements: []int{0}},
		IncludeBoundaryDofs:    true,
		EnsureGlobalContinuity: true,
	})
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, 6, s.GlobalDofCount)
	assert.Equal(t, []bool{true, true, true, true}, s.Support)
	for i, m := range s.LocalMultipliers {
		if m != 1 {
			t.Fatalf("slot %d has multiplier %g, want 1", i, m)
		}
	}

	// Each shared vertex resolves to one DOF across all touching elements.
	adj := grid.BuildVertexAdjacency(g)
	for v := 0; v < g.NumVertices; v++ {
		var dof = -1
		for _, k := range adj.Incident(v) {
			for slot, w := range g.ElementVertices(k) {
				if w != v {
					continue
				}
				d := s.ElementDofs(k)[slot]
				if dof == -1 {
					dof = d
				} else if dof != d {
					t.Fatalf("vertex %d maps to DOFs %d and %d", v, dof, d)
				}
			}
		}
	}

	if err := s.Verify(); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
}

func TestP1Continuous_Deterministic(t *testing.T) {
	g := stripGrid(t, 6)
	cfg := P1ContinuousConfig{
		SegmentConfig:          SegmentConfig{SupportElements: []int{2, 3, 4, 5}},
		IncludeBoundaryDofs:    true,
		EnsureGlobalContinuity: true,
	}

	first, err := NewP1ContinuousSpace(g, cfg)
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}
	second, err := NewP1ContinuousSpace(g, cfg)
	if err != nil {
		t.Fatalf("Failed to create space: %v", err)
	}

	assert.Equal(t, first.Local2Global, second.Local2Global)
	assert.Equal(t, first.LocalMultipliers, second.LocalMultipliers)
	assert.Equal(t, first.GlobalDofCount, second.GlobalDofCount)
	assert.Equal(t, first.Global2Local.Offsets, second.Global2Local.Offsets)
}

func TestP1Continuous_AllFlagCombinations(t *testing.T) {
	g := stripGrid(t, 5)
	supports := [][]int{nil, {0}, {3, 4, 5, 6}, {0, 9}}
	for _, supportElements := range supports {
		for _, include := range []bool{false, true} {
			for _, ensure := range []bool{false, true} {
				s, err := NewP1ContinuousSpace(g, P1ContinuousConfig{
					SegmentConfig:          SegmentConfig{SupportElements: supportElements},
					IncludeBoundaryDofs:    include,
					EnsureGlobalContinuity: ensure,
				})
				if err != nil {
					t.Fatalf("support %v include=%v ensure=%v: %v",
						supportElements, include, ensure, err)
				}
				if err := s.Verify(); err != nil {
					t.Fatalf("support %v include=%v ensure=%v: Verify failed: %v",
						supportElements, include, ensure, err)
				}
			}
		}
	}
}
