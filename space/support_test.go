package space

import (
	"testing"

	"github.com/notargets/bemspace/grid"
	"github.com/stretchr/testify/assert"
)

func segmentedGrid(t *testing.T) *grid.Grid {
	t.Helper()
	vertices := []float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
	}
	elements := []int{
		0, 1, 2,
		1, 2, 3,
	}
	g, err := grid.NewGridWithDomainIndices(vertices, elements, []int{1, 2})
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	return g
}

func TestProcessSegments_DefaultIsFullSupport(t *testing.T) {
	g := segmentedGrid(t)
	support, multipliers, err := processSegments(g, SegmentConfig{})
	if err != nil {
		t.Fatalf("processSegments failed: %v", err)
	}
	assert.Equal(t, []bool{true, true}, support)
	assert.Equal(t, []float64{1, 1}, multipliers)
}

func TestProcessSegments_BySegment(t *testing.T) {
	g := segmentedGrid(t)
	support, multipliers, err := processSegments(g, SegmentConfig{Segments: []int{2}})
	if err != nil {
		t.Fatalf("processSegments failed: %v", err)
	}
	assert.Equal(t, []bool{false, true}, support)
	assert.Equal(t, []float64{1, 1}, multipliers)
}

func TestProcessSegments_SwappedNormals(t *testing.T) {
	g := segmentedGrid(t)
	support, multipliers, err := processSegments(g, SegmentConfig{
		Segments:       []int{1, 2},
		SwappedNormals: []int{1},
	})
	if err != nil {
		t.Fatalf("processSegments failed: %v", err)
	}
	assert.Equal(t, []bool{true, true}, support)
	assert.Equal(t, []float64{-1, 1}, multipliers)
}

func TestProcessSegments_Errors(t *testing.T) {
	g := segmentedGrid(t)

	if _, _, err := processSegments(g, SegmentConfig{SupportElements: []int{2}}); err == nil {
		t.Fatal("expected error for out-of-range support element")
	}
	if _, _, err := processSegments(g, SegmentConfig{SupportElements: []int{-1}}); err == nil {
		t.Fatal("expected error for negative support element")
	}
	if _, _, err := processSegments(g, SegmentConfig{
		SupportElements: []int{0},
		Segments:        []int{1},
	}); err == nil {
		t.Fatal("expected error for both SupportElements and Segments set")
	}
}
