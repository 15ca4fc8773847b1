package space

import (
	"fmt"

	"github.com/notargets/bemspace/grid"
	"gonum.org/v1/gonum/mat"
)

// P1ContinuousConfig configures a continuous piecewise linear space.
type P1ContinuousConfig struct {
	SegmentConfig

	// IncludeBoundaryDofs assigns DOFs to vertices on the support
	// boundary, not just to vertices fully interior to the support.
	IncludeBoundaryDofs bool

	// EnsureGlobalContinuity extends boundary DOFs onto neighboring
	// elements outside the declared support, so the space stays
	// continuous across the support boundary. Has no effect unless
	// IncludeBoundaryDofs is also set.
	EnsureGlobalContinuity bool
}

// NewP0DiscontinuousSpace builds a space of piecewise constant functions:
// one DOF per support element.
func NewP0DiscontinuousSpace(g *grid.Grid, cfg SegmentConfig) (*Space, error) {
	support, normalMultipliers, err := processSegments(g, cfg)
	if err != nil {
		return nil, fmt.Errorf("p0_discontinuous: %w", err)
	}

	local2global, localMultipliers, globalDofCount := discontinuousDofMap(support, 1)

	s := &Space{
		Grid:              g,
		Identifier:        "p0_discontinuous",
		Order:             0,
		LocalDofCount:     1,
		GlobalDofCount:    globalDofCount,
		Support:           support,
		SupportSize:       countSupport(support),
		NormalMultipliers: normalMultipliers,
		Local2Global:      local2global,
		LocalMultipliers:  localMultipliers,
		CollocationPoints: mat.NewDense(2, 1, []float64{1. / 3, 1. / 3}),
		Shapeset:          P0Shapeset(),
		surfaceGradient:   p0SurfaceGradient,
	}
	s.Global2Local, err = invertLocal2Global(local2global, localMultipliers, 1, globalDofCount)
	if err != nil {
		return nil, fmt.Errorf("p0_discontinuous: %w", err)
	}
	return s, nil
}

// NewP1DiscontinuousSpace builds a discontinuous space of piecewise linear
// functions: three independent DOFs per support element.
func NewP1DiscontinuousSpace(g *grid.Grid, cfg SegmentConfig) (*Space, error) {
	support, normalMultipliers, err := processSegments(g, cfg)
	if err != nil {
		return nil, fmt.Errorf("p1_discontinuous: %w", err)
	}

	local2global, localMultipliers, globalDofCount := discontinuousDofMap(support, 3)

	s := &Space{
		Grid:              g,
		Identifier:        "p1_discontinuous",
		Order:             1,
		LocalDofCount:     3,
		GlobalDofCount:    globalDofCount,
		Support:           support,
		SupportSize:       countSupport(support),
		NormalMultipliers: normalMultipliers,
		Local2Global:      local2global,
		LocalMultipliers:  localMultipliers,
		Shapeset:          P1Shapeset(),
		surfaceGradient:   p1SurfaceGradient,
	}
	s.Global2Local, err = invertLocal2Global(local2global, localMultipliers, 3, globalDofCount)
	if err != nil {
		return nil, fmt.Errorf("p1_discontinuous: %w", err)
	}
	return s, nil
}

// NewP1ContinuousSpace builds a continuous space of piecewise linear
// functions: one shared DOF per vertex referenced by the support, with
// optional boundary DOFs and continuity extension onto neighbor elements.
func NewP1ContinuousSpace(g *grid.Grid, cfg P1ContinuousConfig) (*Space, error) {
	support, normalMultipliers, err := processSegments(g, cfg.SegmentConfig)
	if err != nil {
		return nil, fmt.Errorf("p1_continuous: %w", err)
	}

	adjacency := grid.BuildVertexAdjacency(g)
	local2global, localMultipliers, supportFinal, globalDofCount, err := computeP1DofMap(
		g, adjacency, support, cfg.IncludeBoundaryDofs, cfg.EnsureGlobalContinuity)
	if err != nil {
		return nil, fmt.Errorf("p1_continuous: %w", err)
	}

	s := &Space{
		Grid:              g,
		Identifier:        "p1_continuous",
		Order:             1,
		LocalDofCount:     3,
		GlobalDofCount:    globalDofCount,
		Support:           supportFinal,
		SupportSize:       countSupport(supportFinal),
		NormalMultipliers: normalMultipliers,
		Local2Global:      local2global,
		LocalMultipliers:  localMultipliers,
		Shapeset:          P1Shapeset(),
		surfaceGradient:   p1SurfaceGradient,
	}
	s.Global2Local, err = invertLocal2Global(local2global, localMultipliers, 3, globalDofCount)
	if err != nil {
		return nil, fmt.Errorf("p1_continuous: %w", err)
	}
	return s, nil
}

// discontinuousDofMap numbers fresh consecutive global DOFs over the
// support elements, localDofCount per element. Elements outside the
// support keep index 0 with multiplier 0.
func discontinuousDofMap(support []bool, localDofCount int) (local2global []int, localMultipliers []float64, globalDofCount int) {
	numElements := len(support)
	local2global = make([]int, numElements*localDofCount)
	localMultipliers = make([]float64, numElements*localDofCount)

	next := 0
	for k := 0; k < numElements; k++ {
		if !support[k] {
			continue
		}
		for slot := 0; slot < localDofCount; slot++ {
			local2global[k*localDofCount+slot] = next
			localMultipliers[k*localDofCount+slot] = 1
			next++
		}
	}
	return local2global, localMultipliers, next
}

func countSupport(support []bool) int {
	n := 0
	for _, in := range support {
		if in {
			n++
		}
	}
	return n
}
