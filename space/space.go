package space

import (
	"fmt"
	"strings"

	"github.com/notargets/bemspace/grid"
	"gonum.org/v1/gonum/mat"
)

// Space is a scalar function space over a surface grid. All fields are
// finalized at construction; a Space is read-only afterwards and may be
// queried concurrently during assembly.
type Space struct {
	Grid       *grid.Grid
	Identifier string
	Order      int

	// LocalDofCount is the number of basis-function slots per element:
	// 1 for P0, 3 for the P1 families.
	LocalDofCount int

	// GlobalDofCount is the number of distinct degrees of freedom.
	GlobalDofCount int

	// Support marks the elements the space lives on. For the continuous
	// P1 space this includes elements pulled in by continuity extension.
	Support     []bool
	SupportSize int

	// NormalMultipliers holds the per-element normal sign, passed through
	// to assembly untouched.
	NormalMultipliers []float64

	// Local2Global maps (element, local slot) to a global DOF index,
	// flattened with stride LocalDofCount. Slots of elements outside the
	// support hold 0; inert slots of support elements hold a valid global
	// index owned by another slot of the same element, so downstream
	// indexing never needs a sentinel branch.
	Local2Global []int

	// LocalMultipliers parallels Local2Global with values 0 or 1; 0 marks
	// an inert slot whose contribution must be ignored.
	LocalMultipliers []float64

	// Global2Local is the inverse map from global DOFs to contributing
	// (element, local slot) pairs.
	Global2Local *Global2Local

	// CollocationPoints holds reference collocation coordinates (2×M),
	// nil for spaces without a collocation rule.
	CollocationPoints *mat.Dense

	Shapeset Shapeset

	surfaceGradient SurfaceGradientFunc
}

// Global2Local maps each global DOF to the (element, local slot) pairs
// contributing to it, stored flattened: the pairs of DOF d occupy
// positions Offsets[d] to Offsets[d+1] of Elements and Slots, in ascending
// element order. Only pairs with local multiplier 1 are recorded.
type Global2Local struct {
	Elements []int
	Slots    []int
	Offsets  []int
}

// Pairs returns the contributing elements and local slots of DOF d. The
// returned slices alias the map storage and must not be modified.
func (m *Global2Local) Pairs(d int) (elements, slots []int) {
	return m.Elements[m.Offsets[d]:m.Offsets[d+1]], m.Slots[m.Offsets[d]:m.Offsets[d+1]]
}

// Count returns the number of pairs contributing to DOF d.
func (m *Global2Local) Count(d int) int {
	return m.Offsets[d+1] - m.Offsets[d]
}

// invertLocal2Global builds the global-to-local map from a finalized
// local-to-global map. Pairs with multiplier 0 are excluded entirely.
func invertLocal2Global(local2global []int, localMultipliers []float64, localDofCount, globalDofCount int) (*Global2Local, error) {
	counts := make([]int, globalDofCount)
	for i, d := range local2global {
		if localMultipliers[i] == 0 {
			continue
		}
		if d < 0 || d >= globalDofCount {
			return nil, fmt.Errorf("element %d slot %d: global DOF %d outside [0, %d)",
				i/localDofCount, i%localDofCount, d, globalDofCount)
		}
		counts[d]++
	}

	offsets := make([]int, globalDofCount+1)
	for d := 0; d < globalDofCount; d++ {
		offsets[d+1] = offsets[d] + counts[d]
	}

	total := offsets[globalDofCount]
	elements := make([]int, total)
	slots := make([]int, total)
	cursor := make([]int, globalDofCount)
	copy(cursor, offsets[:globalDofCount])

	// Scan in element-ascending order so pairs of each DOF come out in the
	// stable order downstream assembly relies on.
	for i, d := range local2global {
		if localMultipliers[i] == 0 {
			continue
		}
		elements[cursor[d]] = i / localDofCount
		slots[cursor[d]] = i % localDofCount
		cursor[d]++
	}

	return &Global2Local{Elements: elements, Slots: slots, Offsets: offsets}, nil
}

// ElementDofs returns the global DOF indices of element k's local slots.
// The returned slice aliases the map storage and must not be modified.
func (s *Space) ElementDofs(k int) []int {
	return s.Local2Global[k*s.LocalDofCount : (k+1)*s.LocalDofCount]
}

// ElementMultipliers returns the local multipliers of element k's slots.
func (s *Space) ElementMultipliers(k int) []float64 {
	return s.LocalMultipliers[k*s.LocalDofCount : (k+1)*s.LocalDofCount]
}

// SurfaceGradient evaluates the physical surface gradients of element k's
// basis functions at the given 2×N local coordinates. The result holds one
// 3×N matrix per local basis function. Safe for concurrent calls.
func (s *Space) SurfaceGradient(k int, points *mat.Dense) []*mat.Dense {
	return s.surfaceGradient(s.Grid, k, s.Shapeset.EvaluateGradient, points,
		s.ElementMultipliers(k), s.NormalMultipliers)
}

// Verify checks the structural invariants of the DOF maps: multiplier and
// pair-count conservation, index bounds, and the round trip between
// Local2Global and Global2Local.
func (s *Space) Verify() error {
	// Conservation: every multiplier-1 slot appears as exactly one pair.
	active := 0
	for i, m := range s.LocalMultipliers {
		switch m {
		case 0:
		case 1:
			active++
			d := s.Local2Global[i]
			if d < 0 || d >= s.GlobalDofCount {
				return fmt.Errorf("element %d slot %d: global DOF %d out of range",
					i/s.LocalDofCount, i%s.LocalDofCount, d)
			}
		default:
			return fmt.Errorf("element %d slot %d: multiplier %g not in {0, 1}",
				i/s.LocalDofCount, i%s.LocalDofCount, m)
		}
	}
	totalPairs := len(s.Global2Local.Elements)
	if totalPairs != active {
		return fmt.Errorf("conservation error: %d multiplier-1 slots but %d global2local pairs",
			active, totalPairs)
	}

	// Every global DOF originates from at least one assignment.
	for d := 0; d < s.GlobalDofCount; d++ {
		if s.Global2Local.Count(d) == 0 {
			return fmt.Errorf("global DOF %d has no contributing pairs", d)
		}
	}

	// Round trip: each recorded pair points back at its DOF.
	for d := 0; d < s.GlobalDofCount; d++ {
		elements, slots := s.Global2Local.Pairs(d)
		for i := range elements {
			k, slot := elements[i], slots[i]
			pos := k*s.LocalDofCount + slot
			if s.Local2Global[pos] != d {
				return fmt.Errorf("round trip failure: global2local[%d] names (%d, %d) but local2global there is %d",
					d, k, slot, s.Local2Global[pos])
			}
			if s.LocalMultipliers[pos] != 1 {
				return fmt.Errorf("global2local[%d] names inert slot (%d, %d)", d, k, slot)
			}
		}
	}

	return nil
}

// String returns a summary of the space properties
func (s *Space) String() string {
	var sb strings.Builder

	sb.WriteString("=== Function Space Summary ===\n")
	sb.WriteString(fmt.Sprintf("  Identifier: %s\n", s.Identifier))
	sb.WriteString(fmt.Sprintf("  Order: %d\n", s.Order))
	sb.WriteString(fmt.Sprintf("  Local DOFs per element: %d\n", s.LocalDofCount))
	sb.WriteString(fmt.Sprintf("  Global DOF count: %d\n", s.GlobalDofCount))
	sb.WriteString(fmt.Sprintf("  Support elements: %d of %d\n", s.SupportSize, s.Grid.NumElements))
	sb.WriteString(fmt.Sprintf("  Global2local pairs: %d\n", len(s.Global2Local.Elements)))
	sb.WriteString("==============================\n")

	return sb.String()
}
