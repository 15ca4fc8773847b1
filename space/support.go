package space

import (
	"fmt"

	"github.com/notargets/bemspace/grid"
)

// SegmentConfig selects the elements a space lives on and the normal
// orientation per segment. At most one of SupportElements and Segments may
// be set; with neither set the support covers the whole grid.
type SegmentConfig struct {
	// SupportElements lists the element indices in the support.
	SupportElements []int

	// Segments lists the domain indices whose elements form the support.
	Segments []int

	// SwappedNormals lists domain indices whose elements get a normal
	// multiplier of -1 instead of +1.
	SwappedNormals []int
}

// processSegments converts a segment configuration into a per-element
// support mask and per-element normal multipliers.
func processSegments(g *grid.Grid, cfg SegmentConfig) (support []bool, normalMultipliers []float64, err error) {
	if cfg.SupportElements != nil && cfg.Segments != nil {
		return nil, nil, fmt.Errorf("at most one of SupportElements and Segments may be given")
	}

	support = make([]bool, g.NumElements)
	switch {
	case cfg.SupportElements != nil:
		for _, k := range cfg.SupportElements {
			if k < 0 || k >= g.NumElements {
				return nil, nil, fmt.Errorf("support element %d outside [0, %d)", k, g.NumElements)
			}
			support[k] = true
		}
	case cfg.Segments != nil:
		wanted := make(map[int]bool, len(cfg.Segments))
		for _, s := range cfg.Segments {
			wanted[s] = true
		}
		for k := 0; k < g.NumElements; k++ {
			if wanted[g.DomainIndices[k]] {
				support[k] = true
			}
		}
	default:
		for k := range support {
			support[k] = true
		}
	}

	normalMultipliers = make([]float64, g.NumElements)
	swapped := make(map[int]bool, len(cfg.SwappedNormals))
	for _, s := range cfg.SwappedNormals {
		swapped[s] = true
	}
	for k := 0; k < g.NumElements; k++ {
		if swapped[g.DomainIndices[k]] {
			normalMultipliers[k] = -1
		} else {
			normalMultipliers[k] = 1
		}
	}

	return support, normalMultipliers, nil
}
