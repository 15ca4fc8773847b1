package partitions

import (
	"fmt"
)

// AssemblyBlock is a group of support elements that an assembly worker
// processes as a unit. Blocks never share elements, so workers can write
// per-element results without coordination; accumulation into shared
// global DOFs is the assembly layer's concern.
type AssemblyBlock struct {
	// Unique identifier for this block
	ID int

	// Elements holds the global element indices in this block.
	Elements    []int
	NumElements int
}

// BlockLayout manages the decomposition of a space's support into
// assembly blocks.
type BlockLayout struct {
	Blocks []AssemblyBlock

	// Global sizing information
	MaxBlockSize  int // max(NumElements) across all blocks
	TotalElements int // Sum of elements across blocks == support size
	NumBlocks     int

	// ElementToBlock maps element k to its block, -1 for elements outside
	// the support.
	ElementToBlock []int
}

// Block returns the block containing element k, or -1 when the element is
// outside the partitioned support.
func (l *BlockLayout) Block(k int) int {
	if k < 0 || k >= len(l.ElementToBlock) {
		return -1
	}
	return l.ElementToBlock[k]
}

// Validate checks block layout consistency
func (l *BlockLayout) Validate() error {
	if l.NumBlocks != len(l.Blocks) {
		return fmt.Errorf("NumBlocks %d != %d stored blocks", l.NumBlocks, len(l.Blocks))
	}

	actualMax := 0
	total := 0
	for _, b := range l.Blocks {
		if b.NumElements != len(b.Elements) {
			return fmt.Errorf("block %d: NumElements %d != %d stored elements",
				b.ID, b.NumElements, len(b.Elements))
		}
		if b.NumElements > actualMax {
			actualMax = b.NumElements
		}
		total += b.NumElements
	}
	if actualMax != l.MaxBlockSize {
		return fmt.Errorf("computed MaxBlockSize %d != stored MaxBlockSize %d",
			actualMax, l.MaxBlockSize)
	}
	if total != l.TotalElements {
		return fmt.Errorf("conservation error: blocks hold %d elements, layout claims %d",
			total, l.TotalElements)
	}

	// Membership agrees with ElementToBlock both ways.
	seen := 0
	for _, b := range l.Blocks {
		for _, k := range b.Elements {
			if l.ElementToBlock[k] != b.ID {
				return fmt.Errorf("element %d listed in block %d but mapped to block %d",
					k, b.ID, l.ElementToBlock[k])
			}
			seen++
		}
	}
	mapped := 0
	for _, b := range l.ElementToBlock {
		if b >= 0 {
			mapped++
		}
	}
	if mapped != seen {
		return fmt.Errorf("ElementToBlock maps %d elements but blocks list %d", mapped, seen)
	}

	return nil
}
