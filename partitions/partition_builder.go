package partitions

import (
	"fmt"
	"math"
)

// Builder constructs assembly block layouts over a space's support
type Builder struct {
	// Support marks the elements to distribute, one entry per grid element.
	Support []bool

	// TargetBlockSize is the desired number of elements per block.
	TargetBlockSize int

	Strategy Strategy
}

// Strategy defines how support elements are grouped into blocks
type Strategy int

const (
	// BlockStrategy groups consecutive support elements, preserving the
	// element-ascending order assembly determinism relies on.
	BlockStrategy Strategy = iota

	// RoundRobinStrategy distributes support elements cyclically.
	RoundRobinStrategy
)

// Build creates a block layout from the support mask
func (b *Builder) Build() (*BlockLayout, error) {
	if b.TargetBlockSize <= 0 {
		return nil, fmt.Errorf("invalid target block size %d", b.TargetBlockSize)
	}

	supportElements := make([]int, 0, len(b.Support))
	for k, in := range b.Support {
		if in {
			supportElements = append(supportElements, k)
		}
	}

	numBlocks := b.calculateNumBlocks(len(supportElements))
	blocks := make([]AssemblyBlock, numBlocks)
	for i := range blocks {
		blocks[i] = AssemblyBlock{ID: i, Elements: make([]int, 0)}
	}

	elementToBlock := make([]int, len(b.Support))
	for i := range elementToBlock {
		elementToBlock[i] = -1
	}

	for i, k := range supportElements {
		var block int
		switch b.Strategy {
		case RoundRobinStrategy:
			block = i % numBlocks
		default:
			block = i / b.maxPerBlock(len(supportElements), numBlocks)
			if block >= numBlocks {
				block = numBlocks - 1
			}
		}
		blocks[block].Elements = append(blocks[block].Elements, k)
		elementToBlock[k] = block
	}

	maxBlockSize := 0
	for i := range blocks {
		blocks[i].NumElements = len(blocks[i].Elements)
		if blocks[i].NumElements > maxBlockSize {
			maxBlockSize = blocks[i].NumElements
		}
	}

	layout := &BlockLayout{
		Blocks:         blocks,
		MaxBlockSize:   maxBlockSize,
		TotalElements:  len(supportElements),
		NumBlocks:      numBlocks,
		ElementToBlock: elementToBlock,
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid block layout: %w", err)
	}

	return layout, nil
}

// calculateNumBlocks determines the block count from the target size
func (b *Builder) calculateNumBlocks(supportSize int) int {
	numBlocks := int(math.Ceil(float64(supportSize) / float64(b.TargetBlockSize)))
	if numBlocks < 1 {
		numBlocks = 1
	}
	return numBlocks
}

// maxPerBlock is the block capacity used by the consecutive strategy
func (b *Builder) maxPerBlock(supportSize, numBlocks int) int {
	perBlock := int(math.Ceil(float64(supportSize) / float64(numBlocks)))
	if perBlock < 1 {
		perBlock = 1
	}
	return perBlock
}
