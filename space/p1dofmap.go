package space

import (
	"fmt"

	"github.com/notargets/bemspace/grid"
)

// computeP1DofMap assigns one shared global DOF per vertex referenced by
// the support and builds the local-to-global map and multipliers for the
// continuous P1 space.
//
// A vertex gets a DOF when includeBoundaryDofs is set or when all of its
// incident elements are in the support. With both includeBoundaryDofs and
// ensureGlobalContinuity set, a boundary vertex's DOF is also written into
// the matching local slot of each non-support neighbor element, and those
// neighbors join the worklist so their remaining corners are assigned too.
// The worklist processes every element exactly once; the per-slot writes
// are idempotent, so visiting order does not affect the result.
//
// Vertex DOFs are compacted to dense global indices in ascending vertex
// order. A local slot whose corner never received a DOF is filled with the
// minimum global index assigned to the element's other slots and gets
// multiplier 0, keeping the index array dereferenceable without sentinel
// branches in assembly loops.
func computeP1DofMap(g *grid.Grid, adjacency *grid.VertexAdjacency, support []bool,
	includeBoundaryDofs, ensureGlobalContinuity bool) (
	local2global []int, localMultipliers []float64, supportFinal []bool, globalDofCount int, err error) {

	numElements := g.NumElements
	numVertices := g.NumVertices

	// Provisional map holding vertex indices, -1 for unassigned slots.
	vertexMap := make([]int, 3*numElements)
	for i := range vertexMap {
		vertexMap[i] = -1
	}
	vertexIsDof := make([]bool, numVertices)

	worklist := make([]int, 0, numElements)
	queued := make([]bool, numElements)
	fromExtension := make([]bool, numElements)
	for k := 0; k < numElements; k++ {
		if support[k] {
			worklist = append(worklist, k)
			queued[k] = true
		}
	}

	for i := 0; i < len(worklist); i++ {
		elementIndex := worklist[i]
		for localIndex := 0; localIndex < 3; localIndex++ {
			vertex := g.Elements[3*elementIndex+localIndex]
			neighbors := adjacency.Incident(vertex)

			nonSupportCount := 0
			for _, n := range neighbors {
				if !support[n] {
					nonSupportCount++
				}
			}

			if includeBoundaryDofs || nonSupportCount == 0 {
				vertexMap[3*elementIndex+localIndex] = vertex
				vertexIsDof[vertex] = true
			}

			if nonSupportCount > 0 && ensureGlobalContinuity && includeBoundaryDofs {
				for _, n := range neighbors {
					if support[n] {
						continue
					}
					// Corner ordering differs per element, so the slot
					// holding this vertex is found by exact match.
					slot := findLocalIndex(g, n, vertex)
					if slot < 0 {
						return nil, nil, nil, 0, fmt.Errorf(
							"adjacency lists element %d for vertex %d but the element does not contain it",
							n, vertex)
					}
					vertexMap[3*n+slot] = vertex
					if !queued[n] {
						queued[n] = true
						fromExtension[n] = true
						worklist = append(worklist, n)
					}
				}
			}
		}
	}

	// Compact the marked vertices into dense global DOF indices.
	dofs := make([]int, numVertices)
	for v := 0; v < numVertices; v++ {
		if vertexIsDof[v] {
			dofs[v] = globalDofCount
			globalDofCount++
		} else {
			dofs[v] = -1
		}
	}

	local2global = make([]int, 3*numElements)
	localMultipliers = make([]float64, 3*numElements)
	supportFinal = make([]bool, numElements)

	for _, elementIndex := range worklist {
		minDof := -1
		for localIndex := 0; localIndex < 3; localIndex++ {
			vertex := vertexMap[3*elementIndex+localIndex]
			if vertex < 0 {
				continue
			}
			dof := dofs[vertex]
			local2global[3*elementIndex+localIndex] = dof
			localMultipliers[3*elementIndex+localIndex] = 1
			supportFinal[elementIndex] = true
			if minDof < 0 || dof < minDof {
				minDof = dof
			}
		}

		if minDof < 0 {
			if fromExtension[elementIndex] {
				// Extension only queues elements sharing an assigned
				// vertex, so an empty element here is a structural defect.
				return nil, nil, nil, 0, fmt.Errorf(
					"element %d reached by continuity extension has no assignable vertex", elementIndex)
			}
			// Support element whose vertices all touch non-support
			// neighbors under IncludeBoundaryDofs=false: stays inert.
			continue
		}

		for localIndex := 0; localIndex < 3; localIndex++ {
			if vertexMap[3*elementIndex+localIndex] < 0 {
				local2global[3*elementIndex+localIndex] = minDof
			}
		}
	}

	return local2global, localMultipliers, supportFinal, globalDofCount, nil
}

// findLocalIndex returns the local slot of element k whose corner is the
// given vertex, or -1 when the element does not contain it.
func findLocalIndex(g *grid.Grid, k, vertex int) int {
	for slot := 0; slot < 3; slot++ {
		if g.Elements[3*k+slot] == vertex {
			return slot
		}
	}
	return -1
}
