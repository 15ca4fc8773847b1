package grid

// VertexAdjacency maps each vertex to the elements incident on it, stored
// flattened for O(1) allocation-free lookup: the incident elements of
// vertex v occupy Values[Offsets[v] : Offsets[v+1]]. Built once per grid
// and read-only afterwards.
type VertexAdjacency struct {
	Values  []int
	Offsets []int
}

// BuildVertexAdjacency scans the element connectivity and builds the
// vertex-to-element adjacency. Incident elements of a vertex appear in
// ascending element order. Isolated vertices get an empty range.
func BuildVertexAdjacency(g *Grid) *VertexAdjacency {
	counts := make([]int, g.NumVertices)
	for _, v := range g.Elements {
		counts[v]++
	}

	offsets := make([]int, g.NumVertices+1)
	for v := 0; v < g.NumVertices; v++ {
		offsets[v+1] = offsets[v] + counts[v]
	}

	values := make([]int, len(g.Elements))
	cursor := make([]int, g.NumVertices)
	copy(cursor, offsets[:g.NumVertices])
	for k := 0; k < g.NumElements; k++ {
		for _, v := range g.Elements[3*k : 3*k+3] {
			values[cursor[v]] = k
			cursor[v]++
		}
	}

	return &VertexAdjacency{Values: values, Offsets: offsets}
}

// Incident returns the elements incident on vertex v. The returned slice
// aliases the adjacency storage and must not be modified.
func (a *VertexAdjacency) Incident(v int) []int {
	return a.Values[a.Offsets[v]:a.Offsets[v+1]]
}

// Degree returns the number of elements incident on vertex v.
func (a *VertexAdjacency) Degree(v int) int {
	return a.Offsets[v+1] - a.Offsets[v]
}
