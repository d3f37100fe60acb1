// File: view.go
// Role: Immutable, lock-free snapshot of the edge graph.
// Concurrency:
//   - Read lock on the source while copying; the View itself is never mutated
//     and can be shared by any number of goroutines.

package mesh

// View is a compressed-sparse-row copy of a mesh's edge graph. It exposes the
// same read accessors the shortest-path engine needs, without locking.
type View struct {
	firstOut []int     // len V+1; incident[firstOut[v]:firstOut[v+1]] are v's edges
	incident []int     // edge indices grouped by vertex
	v1, v2   []int     // endpoints per edge
	length   []float64 // length per edge
}

// Snapshot copies the current edge graph into a View.
// Complexity: O(V + E). A nil mesh yields an empty View.
func (m *Mesh) Snapshot() *View {
	if m == nil {
		return &View{firstOut: []int{0}}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	nv, ne := len(m.verts), len(m.edges)
	v := &View{
		firstOut: make([]int, nv+1),
		incident: make([]int, 0, 2*ne),
		v1:       make([]int, ne),
		v2:       make([]int, ne),
		length:   make([]float64, ne),
	}
	for i, vx := range m.verts {
		v.firstOut[i] = len(v.incident)
		v.incident = append(v.incident, vx.Edges...)
	}
	v.firstOut[nv] = len(v.incident)
	for i, e := range m.edges {
		v.v1[i], v.v2[i], v.length[i] = e.V1, e.V2, e.Length
	}

	return v
}

// VertexCount returns the number of vertices.
func (v *View) VertexCount() int {
	if v == nil {
		return 0
	}

	return len(v.firstOut) - 1
}

// EdgesOf returns the incident edge indices of vertex u, or nil if out of range.
func (v *View) EdgesOf(u int) []int {
	if u < 0 || u >= len(v.firstOut)-1 {
		return nil
	}

	return v.incident[v.firstOut[u]:v.firstOut[u+1]]
}

// Endpoints returns the two vertices of edge e, or (-1, -1) if out of range.
func (v *View) Endpoints(e int) (int, int) {
	if e < 0 || e >= len(v.v1) {
		return -1, -1
	}

	return v.v1[e], v.v2[e]
}

// Length returns the length of edge e, or 0 if out of range.
func (v *View) Length(e int) float64 {
	if e < 0 || e >= len(v.length) {
		return 0
	}

	return v.length[e]
}
