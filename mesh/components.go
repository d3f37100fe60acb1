package mesh

// Components finds the connected components of the edge graph.
// Returns a slice of components; each component lists vertex indices in BFS
// order starting from its smallest index. Isolated vertices form singleton
// components. Vertices in different components are at infinite geodesic
// distance from each other.
//
// Time:   O(V + E).
// Memory: O(V) for visited flags and output.
func (m *Mesh) Components() [][]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make([]bool, len(m.verts))
	var comps [][]int

	for v0 := range m.verts {
		if seen[v0] {
			continue
		}
		// BFS to collect component
		queue := []int{v0}
		seen[v0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, w := range m.verts[u].Neighbors {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps
}
