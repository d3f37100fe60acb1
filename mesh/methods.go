// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: Mesh mutation (AddVertex, AddEdge, AddTriangle) under the write lock.

package mesh

import (
	"fmt"
	"math"
)

// AddVertex appends a vertex at (x, y, z) and returns its index.
//
// Errors:
//   - ErrBadCoordinate when strict coordinates are enabled and a value is NaN/Inf.
//
// Complexity: O(1) amortized.
func (m *Mesh) AddVertex(x, y, z float64) (int, error) {
	if m.strict {
		for _, c := range [3]float64{x, y, z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return -1, fmt.Errorf("AddVertex(%g,%g,%g): %w", x, y, z, ErrBadCoordinate)
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.verts)
	m.verts = append(m.verts, &Vertex{Index: idx, Coords: [3]float64{x, y, z}})

	return idx, nil
}

// AddEdge connects a and b and returns the edge index. If the pair is already
// connected, the existing edge index is returned and nothing changes.
//
// Errors:
//   - ErrVertexNotFound if either index is out of range.
//   - ErrDegenerate if a == b.
//
// Complexity: O(1) amortized.
func (m *Mesh) AddEdge(a, b int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkVertex(a); err != nil {
		return -1, err
	}
	if err := m.checkVertex(b); err != nil {
		return -1, err
	}
	if a == b {
		return -1, fmt.Errorf("AddEdge(%d,%d): %w", a, b, ErrDegenerate)
	}

	return m.ensureEdgeLocked(a, b), nil
}

// AddTriangle appends the face (a, b, c), registers it with its corners and
// creates the missing edges among them. It returns the triangle index.
//
// Errors:
//   - ErrVertexNotFound if any index is out of range.
//   - ErrDegenerate if two corners coincide.
//
// Complexity: O(1) amortized.
func (m *Mesh) AddTriangle(a, b, c int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, v := range [3]int{a, b, c} {
		if err := m.checkVertex(v); err != nil {
			return -1, err
		}
	}
	if a == b || a == c || b == c {
		return -1, fmt.Errorf("AddTriangle(%d,%d,%d): %w", a, b, c, ErrDegenerate)
	}

	idx := len(m.tris)
	m.tris = append(m.tris, &Triangle{Index: idx, V: [3]int{a, b, c}})
	m.verts[a].Triangles = append(m.verts[a].Triangles, idx)
	m.verts[b].Triangles = append(m.verts[b].Triangles, idx)
	m.verts[c].Triangles = append(m.verts[c].Triangles, idx)

	m.ensureEdgeLocked(a, b)
	m.ensureEdgeLocked(a, c)
	m.ensureEdgeLocked(b, c)

	return idx, nil
}

// ensureEdgeLocked returns the edge between a and b, creating it (and the
// neighbor relation) when missing. Caller holds the write lock.
func (m *Mesh) ensureEdgeLocked(a, b int) int {
	key := pairKey(a, b)
	if e, ok := m.pairs[key]; ok {
		return e
	}

	va, vb := m.verts[a], m.verts[b]
	idx := len(m.edges)
	m.edges = append(m.edges, &Edge{
		Index:  idx,
		V1:     a,
		V2:     b,
		Length: distance(va.Coords, vb.Coords),
	})
	m.pairs[key] = idx

	va.Edges = append(va.Edges, idx)
	vb.Edges = append(vb.Edges, idx)
	va.Neighbors = append(va.Neighbors, b)
	vb.Neighbors = append(vb.Neighbors, a)

	return idx
}

// checkVertex validates a vertex index. Caller holds a lock.
func (m *Mesh) checkVertex(v int) error {
	if v < 0 || v >= len(m.verts) {
		return fmt.Errorf("vertex %d of %d: %w", v, len(m.verts), ErrVertexNotFound)
	}

	return nil
}

// distance is the Euclidean distance between two points.
func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
