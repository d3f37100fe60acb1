// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only accessors. Every method takes the read lock.
// Policy:
//   - Slices returned by EdgesOf / NeighborsOf are shared; callers must not modify them.
//   - Vertex / Edge / Triangle return copies.

package mesh

import "fmt"

// VertexCount returns the number of vertices. A nil mesh has none.
// Complexity: O(1).
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.verts)
}

// EdgeCount returns the number of edges.
func (m *Mesh) EdgeCount() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.edges)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.tris)
}

// EdgesOf returns the indices of edges incident to v, or nil if v is out of range.
// Complexity: O(1).
func (m *Mesh) EdgesOf(v int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v < 0 || v >= len(m.verts) {
		return nil
	}

	return m.verts[v].Edges
}

// NeighborsOf returns the vertices sharing an edge with v, or nil if v is out of range.
func (m *Mesh) NeighborsOf(v int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if v < 0 || v >= len(m.verts) {
		return nil
	}

	return m.verts[v].Neighbors
}

// Endpoints returns the two vertex indices of edge e, or (-1, -1) if e is out of range.
// Complexity: O(1).
func (m *Mesh) Endpoints(e int) (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e < 0 || e >= len(m.edges) {
		return -1, -1
	}

	return m.edges[e].V1, m.edges[e].V2
}

// Length returns the precomputed length of edge e, or 0 if e is out of range.
// Complexity: O(1).
func (m *Mesh) Length(e int) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e < 0 || e >= len(m.edges) {
		return 0
	}

	return m.edges[e].Length
}

// Vertex returns a copy of vertex v.
func (m *Mesh) Vertex(v int) (Vertex, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkVertex(v); err != nil {
		return Vertex{}, err
	}
	src := m.verts[v]

	return Vertex{
		Index:     src.Index,
		Coords:    src.Coords,
		Edges:     append([]int(nil), src.Edges...),
		Triangles: append([]int(nil), src.Triangles...),
		Neighbors: append([]int(nil), src.Neighbors...),
	}, nil
}

// Edge returns a copy of edge e.
func (m *Mesh) Edge(e int) (Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if e < 0 || e >= len(m.edges) {
		return Edge{}, fmt.Errorf("edge %d of %d: %w", e, len(m.edges), ErrEdgeNotFound)
	}

	return *m.edges[e], nil
}

// Triangle returns a copy of triangle t.
func (m *Mesh) Triangle(t int) (Triangle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if t < 0 || t >= len(m.tris) {
		return Triangle{}, fmt.Errorf("triangle %d of %d: %w", t, len(m.tris), ErrTriangleNotFound)
	}

	return *m.tris[t], nil
}

// Coords returns the coordinates of vertex v.
func (m *Mesh) Coords(v int) ([3]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkVertex(v); err != nil {
		return [3]float64{}, err
	}

	return m.verts[v].Coords, nil
}

// Stats is a point-in-time summary of a mesh.
type Stats struct {
	Vertices    int
	Edges       int
	Triangles   int
	TotalLength float64 // sum of edge lengths
	MinLength   float64 // 0 when there are no edges
	MaxLength   float64
}

// Stats returns counts and edge-length extremes.
// Complexity: O(E).
func (m *Mesh) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Stats{Vertices: len(m.verts), Edges: len(m.edges), Triangles: len(m.tris)}
	for i, e := range m.edges {
		s.TotalLength += e.Length
		if i == 0 || e.Length < s.MinLength {
			s.MinLength = e.Length
		}
		if e.Length > s.MaxLength {
			s.MaxLength = e.Length
		}
	}

	return s
}
