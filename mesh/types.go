// Package mesh defines the triangular Mesh, Vertex, Edge and Triangle types
// and provides thread-safe primitives for building and querying meshes.
//
// All Mesh APIs use one sync.RWMutex: builders take the write lock, accessors
// the read lock, so many shortest-path runs can read one mesh concurrently.
//
// This file declares the types, options, sentinel errors and the New constructor.
//
// Errors:
//
//	ErrVertexNotFound - vertex index outside [0, VertexCount).
//	ErrEdgeNotFound   - edge index outside [0, EdgeCount).
//	ErrDegenerate     - self-edge or triangle with repeated vertices.
//	ErrBadCoordinate  - NaN or ±Inf coordinate under strict coordinates.
package mesh

import (
	"errors"
	"sync"
)

// Sentinel errors for mesh operations.
var (
	// ErrVertexNotFound indicates an operation referenced a non-existent vertex index.
	ErrVertexNotFound = errors.New("mesh: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge index.
	ErrEdgeNotFound = errors.New("mesh: edge not found")

	// ErrTriangleNotFound indicates an operation referenced a non-existent triangle index.
	ErrTriangleNotFound = errors.New("mesh: triangle not found")

	// ErrDegenerate indicates a self-edge or a triangle whose corners repeat.
	ErrDegenerate = errors.New("mesh: degenerate element")

	// ErrBadCoordinate indicates a NaN or infinite coordinate.
	ErrBadCoordinate = errors.New("mesh: coordinate is NaN or Inf")
)

// Vertex is a mesh point.
//
// Index is its position in the vertex sequence; it is assigned at creation
// and never reused. Edges, Triangles and Neighbors hold incident indices in
// insertion order.
type Vertex struct {
	Index     int
	Coords    [3]float64
	Edges     []int
	Triangles []int
	Neighbors []int
}

// Edge joins two vertices. Length is the Euclidean distance between the
// endpoints when the edge was created. Coordinates are immutable after
// AddVertex, so the length never goes stale.
type Edge struct {
	Index  int
	V1, V2 int
	Length float64
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.V1 == v {
		return e.V2
	}

	return e.V1
}

// Triangle is a face over three distinct vertices.
type Triangle struct {
	Index int
	V     [3]int
}

// Option configures a Mesh before creation.
type Option func(m *Mesh)

// WithCapacity pre-sizes vertex and triangle storage. Edge storage is sized
// from the triangle count (≈1.5 edges per triangle on closed meshes).
func WithCapacity(vertices, triangles int) Option {
	return func(m *Mesh) {
		if vertices > 0 {
			m.verts = make([]*Vertex, 0, vertices)
		}
		if triangles > 0 {
			m.tris = make([]*Triangle, 0, triangles)
			m.edges = make([]*Edge, 0, triangles*3/2+1)
		}
	}
}

// WithStrictCoordinates makes AddVertex reject NaN and ±Inf coordinates.
func WithStrictCoordinates() Option {
	return func(m *Mesh) { m.strict = true }
}

// Mesh is an in-memory triangular mesh.
//
// mu guards every field. pairs maps an unordered vertex pair to its edge so
// that at most one edge exists per pair.
type Mesh struct {
	mu sync.RWMutex

	strict bool // reject non-finite coordinates

	verts []*Vertex
	edges []*Edge
	tris  []*Triangle
	pairs map[uint64]int // pairKey(a,b) -> edge index
}

// New creates an empty Mesh.
// Complexity: O(1) plus requested capacity.
func New(opts ...Option) *Mesh {
	m := &Mesh{pairs: make(map[uint64]int)}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// pairKey packs an unordered vertex pair into one map key.
func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}

	return uint64(uint32(a))<<32 | uint64(uint32(b))
}
