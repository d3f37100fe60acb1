// Package geodesic defines the types and configuration options of the
// single-source geodesic engine.
//
// The engine approximates surface distance by the shortest path along mesh
// edges: the distance between two vertices is the smallest sum of edge
// lengths over any edge path joining them.
//
// Complexity:
//
//	– Time:  O(E + V log V) per source with the Fibonacci heap
//	   • V inserts at O(1), V extract-mins at O(log V) amortized,
//	   • at most E decrease-keys at O(1) amortized.
//	– Space: O(V) for distances, heap nodes and the vertex→handle table.
//
// Options:
//
//	– Method:      which algorithm computes the distances (MethodOnEdge).
//	– MaxDistance: vertices farther than this stay at +Inf; the run stops early.
//	– ReturnPath:  also record the predecessor of every reached vertex.
//
// Errors (sentinel):
//
//	– ErrNilGraph              if the graph is nil.
//	– ErrEmptyGraph            if the graph has no vertices.
//	– ErrSourceOutOfRange      if the source index is not a vertex.
//	– ErrBadMaxDistance        if MaxDistance is negative or NaN.
//	– ErrNegativeLength        if an edge reports a negative or NaN length.
//	– ErrBadEdge               if an incident edge does not touch its vertex.
//	– ErrMethodNotImplemented  if the selected method has no implementation.
package geodesic

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the geodesic engine.
var (
	// ErrNilGraph indicates a nil Graph was passed in.
	ErrNilGraph = errors.New("geodesic: graph is nil")

	// ErrEmptyGraph indicates the graph has no vertices.
	ErrEmptyGraph = errors.New("geodesic: graph has no vertices")

	// ErrSourceOutOfRange indicates the source index is not in [0, VertexCount).
	ErrSourceOutOfRange = errors.New("geodesic: source vertex out of range")

	// ErrBadMaxDistance indicates MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("geodesic: MaxDistance must be a non-negative number")

	// ErrNegativeLength indicates an edge length below zero (or NaN).
	ErrNegativeLength = errors.New("geodesic: negative edge length encountered")

	// ErrBadEdge indicates EdgesOf(u) listed an edge with no endpoint u or an endpoint out of range.
	ErrBadEdge = errors.New("geodesic: inconsistent incident edge")

	// ErrMethodNotImplemented indicates the selected Method has no implementation.
	ErrMethodNotImplemented = errors.New("geodesic: method not implemented")

	// ErrNoPath indicates PathTo was asked for an unreachable vertex.
	ErrNoPath = errors.New("geodesic: vertex is unreachable")

	// ErrPathNotRecorded indicates PathTo was called on a Result computed without WithReturnPath.
	ErrPathNotRecorded = errors.New("geodesic: predecessors were not recorded")
)

// Graph is the read-only view of a mesh the engine needs.
// *mesh.Mesh and *mesh.View implement it.
type Graph interface {
	VertexCount() int
	EdgesOf(v int) []int
	Endpoints(e int) (int, int)
	Length(e int) float64
}

// Method selects how distances are computed.
type Method int

const (
	// MethodOnEdge restricts paths to mesh edges (Dijkstra over the edge graph).
	MethodOnEdge Method = iota

	// MethodExact is the exact surface geodesic (paths may cross faces).
	// It is reserved and currently returns ErrMethodNotImplemented.
	MethodExact
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodOnEdge:
		return "on-edge"
	case MethodExact:
		return "exact"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Options configures a single-source run.
//
// Method      – algorithm kind. Default MethodOnEdge.
// MaxDistance – exploration cap; vertices farther away report +Inf. Default +Inf.
// ReturnPath  – record predecessors in Result.Prev. Default false.
type Options struct {
	Method      Method
	MaxDistance float64
	ReturnPath  bool
}

// Option represents a functional option for configuring a run.
type Option func(*Options)

// WithMethod selects the algorithm kind.
func WithMethod(m Method) Option {
	return func(o *Options) { o.Method = m }
}

// WithMaxDistance caps exploration. Invalid values are reported by Compute
// as ErrBadMaxDistance.
func WithMaxDistance(d float64) Option {
	return func(o *Options) { o.MaxDistance = d }
}

// WithReturnPath enables the predecessor array in Result.Prev.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}

// DefaultOptions returns the defaults: MethodOnEdge, no distance cap, no predecessors.
func DefaultOptions() Options {
	return Options{
		Method:      MethodOnEdge,
		MaxDistance: math.Inf(1),
	}
}

// validate checks option values.
func (o Options) validate() error {
	if math.IsNaN(o.MaxDistance) || o.MaxDistance < 0 {
		return fmt.Errorf("%w: %g", ErrBadMaxDistance, o.MaxDistance)
	}

	return nil
}
