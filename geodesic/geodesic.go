// Package geodesic implements single-source edge-restricted geodesic
// distances on a mesh with a Fibonacci-heap Dijkstra.
//
// Notes on implementation choices:
//
//   - Every vertex gets a heap node up front (source key 0, others +Inf) and a
//     slot in the vertex→handle table, so relaxations use a true decrease-key
//     instead of pushing duplicates.
//   - Heaps are recycled through a sync.Pool; each run owns its heap and its
//     handle table exclusively, so runs may execute concurrently over one
//     read-only Graph.
//   - Once the extracted key is +Inf every remaining vertex is unreachable;
//     the rest of the heap is drained in bulk without consolidation.
package geodesic

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/meshpatch/fibheap"
)

// Result is the outcome of one single-source run.
type Result struct {
	Source int       // source vertex
	Method Method    // algorithm that produced Dist
	Dist   []float64 // Dist[v] = distance from Source to v; +Inf if unreachable
	Prev   []int     // Prev[v] = predecessor on a shortest path; -1 for Source/unreached; nil unless ReturnPath

	Settled   int // vertices extracted with a finite distance
	Unreached int // vertices left at +Inf
}

// ComputeFrom returns the distance vector from source to every vertex of g.
// It is Compute without the bookkeeping.
func ComputeFrom(g Graph, source int, opts ...Option) ([]float64, error) {
	res, err := Compute(g, source, opts...)
	if err != nil {
		return nil, err
	}

	return res.Dist, nil
}

// Compute runs the selected method from source over g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. g must have vertices (ErrEmptyGraph).
//  3. source must be a vertex (ErrSourceOutOfRange).
//  4. options must be valid (ErrBadMaxDistance).
//  5. the method must be implemented (ErrMethodNotImplemented).
//
// Disconnected vertices are not an error; they report +Inf.
func Compute(g Graph, source int, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs.
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.VertexCount()
	if n <= 0 {
		return nil, ErrEmptyGraph
	}
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSourceOutOfRange, source, n)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// 3) Dispatch on the method kind.
	switch cfg.Method {
	case MethodOnEdge:
		return onEdge(g, n, source, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrMethodNotImplemented, cfg.Method)
	}
}

// heapPool recycles heaps (and their arenas) between runs.
var heapPool = sync.Pool{
	New: func() any { return fibheap.New() },
}

func acquireHeap() *fibheap.Heap { return heapPool.Get().(*fibheap.Heap) }

func releaseHeap(h *fibheap.Heap) {
	h.Reset()
	heapPool.Put(h)
}

// runner holds the mutable state of one on-edge run.
type runner struct {
	g       Graph
	n       int
	cfg     Options
	heap    *fibheap.Heap
	handles []fibheap.Handle // vertex -> heap node
	res     *Result
}

// onEdge is Dijkstra over the edge graph.
func onEdge(g Graph, n, source int, cfg Options) (*Result, error) {
	h := acquireHeap()
	defer releaseHeap(h)

	r := &runner{
		g:       g,
		n:       n,
		cfg:     cfg,
		heap:    h,
		handles: make([]fibheap.Handle, n),
		res: &Result{
			Source: source,
			Method: MethodOnEdge,
			Dist:   make([]float64, n),
		},
	}
	if cfg.ReturnPath {
		r.res.Prev = make([]int, n)
	}

	r.init(source)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// init inserts one heap node per vertex: key 0 for the source, +Inf otherwise.
func (r *runner) init(source int) {
	inf := math.Inf(1)
	dist := r.res.Dist
	for v := 0; v < r.n; v++ {
		dist[v] = inf
		if r.res.Prev != nil {
			r.res.Prev[v] = -1
		}
	}
	dist[source] = 0
	for v := 0; v < r.n; v++ {
		r.handles[v] = r.heap.Insert(dist[v], v)
	}
}

// process extracts vertices in distance order and relaxes their edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty.
//   - The extracted key is +Inf: nothing left is reachable (within MaxDistance).
func (r *runner) process() error {
	for {
		d, u, ok := r.heap.ExtractMin()
		if !ok {
			return nil
		}
		if math.IsInf(d, 1) {
			unreached := 1
			r.heap.Drain(func(float64, int) { unreached++ })
			r.res.Unreached = unreached
			return nil
		}
		r.res.Settled++
		if err := r.relax(u, d); err != nil {
			return err
		}
	}
}

// relax improves the tentative distance of every neighbour of u.
// Candidates beyond MaxDistance are not recorded, so those vertices stay +Inf.
func (r *runner) relax(u int, du float64) error {
	dist := r.res.Dist
	for _, e := range r.g.EdgesOf(u) {
		a, b := r.g.Endpoints(e)
		v := a
		switch u {
		case a:
			v = b
		case b:
		default:
			return fmt.Errorf("%w: edge %d (%d,%d) listed for vertex %d", ErrBadEdge, e, a, b, u)
		}
		if v < 0 || v >= r.n {
			return fmt.Errorf("%w: edge %d endpoint %d out of range", ErrBadEdge, e, v)
		}

		w := r.g.Length(e)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: edge %d (%d,%d) length=%g", ErrNegativeLength, e, a, b, w)
		}

		nd := du + w
		if nd >= dist[v] || nd > r.cfg.MaxDistance {
			continue
		}
		dist[v] = nd
		if r.res.Prev != nil {
			r.res.Prev[v] = u
		}
		if err := r.heap.DecreaseKey(r.handles[v], nd); err != nil {
			return fmt.Errorf("geodesic: relax %d→%d: %w", u, v, err)
		}
	}

	return nil
}

// PathTo returns the vertex sequence from Source to v (inclusive).
//
// Errors:
//   - ErrPathNotRecorded if the run did not use WithReturnPath.
//   - ErrSourceOutOfRange if v is not a vertex.
//   - ErrNoPath if v is unreachable.
func (r *Result) PathTo(v int) ([]int, error) {
	if r.Prev == nil {
		return nil, ErrPathNotRecorded
	}
	if v < 0 || v >= len(r.Dist) {
		return nil, fmt.Errorf("%w: %d", ErrSourceOutOfRange, v)
	}
	if math.IsInf(r.Dist[v], 1) {
		return nil, fmt.Errorf("%w: %d", ErrNoPath, v)
	}

	var path []int
	for x := v; x != -1; x = r.Prev[x] {
		path = append(path, x)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
