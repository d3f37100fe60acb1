// Package patch partitions the geodesic neighbourhood of a vertex into
// concentric, radius-bounded vertex sets.
//
// For radii r_0 < r_1 < ... < r_{n-1}, evenly spaced between minRadius and
// maxRadius, patch i of vertex v holds every vertex w with d(v, w) <= r_i.
// Each patch is an independent rescan of the distance row, so patches are
// nested: patch[i] is a subset of patch[i+1].
//
// The batch form reads rows from a borrowed distance matrix; it never copies
// or owns it, and the caller keeps the matrix alive for the duration of the call.
package patch

import (
	"fmt"
	"math"
	"runtime"

	"github.com/katalvlaran/meshpatch/logging"
)

// Patch is the set of vertex ids inside one radius, in ascending order.
type Patch []int

// List is the patch sequence of one center vertex, ordered by increasing radius.
type List []Patch

// Distance constrains the element type of a distance row.
type Distance interface {
	~float32 | ~float64
}

// RowSource is the read-only view of a distance matrix the batch builder
// borrows. *distmatrix.Matrix implements it.
type RowSource interface {
	Rows() int
	Row(i int) ([]float32, error)
}

// Radii returns the patchCount radii minRadius + i*step, step =
// (maxRadius-minRadius)/(patchCount-1). The last radius is exactly maxRadius.
func Radii(minRadius, maxRadius float64, patchCount int) ([]float64, error) {
	if patchCount < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadPatchCount, patchCount)
	}
	if !finite(minRadius) || !finite(maxRadius) || minRadius > maxRadius {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrBadRadius, minRadius, maxRadius)
	}

	step := (maxRadius - minRadius) / float64(patchCount-1)
	radii := make([]float64, patchCount)
	for i := range radii {
		radii[i] = minRadius + float64(i)*step
	}
	radii[patchCount-1] = maxRadius

	return radii, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// ProgressFunc receives (vertices done, vertices total) during BuildAll.
type ProgressFunc func(done, total int)

// Options configures BuildAll.
//
// Workers  – concurrent per-vertex builds. Default runtime.GOMAXPROCS(0).
// Logger   – structured logger. Default: discard.
// Progress – optional progress callback; calls are serialized.
type Options struct {
	Workers  int
	Logger   *logging.Logger
	Progress ProgressFunc
}

// Option represents a functional option for BuildAll.
type Option func(*Options)

// WithWorkers bounds concurrency; values below 1 select the default.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithProgress sets a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0)}
}
