package distmatrix

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/meshpatch/geodesic"
	"github.com/katalvlaran/meshpatch/logging"
	"github.com/katalvlaran/meshpatch/mesh"
)

// ProgressFunc receives (rows done, rows total) after every finished
// single-source run. Calls are serialized and done increases by one each time.
type ProgressFunc func(done, total int)

// Options configures Build and Save.
//
// Workers     – concurrent single-source runs. Default runtime.GOMAXPROCS(0).
// Logger      – structured logger. Default: discard.
// Progress    – optional progress callback.
// Geodesic    – options passed to every single-source run.
// Compression – codec used by Save. Default CompressionNone.
type Options struct {
	Workers     int
	Logger      *logging.Logger
	Progress    ProgressFunc
	Geodesic    []geodesic.Option
	Compression Compression
}

// Option represents a functional option for Build and Save.
type Option func(*Options)

// WithWorkers bounds the number of concurrent single-source runs.
// Values below 1 select the default.
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

// WithGeodesic forwards options to every single-source run.
func WithGeodesic(opts ...geodesic.Option) Option {
	return func(o *Options) { o.Geodesic = append(o.Geodesic, opts...) }
}

// WithCompression selects the codec used by Save.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// DefaultOptions returns the defaults described on Options.
func DefaultOptions() Options {
	return Options{
		Workers:     runtime.GOMAXPROCS(0),
		Compression: CompressionNone,
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	cfg.Logger = logging.OrNoop(cfg.Logger)

	return cfg
}

// snapshotter is implemented by *mesh.Mesh; Build reads from an immutable
// view so concurrent runs never touch the mesh lock.
type snapshotter interface {
	Snapshot() *mesh.View
}

// isNilGraph reports a nil graph, including a typed nil pointer such as a
// nil *mesh.Mesh.
func isNilGraph(g geodesic.Graph) bool {
	if g == nil {
		return true
	}
	v := reflect.ValueOf(g)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Build computes the N×N distance matrix of g, one single-source run per
// vertex, writing row v from the run rooted at v.
//
// Runs are independent and execute on up to Workers goroutines, each with its
// own heap and handle table; only the read-only graph is shared.
// An empty graph yields a 0×0 matrix and no error. The first failing run
// (or ctx cancellation) aborts the build and its error is returned.
func Build(ctx context.Context, g geodesic.Graph, opts ...Option) (*Matrix, error) {
	if isNilGraph(g) {
		return nil, ErrNilGraph
	}
	cfg := buildOptions(opts)
	if s, ok := g.(snapshotter); ok {
		g = s.Snapshot()
	}

	n := g.VertexCount()
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return m, nil
	}

	start := time.Now()
	log := cfg.Logger.WithComponent("distmatrix").WithVertices(n)

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		done++
		log.LogMatrixProgress(ctx, done, n)
		if cfg.Progress != nil {
			cfg.Progress(done, n)
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for v := 0; v < n; v++ {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			dist, err := geodesic.ComputeFrom(g, v, cfg.Geodesic...)
			if err != nil {
				return fmt.Errorf("distmatrix: row %d: %w", v, err)
			}
			// Rows are disjoint, so concurrent SetRow calls do not race.
			if err := m.SetRow(v, dist); err != nil {
				return err
			}
			report()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.LogMatrixBuilt(ctx, n, time.Since(start), err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.LogMatrixBuilt(ctx, n, time.Since(start), err)
		return nil, err
	}
	log.LogMatrixBuilt(ctx, n, time.Since(start), nil)

	return m, nil
}
