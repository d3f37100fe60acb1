package meshpatch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/meshpatch/distmatrix"
	"github.com/katalvlaran/meshpatch/geodesic"
	"github.com/katalvlaran/meshpatch/logging"
	"github.com/katalvlaran/meshpatch/mesh"
	"github.com/katalvlaran/meshpatch/patch"
)

var (
	// ErrNilMesh indicates a nil mesh was passed to Run or RunVertex.
	ErrNilMesh = errors.New("meshpatch: mesh is nil")

	// ErrMatrixMismatch indicates a borrowed matrix whose shape does not fit the mesh.
	ErrMatrixMismatch = errors.New("meshpatch: matrix shape does not match mesh")
)

// MatrixSource tells where Run obtained its distance matrix.
type MatrixSource int

const (
	// MatrixBorrowed means the matrix passed with WithMatrix was used.
	MatrixBorrowed MatrixSource = iota
	// MatrixCached means the matrix was loaded from Config.MatrixPath.
	MatrixCached
	// MatrixBuilt means the matrix was computed from the mesh.
	MatrixBuilt
)

// String returns the source name.
func (s MatrixSource) String() string {
	switch s {
	case MatrixBorrowed:
		return "borrowed"
	case MatrixCached:
		return "cached"
	case MatrixBuilt:
		return "built"
	default:
		return fmt.Sprintf("MatrixSource(%d)", int(s))
	}
}

// Output is the result of Run. Patches[v] is the patch list of vertex v.
type Output struct {
	Matrix  *distmatrix.Matrix
	Source  MatrixSource
	Patches []patch.List
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMatrix lends a precomputed matrix to the extractor. The extractor only
// reads it; the caller keeps it alive and unmodified while Run executes.
func WithMatrix(m *distmatrix.Matrix) ExtractorOption {
	return func(e *Extractor) { e.matrix = m }
}

// WithLogger overrides the logger derived from Config.LogLevel.
func WithLogger(l *logging.Logger) ExtractorOption {
	return func(e *Extractor) { e.log = l }
}

// WithProgress receives matrix-build progress (rows done, rows total).
func WithProgress(fn distmatrix.ProgressFunc) ExtractorOption {
	return func(e *Extractor) { e.progress = fn }
}

// WithGeodesic forwards options to every single-source run.
func WithGeodesic(opts ...geodesic.Option) ExtractorOption {
	return func(e *Extractor) { e.geo = append(e.geo, opts...) }
}

// Extractor runs the distance → patch pipeline for one configuration.
// It is safe to reuse for several meshes; a borrowed matrix only fits the
// mesh it was computed for.
type Extractor struct {
	cfg      Config
	matrix   *distmatrix.Matrix
	log      *logging.Logger
	progress distmatrix.ProgressFunc
	geo      []geodesic.Option
}

// NewExtractor validates cfg and applies opts.
func NewExtractor(cfg Config, opts ...ExtractorOption) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		level, _ := logging.ParseLevel(cfg.LogLevel)
		e.log = logging.NewTextLogger(level)
	}
	e.log = e.log.WithComponent("meshpatch")

	return e, nil
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config { return e.cfg }

// Run produces the patch lists of every vertex of m.
//
// Steps:
//  1. Obtain the distance matrix: the borrowed one, else the cache file at
//     MatrixPath when it loads and fits, else a fresh build (saved to
//     MatrixPath when set).
//  2. Build Config.PatchCount patches per vertex from the matrix.
//  3. Save the patch lists to PatchesPath when set.
func (e *Extractor) Run(ctx context.Context, m *mesh.Mesh) (*Output, error) {
	if m == nil {
		return nil, ErrNilMesh
	}

	// 1) Distance matrix.
	mat, src, err := e.matrixFor(ctx, m)
	if err != nil {
		return nil, err
	}

	// 2) Patches.
	lists, err := patch.BuildAll(ctx, mat, e.cfg.MinRadius, e.cfg.MaxRadius, e.cfg.PatchCount,
		patch.WithWorkers(e.cfg.Workers),
		patch.WithLogger(e.log),
	)
	if err != nil {
		return nil, err
	}

	// 3) Optional persistence.
	if e.cfg.PatchesPath != "" {
		err := patch.Save(e.cfg.PatchesPath, lists)
		e.log.LogSave(ctx, "patches", e.cfg.PatchesPath, err)
		if err != nil {
			return nil, err
		}
	}

	return &Output{Matrix: mat, Source: src, Patches: lists}, nil
}

// matrixFor resolves step 1 of Run.
func (e *Extractor) matrixFor(ctx context.Context, m *mesh.Mesh) (*distmatrix.Matrix, MatrixSource, error) {
	n := m.VertexCount()

	if e.matrix != nil {
		if e.matrix.Rows() != n || e.matrix.Cols() != n {
			return nil, MatrixBorrowed, fmt.Errorf("%w: %dx%d for %d vertices",
				ErrMatrixMismatch, e.matrix.Rows(), e.matrix.Cols(), n)
		}
		return e.matrix, MatrixBorrowed, nil
	}

	if path := e.cfg.MatrixPath; path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			mat, err := distmatrix.LoadFile(path)
			switch {
			case err != nil:
				e.log.LogLoad(ctx, "distance matrix", path, err)
			case mat.Rows() != n || mat.Cols() != n:
				e.log.LogLoad(ctx, "distance matrix", path,
					fmt.Errorf("%w: cached %dx%d for %d vertices", ErrMatrixMismatch, mat.Rows(), mat.Cols(), n))
			default:
				e.log.LogLoad(ctx, "distance matrix", path, nil)
				return mat, MatrixCached, nil
			}
		}
	}

	mat, err := distmatrix.Build(ctx, m,
		distmatrix.WithWorkers(e.cfg.Workers),
		distmatrix.WithLogger(e.log),
		distmatrix.WithProgress(e.progress),
		distmatrix.WithGeodesic(e.geo...),
	)
	if err != nil {
		return nil, MatrixBuilt, err
	}
	if path := e.cfg.MatrixPath; path != "" {
		if err := mat.Save(path,
			distmatrix.WithCompression(e.cfg.compression()),
			distmatrix.WithLogger(e.log),
		); err != nil {
			return nil, MatrixBuilt, err
		}
	}

	return mat, MatrixBuilt, nil
}

// RunVertex computes the patch list of vertex v from a single distance row,
// without building or touching any matrix. The row is narrowed to float32
// first, so radius boundaries fall exactly where Run puts them.
func (e *Extractor) RunVertex(ctx context.Context, m *mesh.Mesh, v int) (patch.List, error) {
	if m == nil {
		return nil, ErrNilMesh
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dist, err := geodesic.ComputeFrom(m, v, e.geo...)
	if err != nil {
		return nil, err
	}
	row := make([]float32, len(dist))
	for w, d := range dist {
		row[w] = float32(d)
	}

	return patch.Build(row, e.cfg.MinRadius, e.cfg.MaxRadius, e.cfg.PatchCount)
}
