package patch

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/meshpatch/logging"
)

// Build slices one distance row into patchCount nested patches.
// Entries that are +Inf or NaN never fall inside a patch. A nil or empty row
// yields patchCount empty patches.
//
// Errors: ErrBadPatchCount, ErrBadRadius.
func Build[D Distance](row []D, minRadius, maxRadius float64, patchCount int) (List, error) {
	radii, err := Radii(minRadius, maxRadius, patchCount)
	if err != nil {
		return nil, err
	}

	return slice(row, radii), nil
}

// slice rescans row once per radius.
func slice[D Distance](row []D, radii []float64) List {
	out := make(List, len(radii))
	for i, r := range radii {
		p := Patch{}
		for w, d := range row {
			if float64(d) <= r {
				p = append(p, w)
			}
		}
		out[i] = p
	}

	return out
}

// isNil reports a nil source, including a typed nil pointer such as a nil
// *distmatrix.Matrix.
func isNil(src RowSource) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// BuildFor builds the patch list of vertex v from a borrowed matrix.
//
// Errors: ErrNilMatrix, ErrVertexOutOfRange, ErrBadPatchCount, ErrBadRadius.
func BuildFor(src RowSource, v int, minRadius, maxRadius float64, patchCount int) (List, error) {
	if isNil(src) {
		return nil, ErrNilMatrix
	}
	radii, err := Radii(minRadius, maxRadius, patchCount)
	if err != nil {
		return nil, err
	}
	if v < 0 || v >= src.Rows() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrVertexOutOfRange, v, src.Rows())
	}
	row, err := src.Row(v)
	if err != nil {
		return nil, fmt.Errorf("patch: row %d: %w", v, err)
	}

	return slice(row, radii), nil
}

// BuildAll builds one patch list per matrix row. Result i belongs to vertex i.
// Rows are processed on up to Workers goroutines; the matrix is only read.
func BuildAll(ctx context.Context, src RowSource, minRadius, maxRadius float64, patchCount int, opts ...Option) ([]List, error) {
	if isNil(src) {
		return nil, ErrNilMatrix
	}
	radii, err := Radii(minRadius, maxRadius, patchCount)
	if err != nil {
		return nil, err
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	log := logging.OrNoop(cfg.Logger).WithComponent("patch")

	n := src.Rows()
	out := make([]List, n)
	start := time.Now()

	var (
		mu   sync.Mutex
		done int
	)
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
			row, err := src.Row(v)
			if err != nil {
				return fmt.Errorf("patch: row %d: %w", v, err)
			}
			out[v] = slice(row, radii)

			if cfg.Progress != nil {
				mu.Lock()
				done++
				cfg.Progress(done, n)
				mu.Unlock()
			}
			return nil
		})
	}
	err = eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	log.LogPatchesBuilt(ctx, n, patchCount, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return out, nil
}
