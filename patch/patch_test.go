package patch_test

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshpatch/distmatrix"
	"github.com/katalvlaran/meshpatch/mesh"
	"github.com/katalvlaran/meshpatch/patch"
)

func TestRadii(t *testing.T) {
	r, err := patch.Radii(0, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, r)

	r, err = patch.Radii(0.1, 0.7, 7)
	require.NoError(t, err)
	assert.Equal(t, 0.7, r[6], "last radius is exactly maxRadius")

	r, err = patch.Radii(2, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, r)

	_, err = patch.Radii(0, 1, 1)
	assert.ErrorIs(t, err, patch.ErrBadPatchCount)
	_, err = patch.Radii(2, 1, 3)
	assert.ErrorIs(t, err, patch.ErrBadRadius)
	_, err = patch.Radii(math.NaN(), 1, 3)
	assert.ErrorIs(t, err, patch.ErrBadRadius)
	_, err = patch.Radii(0, math.Inf(1), 3)
	assert.ErrorIs(t, err, patch.ErrBadRadius)
}

func TestBuild_SquareRow(t *testing.T) {
	row := []float64{0, 1, math.Sqrt2, 1}
	l, err := patch.Build(row, 0, 1.5, 4)
	require.NoError(t, err)
	require.Len(t, l, 4)

	assert.Equal(t, patch.Patch{0}, l[0])          // r=0
	assert.Equal(t, patch.Patch{0}, l[1])          // r=0.5
	assert.Equal(t, patch.Patch{0, 1, 3}, l[2])    // r=1.0
	assert.Equal(t, patch.Patch{0, 1, 2, 3}, l[3]) // r=1.5
	assert.True(t, l.Nested())
}

func TestBuild_InfAndNaNNeverIncluded(t *testing.T) {
	row := []float32{0, float32(math.Inf(1)), float32(math.NaN()), 3}
	l, err := patch.Build(row, 1, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, patch.Patch{0}, l[0])
	assert.Equal(t, patch.Patch{0, 3}, l[1])

	l, err = patch.Build([]float64(nil), 0, 1, 3)
	require.NoError(t, err)
	require.Len(t, l, 3)
	for _, p := range l {
		assert.Empty(t, p)
	}
}

func TestBuild_MonotonicNestingRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(60)
		row := make([]float64, n)
		for i := range row {
			row[i] = rng.Float64() * 10
			if rng.Intn(8) == 0 {
				row[i] = math.Inf(1)
			}
		}
		minR := rng.Float64() * 3
		maxR := minR + rng.Float64()*8
		count := 2 + rng.Intn(9)

		l, err := patch.Build(row, minR, maxR, count)
		require.NoError(t, err)
		require.Len(t, l, count)
		require.True(t, l.Nested(), "trial %d", trial)
		for i := 1; i < len(l); i++ {
			require.GreaterOrEqual(t, len(l[i]), len(l[i-1]))
		}
	}
}

func TestList_Rings(t *testing.T) {
	l := patch.List{{0}, {0, 2}, {0, 1, 2, 3}}

	r0, err := l.Ring(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, r0.ToArray())

	r2, err := l.Ring(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3}, r2.ToArray())

	_, err = l.Ring(3)
	assert.ErrorIs(t, err, patch.ErrPatchIndex)

	bms := l.Bitmaps()
	require.Len(t, bms, 3)
	assert.Equal(t, uint64(4), bms[2].GetCardinality())

	assert.False(t, patch.List{{0, 1}, {0}}.Nested())
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, 1.0, patch.Overlap(nil, nil))
	assert.Equal(t, 0.5, patch.Overlap(patch.Patch{0, 1}, patch.Patch{1}))
	assert.Equal(t, 0.0, patch.Overlap(patch.Patch{0}, patch.Patch{1}))
}

func cubeMatrix(t *testing.T) *distmatrix.Matrix {
	t.Helper()
	m, err := mesh.NewCube(1)
	require.NoError(t, err)
	mat, err := distmatrix.Build(context.Background(), m)
	require.NoError(t, err)
	return mat
}

func TestBuildFor_BorrowsMatrix(t *testing.T) {
	mat := cubeMatrix(t)

	l, err := patch.BuildFor(mat, 1, 0, 3, 4)
	require.NoError(t, err)
	require.Len(t, l, 4)
	assert.Equal(t, patch.Patch{1}, l[0])
	assert.Len(t, l[3], 8, "radius 3 covers the whole cube")
	assert.True(t, l.Nested())

	row, err := mat.Row(1)
	require.NoError(t, err)
	direct, err := patch.Build(row, 0, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, direct, l)

	_, err = patch.BuildFor(nil, 0, 0, 1, 2)
	assert.ErrorIs(t, err, patch.ErrNilMatrix)
	var nilMat *distmatrix.Matrix
	_, err = patch.BuildFor(nilMat, 0, 0, 1, 2)
	assert.ErrorIs(t, err, patch.ErrNilMatrix)
	_, err = patch.BuildFor(mat, 8, 0, 1, 2)
	assert.ErrorIs(t, err, patch.ErrVertexOutOfRange)
	_, err = patch.BuildFor(mat, 0, 0, 1, 1)
	assert.ErrorIs(t, err, patch.ErrBadPatchCount)
}

func TestBuildAll(t *testing.T) {
	mat := cubeMatrix(t)

	var (
		mu    sync.Mutex
		calls int
	)
	all, err := patch.BuildAll(context.Background(), mat, 0.5, 2.5, 3,
		patch.WithWorkers(3),
		patch.WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			assert.Equal(t, calls, done)
			assert.Equal(t, 8, total)
		}),
	)
	require.NoError(t, err)
	require.Len(t, all, 8)
	assert.Equal(t, 8, calls)

	for v, l := range all {
		want, err := patch.BuildFor(mat, v, 0.5, 2.5, 3)
		require.NoError(t, err)
		assert.Equal(t, want, l, "vertex %d", v)
		assert.Contains(t, l[0], v)
	}

	empty, err := distmatrix.New(0, 0)
	require.NoError(t, err)
	all, err = patch.BuildAll(context.Background(), empty, 0, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = patch.BuildAll(context.Background(), nil, 0, 1, 2)
	assert.ErrorIs(t, err, patch.ErrNilMatrix)
	var nilMat *distmatrix.Matrix
	all, err = patch.BuildAll(context.Background(), nilMat, 0, 1, 2)
	assert.ErrorIs(t, err, patch.ErrNilMatrix)
	assert.Nil(t, all)
	_, err = patch.BuildAll(context.Background(), mat, 0, 1, 0)
	assert.ErrorIs(t, err, patch.ErrBadPatchCount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = patch.BuildAll(ctx, mat, 0, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
