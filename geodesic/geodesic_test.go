// Package geodesic_test contains unit tests for the geodesic engine: the unit
// square, disconnected parts, the cube, MaxDistance, paths and error cases.
package geodesic_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshpatch/geodesic"
	"github.com/katalvlaran/meshpatch/mesh"
)

const eps = 1e-9

func square(t testing.TB) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	for _, p := range [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
		_, err := m.AddVertex(p[0], p[1], p[2])
		require.NoError(t, err)
	}
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = m.AddTriangle(0, 2, 3)
	require.NoError(t, err)

	return m
}

func TestComputeFrom_Square(t *testing.T) {
	m := square(t)

	dist, err := geodesic.ComputeFrom(m, 0)
	require.NoError(t, err)
	want := []float64{0, 1, math.Sqrt2, 1}
	require.Len(t, dist, len(want))
	for v := range want {
		assert.InDelta(t, want[v], dist[v], eps, "vertex %d", v)
	}

	dist, err = geodesic.ComputeFrom(m, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dist[1], eps)
	assert.InDelta(t, 1.0, dist[0], eps)
	assert.InDelta(t, 1.0, dist[2], eps)
	assert.InDelta(t, 2.0, dist[3], eps)
}

func TestComputeFrom_IsolatedVertex(t *testing.T) {
	m := square(t)
	_, err := m.AddVertex(5, 5, 5)
	require.NoError(t, err)

	res, err := geodesic.Compute(m, 0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Dist[4], 1))
	assert.Equal(t, 4, res.Settled)
	assert.Equal(t, 1, res.Unreached)

	res, err = geodesic.Compute(m, 4)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Dist[4])
	for v := 0; v < 4; v++ {
		assert.True(t, math.IsInf(res.Dist[v], 1), "vertex %d", v)
	}
	assert.Equal(t, 4, res.Unreached)
}

func TestComputeFrom_DisconnectedTriangles(t *testing.T) {
	m := mesh.New()
	for i := 0; i < 6; i++ {
		_, err := m.AddVertex(float64(i%3), float64(i/3)*10, 0)
		require.NoError(t, err)
	}
	_, err := m.AddTriangle(0, 1, 2)
	require.NoError(t, err)
	_, err = m.AddTriangle(3, 4, 5)
	require.NoError(t, err)

	for s := 0; s < 6; s++ {
		dist, err := geodesic.ComputeFrom(m, s)
		require.NoError(t, err)
		for v := 0; v < 6; v++ {
			same := (s < 3) == (v < 3)
			assert.Equal(t, !same, math.IsInf(dist[v], 1), "s=%d v=%d", s, v)
		}
	}
}

func TestComputeFrom_Cube(t *testing.T) {
	m, err := mesh.NewCube(1)
	require.NoError(t, err)

	for s := 0; s < m.VertexCount(); s++ {
		dist, err := geodesic.ComputeFrom(m, s)
		require.NoError(t, err)
		for v, d := range dist {
			if v == s {
				assert.Equal(t, 0.0, d)
				continue
			}
			assert.Greater(t, d, 0.0)
			assert.LessOrEqual(t, d, 3+eps)
		}
	}

	// 0 and 5 are joined by the front diagonal plus one side; 1 and 4 lie on
	// no face diagonal, so three sides are needed.
	dist, err := geodesic.ComputeFrom(m, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1+math.Sqrt2, dist[5], eps)
	assert.InDelta(t, math.Sqrt2, dist[2], eps)
	assert.InDelta(t, 1.0, dist[1], eps)

	dist, err = geodesic.ComputeFrom(m, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, dist[4], eps)
}

func TestComputeFrom_SymmetricOnUndirectedMesh(t *testing.T) {
	m, err := mesh.NewCube(3)
	require.NoError(t, err)
	n := m.VertexCount()

	rows := make([][]float64, n)
	for s := 0; s < n; s++ {
		rows[s], err = geodesic.ComputeFrom(m, s)
		require.NoError(t, err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, rows[i][j], rows[j][i], eps)
		}
	}
}

func TestComputeFrom_SingleVertex(t *testing.T) {
	m := mesh.New()
	_, err := m.AddVertex(0, 0, 0)
	require.NoError(t, err)

	dist, err := geodesic.ComputeFrom(m, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, dist)
}

func TestCompute_MaxDistance(t *testing.T) {
	// Path 0–1–2–3 with unit edges.
	m := mesh.New()
	for i := 0; i < 4; i++ {
		_, err := m.AddVertex(float64(i), 0, 0)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := m.AddEdge(i, i+1)
		require.NoError(t, err)
	}

	res, err := geodesic.Compute(m, 0, geodesic.WithMaxDistance(1.5))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Dist[0])
	assert.InDelta(t, 1.0, res.Dist[1], eps)
	assert.True(t, math.IsInf(res.Dist[2], 1))
	assert.True(t, math.IsInf(res.Dist[3], 1))
	assert.Equal(t, 2, res.Settled)
	assert.Equal(t, 2, res.Unreached)

	res, err = geodesic.Compute(m, 0, geodesic.WithMaxDistance(0))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Settled)
}

func TestCompute_ReturnPath(t *testing.T) {
	m := square(t)
	_, err := m.AddVertex(9, 9, 9)
	require.NoError(t, err)

	res, err := geodesic.Compute(m, 1, geodesic.WithReturnPath())
	require.NoError(t, err)

	p, err := res.PathTo(3)
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, 1, p[0])
	assert.Equal(t, 3, p[2])

	p, err = res.PathTo(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, p)

	_, err = res.PathTo(4)
	assert.ErrorIs(t, err, geodesic.ErrNoPath)
	_, err = res.PathTo(17)
	assert.ErrorIs(t, err, geodesic.ErrSourceOutOfRange)

	plain, err := geodesic.Compute(m, 1)
	require.NoError(t, err)
	assert.Nil(t, plain.Prev)
	_, err = plain.PathTo(0)
	assert.ErrorIs(t, err, geodesic.ErrPathNotRecorded)
}

func TestCompute_Errors(t *testing.T) {
	m := square(t)

	_, err := geodesic.ComputeFrom(nil, 0)
	assert.ErrorIs(t, err, geodesic.ErrNilGraph)

	_, err = geodesic.ComputeFrom(mesh.New(), 0)
	assert.ErrorIs(t, err, geodesic.ErrEmptyGraph)

	var nilMesh *mesh.Mesh
	_, err = geodesic.ComputeFrom(nilMesh, 0)
	assert.ErrorIs(t, err, geodesic.ErrEmptyGraph)

	_, err = geodesic.ComputeFrom(m, -1)
	assert.ErrorIs(t, err, geodesic.ErrSourceOutOfRange)
	_, err = geodesic.ComputeFrom(m, 4)
	assert.ErrorIs(t, err, geodesic.ErrSourceOutOfRange)

	_, err = geodesic.ComputeFrom(m, 0, geodesic.WithMaxDistance(-1))
	assert.ErrorIs(t, err, geodesic.ErrBadMaxDistance)
	_, err = geodesic.ComputeFrom(m, 0, geodesic.WithMaxDistance(math.NaN()))
	assert.ErrorIs(t, err, geodesic.ErrBadMaxDistance)

	_, err = geodesic.ComputeFrom(m, 0, geodesic.WithMethod(geodesic.MethodExact))
	assert.ErrorIs(t, err, geodesic.ErrMethodNotImplemented)
	_, err = geodesic.ComputeFrom(m, 0, geodesic.WithMethod(geodesic.Method(42)))
	assert.ErrorIs(t, err, geodesic.ErrMethodNotImplemented)
}

// brokenGraph reports a negative length on its only edge.
type brokenGraph struct{ length float64 }

func (brokenGraph) VertexCount() int         { return 2 }
func (brokenGraph) EdgesOf(int) []int        { return []int{0} }
func (brokenGraph) Endpoints(int) (int, int) { return 0, 1 }
func (g brokenGraph) Length(int) float64     { return g.length }

func TestCompute_RejectsNegativeLength(t *testing.T) {
	_, err := geodesic.ComputeFrom(brokenGraph{length: -0.5}, 0)
	assert.ErrorIs(t, err, geodesic.ErrNegativeLength)
	_, err = geodesic.ComputeFrom(brokenGraph{length: math.NaN()}, 0)
	assert.ErrorIs(t, err, geodesic.ErrNegativeLength)

	dist, err := geodesic.ComputeFrom(brokenGraph{length: 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, dist)
}

// strayGraph lists an edge for vertex 1 that does not touch it.
type strayGraph struct{}

func (strayGraph) VertexCount() int { return 3 }
func (strayGraph) EdgesOf(v int) []int {
	if v == 1 {
		return []int{1}
	}
	return []int{0}
}
func (strayGraph) Endpoints(e int) (int, int) {
	if e == 0 {
		return 0, 1
	}
	return 0, 2
}
func (strayGraph) Length(int) float64 { return 1 }

func TestCompute_RejectsStrayEdge(t *testing.T) {
	_, err := geodesic.ComputeFrom(strayGraph{}, 0)
	assert.ErrorIs(t, err, geodesic.ErrBadEdge)
}

func TestCompute_ConcurrentRunsOnSnapshot(t *testing.T) {
	m, err := mesh.NewCube(2)
	require.NoError(t, err)
	view := m.Snapshot()

	want := make([][]float64, m.VertexCount())
	for s := range want {
		want[s], err = geodesic.ComputeFrom(m, s)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	got := make([][]float64, len(want))
	errs := make([]error, len(want))
	for s := range want {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			got[s], errs[s] = geodesic.ComputeFrom(view, s)
		}(s)
	}
	wg.Wait()

	for s := range want {
		require.NoError(t, errs[s])
		assert.Equal(t, want[s], got[s])
	}
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "on-edge", geodesic.MethodOnEdge.String())
	assert.Equal(t, "exact", geodesic.MethodExact.String())
	assert.Equal(t, "Method(9)", geodesic.Method(9).String())
}
