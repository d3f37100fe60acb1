package distmatrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meshpatch/distmatrix"
)

func TestNew_Shapes(t *testing.T) {
	m, err := distmatrix.New(0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, m.Rows())
	require.Equal(t, 0, m.Cols())

	_, err = distmatrix.New(-1, 3)
	require.ErrorIs(t, err, distmatrix.ErrBadShape)
	_, err = distmatrix.New(1<<20, 1<<20)
	require.ErrorIs(t, err, distmatrix.ErrBadShape)

	var nilM *distmatrix.Matrix
	require.Equal(t, 0, nilM.Rows())
	_, err = nilM.At(0, 0)
	require.ErrorIs(t, err, distmatrix.ErrNilMatrix)
}

func TestMatrix_Accessors(t *testing.T) {
	m, err := distmatrix.New(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, float32(7.5), v)

	require.NoError(t, m.SetRow(0, []float64{0, 1, math.Inf(1)}))
	row, err := m.Row(0)
	require.NoError(t, err)
	require.Equal(t, float32(1), row[1])
	require.True(t, math.IsInf(float64(row[2]), 1))
	require.Len(t, row, 3)
	require.Equal(t, 3, cap(row), "row view must not expose the next row")

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, distmatrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), distmatrix.ErrOutOfRange)
	_, err = m.Row(5)
	require.ErrorIs(t, err, distmatrix.ErrOutOfRange)
	require.ErrorIs(t, m.SetRow(1, []float64{1}), distmatrix.ErrDimensionMismatch)
}

func TestMatrix_AverageDistances(t *testing.T) {
	inf := math.Inf(1)
	m, err := distmatrix.New(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.SetRow(0, []float64{0, 2, 4}))
	require.NoError(t, m.SetRow(1, []float64{2, 0, inf}))
	require.NoError(t, m.SetRow(2, []float64{inf, inf, 0}))

	avg := m.AverageDistances()
	require.Equal(t, []float64{3, 2, 0}, avg)
}

func TestMatrix_MaxAsymmetry(t *testing.T) {
	m, err := distmatrix.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetRow(0, []float64{0, 1.5}))
	require.NoError(t, m.SetRow(1, []float64{1.25, 0}))

	d, err := m.MaxAsymmetry()
	require.NoError(t, err)
	require.InDelta(t, 0.25, d, 1e-7)

	require.NoError(t, m.Set(1, 0, float32(math.Inf(1))))
	d, err = m.MaxAsymmetry()
	require.NoError(t, err)
	require.True(t, math.IsInf(d, 1))

	rect, err := distmatrix.New(1, 2)
	require.NoError(t, err)
	_, err = rect.MaxAsymmetry()
	require.ErrorIs(t, err, distmatrix.ErrDimensionMismatch)
}

func TestMatrix_Equal(t *testing.T) {
	a, _ := distmatrix.New(1, 1)
	b, _ := distmatrix.New(1, 1)
	require.True(t, a.Equal(b))
	require.NoError(t, b.Set(0, 0, 1))
	require.False(t, a.Equal(b))

	c, _ := distmatrix.New(1, 2)
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))
}
