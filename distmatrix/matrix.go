// SPDX-License-Identifier: MIT
// Package distmatrix holds the dense all-pairs geodesic distance matrix of a
// mesh: construction from single-source runs, simple per-vertex statistics,
// and binary persistence.
//
// Storage is row-major float32, the element type of the on-disk format.
// Row v holds distances from vertex v to every vertex; unreachable entries
// are +Inf. Symmetry is not assumed anywhere.

package distmatrix

import (
	"fmt"
	"math"
)

// maxEntries bounds rows*cols for allocation and for headers read from disk.
const maxEntries = 1 << 31

// Matrix is a dense rows×cols float32 matrix stored row-major.
// A zero-size matrix (0×0) is valid and is what Build returns for an empty mesh.
type Matrix struct {
	rows, cols int
	data       []float32
}

// New allocates a zero-filled rows×cols matrix.
// Returns ErrBadShape if either dimension is negative or the product is too large.
func New(rows, cols int) (*Matrix, error) {
	if err := checkShape(int64(rows), int64(cols)); err != nil {
		return nil, err
	}

	return &Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}, nil
}

func checkShape(rows, cols int64) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	if rows != 0 && cols > maxEntries/rows {
		return fmt.Errorf("%w: %dx%d exceeds %d entries", ErrBadShape, rows, cols, int64(maxEntries))
	}

	return nil
}

// Rows returns the number of rows. Nil-safe.
func (m *Matrix) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the number of columns. Nil-safe.
func (m *Matrix) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// indexOf converts (i, j) into a flat offset or reports ErrOutOfRange.
func (m *Matrix) indexOf(i, j int) (int, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, i, j, m.rows, m.cols)
	}

	return i*m.cols + j, nil
}

// At returns the distance from vertex i to vertex j.
func (m *Matrix) At(i, j int) (float32, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	k, err := m.indexOf(i, j)
	if err != nil {
		return 0, err
	}

	return m.data[k], nil
}

// Set stores one entry.
func (m *Matrix) Set(i, j int, v float32) error {
	if m == nil {
		return ErrNilMatrix
	}
	k, err := m.indexOf(i, j)
	if err != nil {
		return err
	}
	m.data[k] = v

	return nil
}

// Row returns row i as a slice aliasing the matrix storage.
// The slice is borrowed: callers must not modify it or keep it past the
// matrix's lifetime.
func (m *Matrix) Row(i int) ([]float32, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, m.rows)
	}

	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols], nil
}

// SetRow converts a float64 distance vector into row i.
// The vector must have exactly Cols entries.
func (m *Matrix) SetRow(i int, dist []float64) error {
	if m == nil {
		return ErrNilMatrix
	}
	if i < 0 || i >= m.rows {
		return fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, m.rows)
	}
	if len(dist) != m.cols {
		return fmt.Errorf("%w: row of length %d, want %d", ErrDimensionMismatch, len(dist), m.cols)
	}
	row := m.data[i*m.cols : (i+1)*m.cols]
	for j, d := range dist {
		row[j] = float32(d)
	}

	return nil
}

// AverageDistances returns, per row, the mean of the finite off-diagonal
// entries. Unreachable (+Inf) entries are ignored; a row with no finite
// off-diagonal entry averages to 0.
func (m *Matrix) AverageDistances() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		var sum float64
		var cnt int
		for j, v := range m.data[i*m.cols : (i+1)*m.cols] {
			if j == i || math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
				continue
			}
			sum += float64(v)
			cnt++
		}
		if cnt > 0 {
			out[i] = sum / float64(cnt)
		}
	}

	return out
}

// MaxAsymmetry returns max |M[i][j] - M[j][i]| over entries where both are
// finite. Pairs where exactly one side is +Inf count as +Inf. A non-square
// matrix reports ErrDimensionMismatch.
//
// This is a diagnostic: tie-breaking between equal-length edge paths may
// make the two runs differ in float32 rounding, and callers must tolerate it.
func (m *Matrix) MaxAsymmetry() (float64, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	if m.rows != m.cols {
		return 0, fmt.Errorf("%w: %dx%d is not square", ErrDimensionMismatch, m.rows, m.cols)
	}
	var worst float64
	for i := 0; i < m.rows; i++ {
		for j := i + 1; j < m.cols; j++ {
			a, b := float64(m.data[i*m.cols+j]), float64(m.data[j*m.cols+i])
			ia, ib := math.IsInf(a, 1), math.IsInf(b, 1)
			switch {
			case ia && ib:
				continue
			case ia || ib:
				return math.Inf(1), nil
			}
			if d := math.Abs(a - b); d > worst {
				worst = d
			}
		}
	}

	return worst, nil
}

// Equal reports whether both matrices have the same shape and bit-identical entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for k := range m.data {
		if math.Float32bits(m.data[k]) != math.Float32bits(o.data[k]) {
			return false
		}
	}

	return true
}
