package workload

import (
	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memres"
)

// Matrix is a dense row-major float64 matrix with resource-allocated
// backing storage.
type Matrix struct {
	res  memres.Resource // nil means builtin Go allocation
	rows int
	cols int
	data []float64
}

// NewMatrix creates a zeroed rows x cols matrix allocating through res.
func NewMatrix(res memres.Resource, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Newf("workload: invalid matrix dimensions %dx%d", rows, cols)
	}
	m := &Matrix{res: res, rows: rows, cols: cols}
	if res == nil {
		m.data = make([]float64, rows*cols)
		return m, nil
	}
	data, err := memres.AllocSliceZeroed[float64](res, rows*cols)
	if err != nil {
		return nil, err
	}
	m.data = data
	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set stores v at (i, j).
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Mul returns the product m*b as a new matrix allocated through m's
// resource.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.cols != b.rows {
		return nil, errors.Newf("workload: dimension mismatch %dx%d * %dx%d", m.rows, m.cols, b.rows, b.cols)
	}
	out, err := NewMatrix(m.res, m.rows, b.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			aik := m.data[i*m.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*b.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	}
	return out, nil
}

// Release frees the backing storage through the resource.
func (m *Matrix) Release() {
	if m.res != nil && m.data != nil {
		memres.FreeSlice(m.res, m.data)
	}
	m.data = nil
}
