package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrColMismatch = errors.New("column size mismatch")

// NewDenseFromArray builds a row ordered dense matrix where each element of x is one
// observation. All rows must be the same length.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewRowVector returns a single observation design matrix of shape 1xlen(x).
func NewRowVector(x ...float64) *mat.Dense {
	data := make([]float64, len(x))
	copy(data, x)
	return mat.NewDense(1, len(data), data)
}

// NewColVector returns a target matrix of shape len(y)x1.
func NewColVector(y []float64) *mat.Dense {
	data := make([]float64, len(y))
	copy(data, y)
	return mat.NewDense(len(data), 1, data)
}
