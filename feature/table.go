package feature

import (
	"errors"
	"fmt"
	"math"
	"time"

	mat_ "github.com/aouyang1/go-climate-forecast/mat"
	"github.com/aouyang1/go-climate-forecast/timedataset"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoDataset        = errors.New("no dataset to build lag features from")
	ErrInvalidOrder     = errors.New("lag order must be at least 1")
	ErrInsufficientRows = errors.New("insufficient rows after lag construction")
	ErrUnknownVariable  = errors.New("variable is not part of the lag table")
)

// Table holds, for every kept day, the current value of each variable and its lags. A day
// is kept only when its values and all of its lag values are present for every variable,
// so the first Orders days are always dropped.
type Table struct {
	orders int
	t      []time.Time
	y      [timedataset.NumVariables][]float64
	x      [timedataset.NumVariables][][]float64
}

// NewTable shifts each variable of the dataset by 1..orders days and drops any row missing
// a value. At least minRows rows must remain.
func NewTable(td *timedataset.TimeDataset, orders, minRows int) (*Table, error) {
	if td == nil {
		return nil, ErrNoDataset
	}
	if orders < 1 {
		return nil, fmt.Errorf("got %d, %w", orders, ErrInvalidOrder)
	}

	n := td.Len()
	tbl := &Table{orders: orders}

	for i := orders; i < n; i++ {
		if !rowComplete(td, i, orders) {
			continue
		}
		tbl.t = append(tbl.t, td.T[i])
		for _, v := range timedataset.Variables {
			lags := make([]float64, orders)
			for o := 1; o <= orders; o++ {
				lags[o-1] = td.Y[v][i-o]
			}
			tbl.y[v] = append(tbl.y[v], td.Y[v][i])
			tbl.x[v] = append(tbl.x[v], lags)
		}
	}

	if tbl.Len() < minRows {
		return nil, fmt.Errorf("%d of %d rows remain but need %d, %w", tbl.Len(), n, minRows, ErrInsufficientRows)
	}
	return tbl, nil
}

func rowComplete(td *timedataset.TimeDataset, i, orders int) bool {
	for _, v := range timedataset.Variables {
		for o := 0; o <= orders; o++ {
			if math.IsNaN(td.Y[v][i-o]) {
				return false
			}
		}
	}
	return true
}

// Len returns the number of kept rows
func (tbl *Table) Len() int {
	if tbl == nil {
		return 0
	}
	return len(tbl.t)
}

// Orders returns the number of lags per variable
func (tbl *Table) Orders() int {
	if tbl == nil {
		return 0
	}
	return tbl.orders
}

// T returns the dates of the kept rows
func (tbl *Table) T() []time.Time {
	if tbl == nil {
		return nil
	}
	t := make([]time.Time, len(tbl.t))
	copy(t, tbl.t)
	return t
}

// Labels returns the lag labels of a variable in the column order of Matrix
func (tbl *Table) Labels(v timedataset.Variable) *Labels {
	return NewLabels(Lags(v, tbl.Orders()))
}

// Target returns the current values of a variable for each kept row
func (tbl *Table) Target(v timedataset.Variable) ([]float64, error) {
	if err := tbl.checkVariable(v); err != nil {
		return nil, err
	}
	y := make([]float64, len(tbl.y[v]))
	copy(y, tbl.y[v])
	return y, nil
}

// Matrix returns the m x orders design matrix of a variable where column j holds lag j+1
func (tbl *Table) Matrix(v timedataset.Variable) (*mat.Dense, error) {
	if err := tbl.checkVariable(v); err != nil {
		return nil, err
	}
	if tbl.Len() == 0 {
		return nil, ErrInsufficientRows
	}
	return mat_.NewDenseFromArray(tbl.x[v])
}

// Seed returns the current values of the last orders kept rows, most recent first. These
// are the lag inputs of the first day after the table.
func (tbl *Table) Seed(v timedataset.Variable) ([]float64, error) {
	if err := tbl.checkVariable(v); err != nil {
		return nil, err
	}
	m := tbl.Len()
	if m < tbl.orders {
		return nil, fmt.Errorf("need %d rows to seed, %w", tbl.orders, ErrInsufficientRows)
	}
	seed := make([]float64, tbl.orders)
	for o := 0; o < tbl.orders; o++ {
		seed[o] = tbl.y[v][m-1-o]
	}
	return seed, nil
}

func (tbl *Table) checkVariable(v timedataset.Variable) error {
	if tbl == nil {
		return ErrNoDataset
	}
	if v < 0 || int(v) >= timedataset.NumVariables {
		return fmt.Errorf("%s, %w", v, ErrUnknownVariable)
	}
	return nil
}
