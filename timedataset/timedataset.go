package timedataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	ErrNoTrainingData = errors.New("no training data")
	ErrDuplicateDate  = errors.New("date appears more than once")
	ErrNonContiguous  = errors.New("daily series has missing dates")
)

// Observation is a single day of climate measurements. Missing measurements are NaN.
type Observation struct {
	Date   time.Time
	Values [NumVariables]float64
}

// Options configures how observations are validated when building a TimeDataset
type Options struct {
	// AllowGaps accepts calendar gaps between observations. Lags will pair whichever
	// observations end up adjacent.
	AllowGaps bool
}

// NewDefaultOptions requires a contiguous daily series
func NewDefaultOptions() *Options {
	return &Options{}
}

// TimeDataset represents a daily multivariate time series. T is strictly increasing by
// calendar day and each Y series has the same length as T.
type TimeDataset struct {
	T []time.Time
	Y [NumVariables][]float64
}

// Day truncates t to midnight UTC of its calendar date in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDailyDataset sorts the observations by date and validates that each calendar day
// appears once. Unless gaps are allowed, consecutive observations must be one day apart.
func NewDailyDataset(obs []Observation, opt *Options) (*TimeDataset, error) {
	if len(obs) == 0 {
		return nil, ErrNoTrainingData
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	for i := range sorted {
		sorted[i].Date = Day(sorted[i].Date)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	td := &TimeDataset{
		T: make([]time.Time, 0, len(sorted)),
	}
	for _, v := range Variables {
		td.Y[v] = make([]float64, 0, len(sorted))
	}

	for i, o := range sorted {
		if i > 0 && o.Date.Equal(sorted[i-1].Date) {
			return nil, fmt.Errorf("%s, %w", o.Date.Format(time.DateOnly), ErrDuplicateDate)
		}
		td.T = append(td.T, o.Date)
		for _, v := range Variables {
			td.Y[v] = append(td.Y[v], o.Values[v])
		}
	}

	if !opt.AllowGaps {
		if gaps := TimeSlice(td.T).Gaps(); len(gaps) > 0 {
			i := gaps[0]
			return nil, fmt.Errorf(
				"%d gaps, first between %s and %s, %w",
				len(gaps), td.T[i-1].Format(time.DateOnly), td.T[i].Format(time.DateOnly), ErrNonContiguous,
			)
		}
	}

	return td, nil
}

// Len returns the number of days in the dataset
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.T)
}

// Series returns a copy of the values of a single variable
func (td *TimeDataset) Series(v Variable) []float64 {
	if td == nil || v < 0 || int(v) >= NumVariables {
		return nil
	}
	y := make([]float64, len(td.Y[v]))
	copy(y, td.Y[v])
	return y
}

// Observations returns the dataset as a slice of daily observations
func (td *TimeDataset) Observations() []Observation {
	if td == nil {
		return nil
	}
	obs := make([]Observation, len(td.T))
	for i, t := range td.T {
		obs[i].Date = t
		for _, v := range Variables {
			obs[i].Values[v] = td.Y[v][i]
		}
	}
	return obs
}

// CountNaN returns the number of missing values per variable
func (td *TimeDataset) CountNaN() [NumVariables]int {
	var cnt [NumVariables]int
	if td == nil {
		return cnt
	}
	for _, v := range Variables {
		for _, y := range td.Y[v] {
			if math.IsNaN(y) {
				cnt[v]++
			}
		}
	}
	return cnt
}

func (td *TimeDataset) Copy() *TimeDataset {
	if td == nil {
		return nil
	}
	cp := &TimeDataset{
		T: make([]time.Time, len(td.T)),
	}
	copy(cp.T, td.T)
	for _, v := range Variables {
		cp.Y[v] = make([]float64, len(td.Y[v]))
		copy(cp.Y[v], td.Y[v])
	}
	return cp
}
