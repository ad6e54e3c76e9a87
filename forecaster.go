// Package forecaster trains one autoregressive model per climate variable on a daily
// dataset and projects every variable a fixed number of days past a run date.
package forecaster

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/aouyang1/go-climate-forecast/feature"
	"github.com/aouyang1/go-climate-forecast/forecast"
	"github.com/aouyang1/go-climate-forecast/timedataset"
	"golang.org/x/sync/errgroup"
)

// Forecaster fits a lag model for every climate variable and generates dated forecasts
type Forecaster struct {
	opt *Options

	forecasts [timedataset.NumVariables]*forecast.Forecast

	fitTrainingData *timedataset.TimeDataset
	fitTable        *feature.Table
	fitted          bool
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	f := &Forecaster{
		opt: opt,
	}
	for _, v := range timedataset.Variables {
		fc, err := forecast.New(v, f.opt.ForecastOptions)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize %s forecast, %w", v, err)
		}
		f.forecasts[v] = fc
	}
	return f, nil
}

// Run is the whole pipeline: build the lag table from the dataset, train every variable
// and forecast the options Horizon days after runDate. Either every record is returned or
// none are.
func Run(td *timedataset.TimeDataset, runDate time.Time, opt *Options) ([]Record, error) {
	f, err := New(opt)
	if err != nil {
		return nil, err
	}
	if err := f.Fit(td); err != nil {
		return nil, err
	}
	return f.Predict(runDate)
}

// Fit builds the lag table from the dataset and trains each variable concurrently
func (f *Forecaster) Fit(td *timedataset.TimeDataset) error {
	if td.Len() == 0 {
		return timedataset.ErrNoTrainingData
	}

	tbl, err := feature.NewTable(td, f.opt.ForecastOptions.Orders, f.opt.MinTrainingRows)
	if err != nil {
		if errors.Is(err, feature.ErrInsufficientRows) {
			return fmt.Errorf("%w, %w", err, ErrInsufficientData)
		}
		return fmt.Errorf("unable to build lag table, %w", err)
	}

	var g errgroup.Group
	for _, fc := range f.forecasts {
		g.Go(func() error {
			if err := fc.Fit(tbl); err != nil {
				return fmt.Errorf("%w, %w", err, ErrModelFit)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.fitTrainingData = td.Copy()
	f.fitTable = tbl
	f.fitted = true
	return nil
}

// Horizon returns a lazy sequence of the options Horizon records starting the day after
// runDate. Every variable is seeded from the last lag table rows and each pass over the
// sequence recomputes from those seeds. If any variable fails a step, the error naming it
// is yielded and the sequence ends.
func (f *Forecaster) Horizon(runDate time.Time) (iter.Seq2[Record, error], error) {
	if !f.fitted {
		return nil, ErrUnfitForecaster
	}

	var seqs [timedataset.NumVariables]iter.Seq2[float64, error]
	for v, fc := range f.forecasts {
		seed, err := f.fitTable.Seed(timedataset.Variable(v))
		if err != nil {
			return nil, err
		}
		seq, err := fc.Horizon(seed, f.opt.Horizon)
		if err != nil {
			return nil, fmt.Errorf("unable to create %s horizon, %w", fc.Variable(), err)
		}
		seqs[v] = seq
	}
	dates := timedataset.NextDays(runDate, f.opt.Horizon)

	return func(yield func(Record, error) bool) {
		var nexts [timedataset.NumVariables]func() (float64, error, bool)
		for v, seq := range seqs {
			next, stop := iter.Pull2(seq)
			defer stop()
			nexts[v] = next
		}

		for _, date := range dates {
			var values [timedataset.NumVariables]float64
			for v, next := range nexts {
				pred, err, ok := next()
				if !ok {
					yield(Record{}, fmt.Errorf("%s horizon ended before %s, %w", timedataset.Variable(v), date.Format(time.DateOnly), ErrModelFit))
					return
				}
				if err != nil {
					yield(Record{}, fmt.Errorf("%w, %w", err, ErrModelFit))
					return
				}
				values[v] = pred
			}
			if !yield(NewRecord(date, values), nil) {
				return
			}
		}
	}, nil
}

// Predict collects the full horizon after runDate. A failed or non finite prediction of any
// variable fails the whole forecast.
func (f *Forecaster) Predict(runDate time.Time) ([]Record, error) {
	seq, err := f.Horizon(runDate)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, f.opt.Horizon)
	for r, err := range seq {
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Forecast returns the fit model of a single variable
func (f *Forecaster) Forecast(v timedataset.Variable) (*forecast.Forecast, error) {
	if v < 0 || int(v) >= timedataset.NumVariables {
		return nil, fmt.Errorf("%s, %w", v, timedataset.ErrUnknownVariable)
	}
	return f.forecasts[v], nil
}

// Coefficients returns every variable's lag coefficients keyed by the lag label
func (f *Forecaster) Coefficients() (map[string]float64, error) {
	res := make(map[string]float64)
	for _, fc := range f.forecasts {
		coef, err := fc.Coefficients()
		if err != nil {
			return nil, fmt.Errorf("unable to fetch %s coefficients, %w", fc.Variable(), err)
		}
		for label, c := range coef {
			res[label] = c
		}
	}
	return res, nil
}

// ModelEqs returns the linear equation of each variable's model in variable order
func (f *Forecaster) ModelEqs() ([]string, error) {
	eqs := make([]string, 0, len(f.forecasts))
	for _, fc := range f.forecasts {
		eq, err := fc.ModelEq()
		if err != nil {
			return nil, err
		}
		eqs = append(eqs, eq)
	}
	return eqs, nil
}

// TrainingData returns the dataset used to fit the current forecaster
func (f *Forecaster) TrainingData() *timedataset.TimeDataset {
	return f.fitTrainingData
}

// TrainingRows returns the number of lag table rows every variable was trained on
func (f *Forecaster) TrainingRows() int {
	return f.fitTable.Len()
}

// Model generates a serializeable representation of the options and every variable's model
func (f *Forecaster) Model() (Model, error) {
	if !f.fitted {
		return Model{}, ErrUnfitForecaster
	}

	m := Model{
		Options:   f.opt,
		Forecasts: make([]forecast.Model, 0, len(f.forecasts)),
	}
	for _, fc := range f.forecasts {
		fm, err := fc.Model()
		if err != nil {
			return Model{}, fmt.Errorf("unable to fetch %s model, %w", fc.Variable(), err)
		}
		m.Forecasts = append(m.Forecasts, fm)
	}
	return m, nil
}
