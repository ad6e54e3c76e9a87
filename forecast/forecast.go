// Package forecast fits and projects the autoregressive model of a single climate variable
package forecast

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/aouyang1/go-climate-forecast/feature"
	"github.com/aouyang1/go-climate-forecast/linearmodel"
	mat_ "github.com/aouyang1/go-climate-forecast/mat"
	"github.com/aouyang1/go-climate-forecast/timedataset"
)

var (
	ErrUninitializedForecast = errors.New("uninitialized forecast")
	ErrUntrainedForecast     = errors.New("forecast has not been trained yet")
	ErrNoLagTable            = errors.New("no lag table to train on")
	ErrSeedLenMismatch       = errors.New("seed length does not match the number of lags")
	ErrNegativeSteps         = errors.New("number of forecast steps cannot be negative")
	ErrNonFiniteForecast     = errors.New("forecast value is not finite")
)

// Forecast is an autoregressive linear model of a single variable. The next value is
// predicted from the previous Orders values, most recent first.
type Forecast struct {
	v      timedataset.Variable
	opt    *Options
	scores *Scores // score calculations after training

	fLabels *feature.Labels
	model   *linearmodel.OLSRegression

	trainEndTime time.Time
	trainRows    int
	seed         []float64
	residual     []float64
	trained      bool
}

// New creates a new forecast instance for the variable with the given options. If none
// are provided, a default is used.
func New(v timedataset.Variable, opt *Options) (*Forecast, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	return &Forecast{
		v:       v,
		opt:     opt,
		fLabels: feature.NewLabels(feature.Lags(v, opt.Orders)),
	}, nil
}

// NewFromWeights creates a forecast with known weights that is ready for inference. The
// coefficients are ordered most recent lag first and must have length of the options Orders.
func NewFromWeights(v timedataset.Variable, opt *Options, intercept float64, coef []float64) (*Forecast, error) {
	f, err := New(v, opt)
	if err != nil {
		return nil, err
	}
	if len(coef) != f.opt.Orders {
		return nil, fmt.Errorf("got %d coefficients for %d lags, %w", len(coef), f.opt.Orders, linearmodel.ErrFeatureLenMismatch)
	}
	f.model, err = linearmodel.NewOLSRegressionWithWeights(f.opt.OLSOptions, intercept, coef)
	if err != nil {
		return nil, err
	}
	f.trained = true
	return f, nil
}

// Fit trains the variable's model on every row of the lag table and records the last
// observed values as the seed of the forecast horizon.
func (f *Forecast) Fit(tbl *feature.Table) error {
	if f == nil {
		return ErrUninitializedForecast
	}
	if tbl == nil {
		return ErrNoLagTable
	}
	if tbl.Orders() != f.opt.Orders {
		return fmt.Errorf("lag table has %d orders but model has %d, %w", tbl.Orders(), f.opt.Orders, linearmodel.ErrFeatureLenMismatch)
	}

	x, err := tbl.Matrix(f.v)
	if err != nil {
		return err
	}
	y, err := tbl.Target(f.v)
	if err != nil {
		return err
	}

	model, err := linearmodel.NewOLSRegression(f.opt.OLSOptions)
	if err != nil {
		return err
	}
	if err := model.Fit(x, mat_.NewColVector(y)); err != nil {
		return fmt.Errorf("unable to fit %s lag model, %w", f.v, err)
	}

	seed, err := tbl.Seed(f.v)
	if err != nil {
		return err
	}

	predicted, err := model.Predict(x)
	if err != nil {
		return err
	}
	scores, err := NewScores(predicted, y)
	if err != nil {
		return err
	}

	residual := make([]float64, len(y))
	for i := range y {
		residual[i] = y[i] - predicted[i]
	}

	t := tbl.T()
	f.model = model
	f.seed = seed
	f.scores = scores
	f.residual = residual
	f.trainRows = len(y)
	f.trainEndTime = timedataset.TimeSlice(t).EndTime()
	f.trained = true
	return nil
}

// Predict returns the next value given the lag values ordered most recent first
func (f *Forecast) Predict(lags []float64) (float64, error) {
	if f == nil {
		return 0, ErrUninitializedForecast
	}
	if !f.trained {
		return 0, ErrUntrainedForecast
	}
	if len(lags) != f.opt.Orders {
		return 0, fmt.Errorf("got %d lags for %d orders, %w", len(lags), f.opt.Orders, ErrSeedLenMismatch)
	}

	res, err := f.model.Predict(mat_.NewRowVector(lags...))
	if err != nil {
		return 0, err
	}
	return res[0], nil
}

// Horizon returns a lazy sequence of steps predictions starting from the seed lags, most
// recent first. Each prediction becomes the most recent lag of the next step and the oldest
// lag is discarded. The sequence recomputes from the seed every time it is ranged over. If a
// step cannot be predicted or is not finite, the error is yielded and the sequence ends.
func (f *Forecast) Horizon(seed []float64, steps int) (iter.Seq2[float64, error], error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, ErrUntrainedForecast
	}
	if len(seed) != f.opt.Orders {
		return nil, fmt.Errorf("got %d seed values for %d orders, %w", len(seed), f.opt.Orders, ErrSeedLenMismatch)
	}
	if steps < 0 {
		return nil, fmt.Errorf("got %d, %w", steps, ErrNegativeSteps)
	}

	initial := make([]float64, len(seed))
	copy(initial, seed)

	return func(yield func(float64, error) bool) {
		lags := make([]float64, len(initial))
		copy(lags, initial)

		for step := 0; step < steps; step++ {
			pred, err := f.Predict(lags)
			if err == nil && (math.IsNaN(pred) || math.IsInf(pred, 0)) {
				err = fmt.Errorf("step %d of %s is %v, %w", step, f.v, pred, ErrNonFiniteForecast)
			}
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(pred, nil) {
				return
			}
			copy(lags[1:], lags[:len(lags)-1])
			lags[0] = pred
		}
	}, nil
}

// Variable returns the variable this forecast models
func (f *Forecast) Variable() timedataset.Variable {
	if f == nil {
		return 0
	}
	return f.v
}

// Seed returns the lag values of the day after training, most recent first
func (f *Forecast) Seed() []float64 {
	if f == nil {
		return nil
	}
	seed := make([]float64, len(f.seed))
	copy(seed, f.seed)
	return seed
}

// FeatureLabels returns the slice of lag labels in the order of the coefficients
func (f *Forecast) FeatureLabels() []feature.Lag {
	if f == nil {
		return nil
	}
	return f.fLabels.Labels()
}

// Coefficients returns a forecast model map of coefficients keyed by the lag label
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}
	if !f.trained {
		return nil, ErrUntrainedForecast
	}

	labels := f.fLabels.Labels()
	coef := f.model.Coef()
	res := make(map[string]float64, len(coef))
	for i := 0; i < len(coef); i++ {
		res[labels[i].String()] = coef[i]
	}
	return res, nil
}

// Intercept returns the intercept of the forecast model
func (f *Forecast) Intercept() float64 {
	if f == nil || f.model == nil {
		return 0
	}
	return f.model.Intercept()
}

// Scores returns the fit scores for evaluating how well the resulting model
// fit the training data
func (f *Forecast) Scores() Scores {
	if f == nil {
		return Scores{}
	}
	if f.scores == nil {
		return Scores{}
	}
	return *f.scores
}

// Residuals returns a slice of values representing the difference between the
// training data and the fit data
func (f *Forecast) Residuals() []float64 {
	if f == nil {
		return nil
	}
	res := make([]float64, len(f.residual))
	copy(res, f.residual)
	return res
}

// Model returns the serializeable format of the forecast model composing of the
// options, intercept, lag coefficients and the model fit scores
func (f *Forecast) Model() (Model, error) {
	if f == nil {
		return Model{}, ErrUninitializedForecast
	}
	if !f.trained {
		return Model{}, ErrUntrainedForecast
	}

	labels := f.fLabels.Labels()
	coef := f.model.Coef()
	fws := make([]FeatureWeight, 0, len(coef))
	for i, c := range coef {
		fws = append(fws, NewFeatureWeight(labels[i], c))
	}
	m := Model{
		Variable:     f.v,
		TrainEndTime: f.trainEndTime,
		TrainRows:    f.trainRows,
		Options:      f.opt,
		Scores:       f.scores,
		Seed:         f.Seed(),
		Weights: Weights{
			Intercept: f.model.Intercept(),
			Coef:      fws,
		},
	}
	return m, nil
}

// ModelEq returns a string representation of the model linear equation in the format of
// y ~ b + m1x1 + m2x2
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	eq := fmt.Sprintf("%s ~ %.2f", f.v, f.Intercept())
	for _, label := range f.fLabels.Labels() {
		eq += fmt.Sprintf("+%.2f*%s", coef[label.String()], label)
	}
	return eq, nil
}
