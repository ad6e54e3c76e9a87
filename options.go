package forecaster

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-climate-forecast/forecast"
)

const (
	// DefaultHorizon is the number of days forecasted after the run date
	DefaultHorizon = 7

	// DefaultMinTrainingRows is the fewest lag table rows accepted for training
	DefaultMinTrainingRows = 3
)

var ErrInvalidHorizon = errors.New("horizon must be at least 1 day")

// Options configures the four variable forecaster
type Options struct {
	ForecastOptions *forecast.Options `json:"forecast_options"`

	// Horizon is the number of consecutive days predicted starting the day after the run date
	Horizon int `json:"horizon"`

	// MinTrainingRows is raised to one more than the number of lags so every model
	// has at least as many rows as coefficients including the intercept
	MinTrainingRows int `json:"min_training_rows"`
}

// NewDefaultOptions returns a 7 day AR(2) forecaster requiring 3 training rows
func NewDefaultOptions() *Options {
	return &Options{
		ForecastOptions: forecast.NewDefaultOptions(),
		Horizon:         DefaultHorizon,
		MinTrainingRows: DefaultMinTrainingRows,
	}
}

// Validate fills in defaults and checks the options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Horizon < 1 {
		return nil, fmt.Errorf("got %d, %w", o.Horizon, ErrInvalidHorizon)
	}

	fOpt, err := o.ForecastOptions.Validate()
	if err != nil {
		return nil, err
	}
	o.ForecastOptions = fOpt

	if o.MinTrainingRows < fOpt.Orders+1 {
		o.MinTrainingRows = fOpt.Orders + 1
	}
	return o, nil
}
