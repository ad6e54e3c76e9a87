package forecast

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-climate-forecast/linearmodel"
)

// DefaultOrders is the number of lags each variable is regressed on
const DefaultOrders = 2

var ErrInvalidOrders = errors.New("orders must be at least 1")

// Options configures the autoregressive model of a single variable
type Options struct {
	Orders     int                     `json:"orders"`
	OLSOptions *linearmodel.OLSOptions `json:"ols_options"`
}

// NewDefaultOptions returns an order 2 model fit with an intercept
func NewDefaultOptions() *Options {
	return &Options{
		Orders:     DefaultOrders,
		OLSOptions: linearmodel.NewDefaultOLSOptions(),
	}
}

// Validate fills in defaults and checks the options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Orders < 1 {
		return nil, fmt.Errorf("got %d, %w", o.Orders, ErrInvalidOrders)
	}
	olsOpt, err := o.OLSOptions.Validate()
	if err != nil {
		return nil, err
	}
	o.OLSOptions = olsOpt
	return o, nil
}
