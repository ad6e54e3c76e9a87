// Package feature builds the autoregressive lag features each variable is trained on
package feature

import (
	"fmt"

	"github.com/aouyang1/go-climate-forecast/timedataset"
)

// Lag represents the value of a variable Offset days before the current day
type Lag struct {
	Variable timedataset.Variable `json:"variable"`
	Offset   int                  `json:"offset"`
}

// String returns the column label of the lag, e.g. Temprature_t-1
func (l Lag) String() string {
	return fmt.Sprintf("%s_t-%d", l.Variable, l.Offset)
}

// Lags returns the lag features of a variable ordered most recent first
func Lags(v timedataset.Variable, orders int) []Lag {
	lags := make([]Lag, 0, orders)
	for o := 1; o <= orders; o++ {
		lags = append(lags, Lag{Variable: v, Offset: o})
	}
	return lags
}
