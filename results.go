package forecaster

import (
	"time"

	"github.com/aouyang1/go-climate-forecast/timedataset"
)

// Record is the forecast of every variable for a single future day. Field order is the
// serialized key order.
type Record struct {
	Date       string  `json:"Date"`
	Temprature float64 `json:"Temprature_Forecast"`
	Humidity   float64 `json:"Humidity_Forecast"`
	Rainfall   float64 `json:"Rainfall_Forecast"`
	Wind       float64 `json:"Wind_Forecast"`
}

// NewRecord formats the date as YYYY-MM-DD alongside the per variable predictions
func NewRecord(date time.Time, values [timedataset.NumVariables]float64) Record {
	return Record{
		Date:       date.Format(time.DateOnly),
		Temprature: values[timedataset.Temprature],
		Humidity:   values[timedataset.Humidity],
		Rainfall:   values[timedataset.Rainfall],
		Wind:       values[timedataset.Wind],
	}
}

// Value returns the prediction of a variable
func (r Record) Value(v timedataset.Variable) float64 {
	switch v {
	case timedataset.Temprature:
		return r.Temprature
	case timedataset.Humidity:
		return r.Humidity
	case timedataset.Rainfall:
		return r.Rainfall
	case timedataset.Wind:
		return r.Wind
	}
	return 0
}

// Values returns every variable's prediction in variable order
func (r Record) Values() [timedataset.NumVariables]float64 {
	var values [timedataset.NumVariables]float64
	for _, v := range timedataset.Variables {
		values[v] = r.Value(v)
	}
	return values
}
