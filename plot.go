package forecaster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultPlotHistoryDays is the number of days of history drawn before the forecast
const DefaultPlotHistoryDays = 90

// missingValue is rendered by echarts as a break in the line
const missingValue = "-"

var ErrNoPlotData = errors.New("no history or forecast to plot")

// LineTSeries generates an echart multi-line chart for some arbitrary date/value combination.
// Each y series must have the same length as the dates. NaN values are drawn as gaps.
func LineTSeries(title string, seriesName []string, dates []string, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Trigger: "axis",
			},
		),
	)

	line = line.SetXAxis(dates)
	for i, series := range seriesName {
		lineData := make([]opts.LineData, 0, len(y[i]))
		for _, val := range y[i] {
			if math.IsNaN(val) {
				lineData = append(lineData, opts.LineData{Value: missingValue})
				continue
			}
			lineData = append(lineData, opts.LineData{Value: val})
		}
		line = line.AddSeries(series, lineData)
	}
	return line
}

// LineForecast charts the last historyDays of a variable followed by its forecast records.
// The forecast line starts at the last observed day so the two lines join.
func LineForecast(v timedataset.Variable, td *timedataset.TimeDataset, records []Record, historyDays int) *charts.Line {
	start := 0
	if n := td.Len(); historyDays > 0 && n > historyDays {
		start = n - historyDays
	}

	var history []float64
	var dates []string
	if td != nil {
		history = td.Y[v][start:]
		for _, t := range td.T[start:] {
			dates = append(dates, t.Format(time.DateOnly))
		}
	}

	actual := make([]float64, 0, len(history)+len(records))
	predicted := make([]float64, 0, len(history)+len(records))
	actual = append(actual, history...)
	for i := range history {
		if i == len(history)-1 {
			predicted = append(predicted, history[i])
			continue
		}
		predicted = append(predicted, math.NaN())
	}
	for _, r := range records {
		dates = append(dates, r.Date)
		actual = append(actual, math.NaN())
		predicted = append(predicted, r.Value(v))
	}

	return LineTSeries(
		fmt.Sprintf("%s Forecast", v),
		[]string{"Actual", "Forecast"},
		dates,
		[][]float64{actual, predicted},
	)
}

// PlotForecast uses the Apache Echarts library to render an html page with one chart per
// variable showing recent history and the forecast records
func PlotForecast(w io.Writer, td *timedataset.TimeDataset, records []Record) error {
	if td.Len() == 0 && len(records) == 0 {
		return ErrNoPlotData
	}

	page := components.NewPage()
	page.PageTitle = "Climate Forecast"
	for _, v := range timedataset.Variables {
		page.AddCharts(LineForecast(v, td, records, DefaultPlotHistoryDays))
	}
	return page.Render(w)
}
