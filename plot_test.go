package forecaster

import (
	"bytes"
	"math"
	"testing"

	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineForecast(t *testing.T) {
	td := simulatedDataset(t, 120)
	records, err := Run(td, trainEnd, nil)
	require.Nil(t, err)

	line := LineForecast(timedataset.Rainfall, td, records, 30)
	require.NotNil(t, line)
	require.Len(t, line.MultiSeries, 2)

	actual := line.MultiSeries[0]
	forecast := line.MultiSeries[1]
	assert.Equal(t, "Actual", actual.Name)
	assert.Equal(t, "Forecast", forecast.Name)
	assert.Len(t, actual.Data, 37)
	assert.Len(t, forecast.Data, 37)
}

func TestLineTSeriesGaps(t *testing.T) {
	line := LineTSeries("gaps", []string{"a"}, []string{"2024-01-01", "2024-01-02"}, [][]float64{{1, math.NaN()}})
	require.Len(t, line.MultiSeries, 1)
	assert.Len(t, line.MultiSeries[0].Data, 2)
}

func TestPlotForecast(t *testing.T) {
	td := simulatedDataset(t, 120)
	records, err := Run(td, trainEnd, nil)
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, PlotForecast(&buf, td, records))

	out := buf.String()
	assert.Contains(t, out, "<html")
	for _, v := range timedataset.Variables {
		assert.Contains(t, out, v.String()+" Forecast")
	}

	assert.ErrorIs(t, PlotForecast(&buf, nil, nil), ErrNoPlotData)
}
