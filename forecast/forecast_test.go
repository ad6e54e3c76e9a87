package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-climate-forecast/feature"
	"github.com/aouyang1/go-climate-forecast/linearmodel"
	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var endDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

// newTable builds a lag table where every variable follows y with a per variable offset
func newTable(t *testing.T, y []float64, orders int) *feature.Table {
	tSeries := timedataset.GenerateDailyT(len(y), endDate)
	obs := make([]timedataset.Observation, len(y))
	for i := range y {
		obs[i].Date = tSeries[i]
		for _, v := range timedataset.Variables {
			obs[i].Values[v] = y[i] + 10*float64(v)
		}
	}
	td, err := timedataset.NewDailyDataset(obs, nil)
	require.Nil(t, err)

	tbl, err := feature.NewTable(td, orders, 3)
	require.Nil(t, err)
	return tbl
}

func TestFit(t *testing.T) {
	intercept, phi1, phi2 := 4.0, 0.6, 0.2
	y := timedataset.GenerateAR2(30, intercept, phi1, phi2, 20.0, 10.0, nil)

	f, err := New(timedataset.Temprature, nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(newTable(t, y, 2)))

	assert.InDelta(t, intercept, f.Intercept(), 1e-6)

	coef, err := f.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, phi1, coef["Temprature_t-1"], 1e-6)
	assert.InDelta(t, phi2, coef["Temprature_t-2"], 1e-6)

	scores := f.Scores()
	assert.Less(t, scores.MSE, 1e-9)
	assert.Less(t, scores.MAPE, 1e-9)
	assert.InDelta(t, 1.0, scores.R2, 1e-6)

	assert.Equal(t, []float64{y[29], y[28]}, f.Seed())
	assert.Len(t, f.Residuals(), 28)
	assert.Equal(t, timedataset.Temprature, f.Variable())
}

func TestFitNoisy(t *testing.T) {
	n := 3650
	y := timedataset.GenerateAR2(n, 4.0, 0.6, 0.2, 20.0, 21.0, timedataset.GenerateNoise(n, 1.0, 11))

	f, err := New(timedataset.Humidity, nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(newTable(t, y, 2)))

	// other variables are offset so humidity sees y + 10
	coef, err := f.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 0.6, coef["Humidity_t-1"], 0.05)
	assert.InDelta(t, 0.2, coef["Humidity_t-2"], 0.05)

	scores := f.Scores()
	assert.InDelta(t, 1.0, scores.MSE, 0.1)
	assert.Greater(t, scores.R2, 0.4)
}

func TestFitErrors(t *testing.T) {
	f, err := New(timedataset.Rainfall, nil)
	require.Nil(t, err)

	assert.ErrorIs(t, f.Fit(nil), ErrNoLagTable)

	constant := timedataset.GenerateConstY(10, 0)
	assert.ErrorIs(t, f.Fit(newTable(t, constant, 2)), linearmodel.ErrRankDeficient)

	assert.ErrorIs(t, f.Fit(newTable(t, []float64{1, 3, 2, 5, 4}, 1)), linearmodel.ErrFeatureLenMismatch)

	var nilForecast *Forecast
	assert.ErrorIs(t, nilForecast.Fit(nil), ErrUninitializedForecast)
}

func TestFitMinimumRows(t *testing.T) {
	f, err := New(timedataset.Wind, nil)
	require.Nil(t, err)

	// three rows exactly determine intercept and two lags
	require.Nil(t, f.Fit(newTable(t, []float64{1, 3, 2, 5, 4}, 2)))

	seq, err := f.Horizon(f.Seed(), 7)
	require.Nil(t, err)

	cnt := 0
	for _, err := range seq {
		require.Nil(t, err)
		cnt++
	}
	assert.Equal(t, 7, cnt)
}

func TestHorizonIdentityModel(t *testing.T) {
	f, err := NewFromWeights(timedataset.Temprature, nil, 0, []float64{1, 0})
	require.Nil(t, err)

	seq, err := f.Horizon([]float64{20.0, 21.0}, 7)
	require.Nil(t, err)

	res := make([]float64, 0, 7)
	for pred, err := range seq {
		require.Nil(t, err)
		res = append(res, pred)
	}
	assert.Equal(t, []float64{20, 20, 20, 20, 20, 20, 20}, res)
}

func TestHorizonChainProperty(t *testing.T) {
	n := 400
	y := timedataset.GenerateAR2(n, 2.0, 0.5, 0.3, 5.0, 6.0, timedataset.GenerateNoise(n, 0.5, 3))

	f, err := New(timedataset.Temprature, nil)
	require.Nil(t, err)
	require.Nil(t, f.Fit(newTable(t, y, 2)))

	seed := f.Seed()
	seq, err := f.Horizon(seed, 7)
	require.Nil(t, err)

	// outputs prefixed with the seed reversed so out[k+1] and out[k] are lags of step k
	out := []float64{seed[1], seed[0]}
	for pred, err := range seq {
		require.Nil(t, err)
		out = append(out, pred)
	}
	require.Len(t, out, 9)

	for k := 0; k < 7; k++ {
		expected, err := f.Predict([]float64{out[k+1], out[k]})
		require.Nil(t, err)
		assert.Equal(t, expected, out[k+2], "step %d", k)
	}
}

func TestHorizonRestartsFromSeed(t *testing.T) {
	f, err := NewFromWeights(timedataset.Wind, nil, 1.0, []float64{0.5, 0.25})
	require.Nil(t, err)

	seed := []float64{4, 8}
	seq, err := f.Horizon(seed, 3)
	require.Nil(t, err)

	collect := func() []float64 {
		var res []float64
		for pred, err := range seq {
			require.Nil(t, err)
			res = append(res, pred)
		}
		return res
	}
	// 1 + 0.5*4 + 0.25*8 = 5, 1 + 0.5*5 + 0.25*4 = 4.5, 1 + 0.5*4.5 + 0.25*5 = 4.5
	first := collect()
	assert.Equal(t, []float64{5, 4.5, 4.5}, first)
	assert.Equal(t, first, collect())

	seed[0] = 100
	assert.Equal(t, first, collect(), "horizon must not alias the seed")
}

func TestHorizonEarlyBreak(t *testing.T) {
	f, err := NewFromWeights(timedataset.Wind, nil, 0, []float64{1, 0})
	require.Nil(t, err)

	seq, err := f.Horizon([]float64{1, 2}, 7)
	require.Nil(t, err)

	cnt := 0
	for _, err := range seq {
		require.Nil(t, err)
		cnt++
		if cnt == 3 {
			break
		}
	}
	assert.Equal(t, 3, cnt)
}

func TestHorizonNonFinite(t *testing.T) {
	testData := map[string]struct {
		coef     []float64
		seed     []float64
		expected []float64
	}{
		"overflow on first step": {
			coef:     []float64{math.MaxFloat64, math.MaxFloat64},
			seed:     []float64{2, 3},
			expected: []float64{},
		},
		"overflow after growth": {
			coef:     []float64{1e200, 0},
			seed:     []float64{1, 0},
			expected: []float64{1e200},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			f, err := NewFromWeights(timedataset.Wind, nil, 0, td.coef)
			require.Nil(t, err)

			seq, err := f.Horizon(td.seed, 7)
			require.Nil(t, err)

			res := []float64{}
			var seqErr error
			for pred, err := range seq {
				if err != nil {
					seqErr = err
					break
				}
				res = append(res, pred)
			}
			assert.ErrorIs(t, seqErr, ErrNonFiniteForecast)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestHorizonErrors(t *testing.T) {
	untrained, err := New(timedataset.Temprature, nil)
	require.Nil(t, err)
	_, err = untrained.Horizon([]float64{1, 2}, 7)
	assert.ErrorIs(t, err, ErrUntrainedForecast)

	_, err = untrained.Predict([]float64{1, 2})
	assert.ErrorIs(t, err, ErrUntrainedForecast)

	f, err := NewFromWeights(timedataset.Temprature, nil, 0, []float64{1, 0})
	require.Nil(t, err)

	_, err = f.Horizon([]float64{1}, 7)
	assert.ErrorIs(t, err, ErrSeedLenMismatch)

	_, err = f.Horizon([]float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrNegativeSteps)

	_, err = NewFromWeights(timedataset.Temprature, nil, 0, []float64{1, 0, 0})
	assert.ErrorIs(t, err, linearmodel.ErrFeatureLenMismatch)

	_, err = New(timedataset.Temprature, &Options{Orders: 0})
	assert.ErrorIs(t, err, ErrInvalidOrders)
}

func TestModelEq(t *testing.T) {
	f, err := NewFromWeights(timedataset.Rainfall, nil, 1.5, []float64{0.25, -0.5})
	require.Nil(t, err)

	eq, err := f.ModelEq()
	require.Nil(t, err)
	assert.Equal(t, "Rainfall ~ 1.50+0.25*Rainfall_t-1+-0.50*Rainfall_t-2", eq)
}

func TestModel(t *testing.T) {
	y := timedataset.GenerateAR2(30, 4.0, 0.6, 0.2, 20.0, 10.0, nil)
	f, err := New(timedataset.Wind, nil)
	require.Nil(t, err)

	_, err = f.Model()
	assert.ErrorIs(t, err, ErrUntrainedForecast)

	require.Nil(t, f.Fit(newTable(t, y, 2)))

	m, err := f.Model()
	require.Nil(t, err)
	assert.Equal(t, timedataset.Wind, m.Variable)
	assert.Equal(t, endDate, m.TrainEndTime)
	assert.Equal(t, 28, m.TrainRows)
	assert.Equal(t, f.Seed(), m.Seed)
	require.Len(t, m.Weights.Coef, 2)
	assert.Equal(t, "Wind_t-1", m.Weights.Coef[0].Label)
	assert.Equal(t, feature.Lag{Variable: timedataset.Wind, Offset: 2}, m.Weights.Coef[1].Lag)
	assert.InDeltaSlice(t, []float64{0.6, 0.2}, m.Weights.Coefficients(), 1e-6)
}
