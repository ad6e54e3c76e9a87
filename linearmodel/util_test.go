package linearmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol, "coefficients")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}

// generateLagBenchData builds an AR(2) style design of two lag columns over n observations.
func generateLagBenchData(n int) (mat.Matrix, mat.Matrix) {
	series := make([]float64, n+2)
	series[0], series[1] = 10.0, 11.0
	for i := 2; i < len(series); i++ {
		// deterministic pseudo noise keeps the design full rank
		noise := float64((i*7919)%13) - 6.0
		series[i] = 3.0 + 0.6*series[i-1] + 0.2*series[i-2] + 0.1*noise
	}

	x := mat.NewDense(n, 2, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, series[i+1])
		x.Set(i, 1, series[i])
		y.Set(i, 0, series[i+2])
	}
	return x, y
}
