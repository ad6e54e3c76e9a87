// Package linearmodel holds the closed form linear regression used to fit each lag model
package linearmodel

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a trainable linear model mapping a design matrix to a single target column
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
