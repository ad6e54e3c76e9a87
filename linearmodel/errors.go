package linearmodel

import "errors"

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrNonFiniteInput     = errors.New("training data contains NaN or infinite values")
	ErrUnderdetermined    = errors.New("fewer observations than model coefficients")
	ErrRankDeficient      = errors.New("training matrix is rank deficient")
	ErrNonFiniteSolution  = errors.New("solved coefficients are not finite")
	ErrUntrainedModel     = errors.New("model has not been trained yet")
)
