package forecaster

import (
	"errors"

	"github.com/aouyang1/go-climate-forecast/climatedata"
	"github.com/aouyang1/go-climate-forecast/timedataset"
)

var (
	ErrInsufficientData = errors.New("insufficient data to train forecast")
	ErrModelFit         = errors.New("unable to fit forecast model")
	ErrUnfitForecaster  = errors.New("forecaster has not been fit")
)

// ErrorKind classifies a pipeline failure for callers that report it
type ErrorKind string

const (
	KindDataError        ErrorKind = "data_error"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindModelFitError    ErrorKind = "model_fit_error"
	KindInternal         ErrorKind = "internal"
)

var dataErrors = []error{
	climatedata.ErrOpen,
	climatedata.ErrRead,
	climatedata.ErrMissingColumn,
	climatedata.ErrInvalidDate,
	climatedata.ErrInvalidValue,
	timedataset.ErrNoTrainingData,
	timedataset.ErrDuplicateDate,
	timedataset.ErrNonContiguous,
}

// IsDataError reports whether err stems from missing, unreadable or malformed input data
func IsDataError(err error) bool {
	for _, target := range dataErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Classify maps an error returned by loading or Run onto its ErrorKind
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case IsDataError(err):
		return KindDataError
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, ErrModelFit):
		return KindModelFitError
	default:
		return KindInternal
	}
}
