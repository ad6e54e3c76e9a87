package forecast

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-climate-forecast/feature"
	"github.com/aouyang1/go-climate-forecast/forecast/util"
	"github.com/aouyang1/go-climate-forecast/timedataset"
)

// Model represents a serializeable format of a single variable forecast storing the options,
// fit scores, seed lags and coefficients
type Model struct {
	Variable     timedataset.Variable `json:"variable"`
	TrainEndTime time.Time            `json:"train_end_time"`
	TrainRows    int                  `json:"train_rows"`
	Options      *Options             `json:"options"`
	Scores       *Scores              `json:"scores"`
	Seed         []float64            `json:"seed"`
	Weights      Weights              `json:"weights"`
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%s%s Forecast:\n", prefix, util.IndentExpand(indent, 0), m.Variable); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sTraining End Date: %s\n", prefix, util.IndentExpand(indent, 1), m.TrainEndTime.Format(time.DateOnly)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sTraining Rows: %d\n", prefix, util.IndentExpand(indent, 1), m.TrainRows); err != nil {
		return err
	}

	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "%s%sOrders: %d\n", prefix, util.IndentExpand(indent, 1), m.Options.Orders); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s%sSeed: %v\n", prefix, util.IndentExpand(indent, 1), m.Seed); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.Weights.tablePrint(w, prefix, indent, 0)
}

// Weights stores the intercept and lag coefficients for the forecast model
type Weights struct {
	Intercept float64         `json:"intercept"`
	Coef      []FeatureWeight `json:"coefficients"`
}

// Coefficients returns a slice copy of the coefficients ignoring the intercept.
func (w *Weights) Coefficients() []float64 {
	coef := make([]float64, 0, len(w.Coef))
	for _, fw := range w.Coef {
		coef = append(coef, fw.Value)
	}
	return coef
}

func (w Weights) tablePrint(wr io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(wr, "%s%sWeights:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(wr, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sLabel\tValue\t\n", prefix, util.IndentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sIntercept\t%.3f\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), w.Intercept); err != nil {
		return err
	}
	for _, fw := range w.Coef {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.3f\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			fw.Label, fw.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

// FeatureWeight represents a lag feature and its trained coefficient
type FeatureWeight struct {
	Label string      `json:"label"`
	Lag   feature.Lag `json:"lag"`
	Value float64     `json:"value"`
}

func NewFeatureWeight(l feature.Lag, val float64) FeatureWeight {
	return FeatureWeight{
		Label: l.String(),
		Lag:   l,
		Value: val,
	}
}
