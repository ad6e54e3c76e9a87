package forecaster

import (
	"fmt"
	"io"

	"github.com/aouyang1/go-climate-forecast/forecast"
	"github.com/aouyang1/go-climate-forecast/forecast/util"
)

// Model is a serializeable representation of the forecaster options and the fit model of
// every variable in variable order
type Model struct {
	Options   *Options         `json:"options"`
	Forecasts []forecast.Model `json:"forecasts"`
}

// TablePrint writes every variable's model as an indented table
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if m.Options != nil {
		if _, err := fmt.Fprintf(w, "%s%sHorizon: %d days\n", prefix, util.IndentExpand(indent, 0), m.Options.Horizon); err != nil {
			return err
		}
	}
	for _, fm := range m.Forecasts {
		if err := fm.TablePrint(w, prefix, indent); err != nil {
			return fmt.Errorf("unable to print %s model, %w", fm.Variable, err)
		}
	}
	return nil
}
