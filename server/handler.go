package server

import (
	"net/http"
	"time"

	forecaster "github.com/aouyang1/go-climate-forecast"
	"github.com/aouyang1/go-climate-forecast/climatedata"
	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// handleForecast reloads the climate records, retrains every variable and responds with
// the forecast of the days after today. Nothing is shared between requests.
func (s *Server) handleForecast(c *gin.Context) {
	start := time.Now()
	records, err := s.forecast()
	s.metrics.ForecastRunDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		kind := forecaster.Classify(err)
		s.metrics.ForecastRunsTotal.WithLabelValues(string(kind)).Inc()
		s.logger.Error("forecast failed", "kind", kind, "error", err.Error())
		writeJSON(c, http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Kind:  string(kind),
		})
		return
	}

	s.metrics.ForecastRunsTotal.WithLabelValues("ok").Inc()
	writeJSON(c, http.StatusOK, records)
}

func (s *Server) forecast() ([]forecaster.Record, error) {
	td, err := climatedata.LoadFile(s.cfg.DataPath, &timedataset.Options{AllowGaps: s.cfg.AllowGaps})
	if err != nil {
		return nil, err
	}
	s.metrics.DatasetRows.Set(float64(td.Len()))

	return forecaster.Run(td, s.now(), nil)
}

func handleHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON serializes with go-json so field order of the records is kept
func writeJSON(c *gin.Context, status int, body any) {
	out, err := json.Marshal(body)
	if err != nil {
		out, _ = json.Marshal(ErrorResponse{
			Error: err.Error(),
			Kind:  string(forecaster.KindInternal),
		})
		status = http.StatusInternalServerError
	}
	c.Data(status, contentTypeJSON, out)
}
