// Package climatedata loads daily climate records from CSV into a validated TimeDataset
package climatedata

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	YearColumn  = "YEAR"
	MonthColumn = "MO"
	DayColumn   = "DY"
)

var (
	ErrOpen          = errors.New("unable to open climate data")
	ErrRead          = errors.New("unable to read climate data")
	ErrMissingColumn = errors.New("required column missing")
	ErrInvalidDate   = errors.New("invalid calendar date")
	ErrInvalidValue  = errors.New("invalid measurement value")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RequiredColumns lists the CSV header names a climate file must carry. Other columns
// are ignored.
func RequiredColumns() []string {
	cols := []string{YearColumn, MonthColumn, DayColumn}
	for _, v := range timedataset.Variables {
		cols = append(cols, v.String())
	}
	return cols
}

// LoadFile reads the CSV file at path. See Load.
func LoadFile(path string, opt *timedataset.Options) (*timedataset.TimeDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", err.Error(), ErrOpen)
	}
	defer f.Close()

	return Load(f, opt)
}

// Load parses a CSV with a header row holding YEAR, MO and DY date parts and the
// Temprature, Humidity, Rainfall and Wind measurements. A leading UTF-8 byte order mark
// is skipped. Blank, NA or NaN measurements are kept as NaN while any other non numeric
// measurement is rejected. Rows are sorted by date and validated according to opt.
func Load(r io.Reader, opt *timedataset.Options) (*timedataset.TimeDataset, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("%s, %w", err.Error(), ErrRead)
		}
	}

	types := map[string]series.Type{
		YearColumn:  series.Float,
		MonthColumn: series.Float,
		DayColumn:   series.Float,
	}
	// measurements are parsed by parseMeasurement
	for _, v := range timedataset.Variables {
		types[v.String()] = series.String
	}

	df := dataframe.ReadCSV(br,
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%s, %w", df.Err.Error(), ErrRead)
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	years := df.Col(YearColumn).Float()
	months := df.Col(MonthColumn).Float()
	days := df.Col(DayColumn).Float()

	var values [timedataset.NumVariables][]string
	for _, v := range timedataset.Variables {
		values[v] = df.Col(v.String()).Records()
	}

	obs := make([]timedataset.Observation, df.Nrow())
	for i := range obs {
		date, err := newDate(years[i], months[i], days[i])
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("line %d, %w", i+2, err)
		}
		obs[i].Date = date
		for _, v := range timedataset.Variables {
			val, err := parseMeasurement(values[v][i])
			if err != nil {
				return nil, fmt.Errorf("line %d, %s %w", i+2, v, err)
			}
			obs[i].Values[v] = val
		}
	}

	return timedataset.NewDailyDataset(obs, opt)
}

// parseMeasurement reads a single measurement cell. Missing cells become NaN.
func parseMeasurement(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "NA", "<nil>":
		return math.NaN(), nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q, %w", raw, ErrInvalidValue)
	}
	return val, nil
}

func checkColumns(names []string) error {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if _, exists := present[col]; !exists {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%v, %w", missing, ErrMissingColumn)
	}
	return nil
}

// newDate builds a UTC calendar date rejecting non-integer parts and dates that would
// roll over into another month such as Feb 30.
func newDate(year, month, day float64) (time.Time, error) {
	for _, part := range []float64{year, month, day} {
		if math.IsNaN(part) || math.IsInf(part, 0) || part != math.Trunc(part) {
			return time.Time{}, fmt.Errorf("%v-%v-%v, %w", year, month, day, ErrInvalidDate)
		}
	}
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("%v-%v-%v out of range, %w", year, month, day, ErrInvalidDate)
	}

	y, m, d := int(year), time.Month(month), int(day)
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d does not exist, %w", y, m, d, ErrInvalidDate)
	}
	return t, nil
}
