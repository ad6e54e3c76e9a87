// Command climate-forecast serves and inspects the 7 day climate forecast
//
//	climate-forecast serve
//	climate-forecast predict [-data daily_climate.csv] [-date 2024-07-01]
//	climate-forecast model   [-data daily_climate.csv] [-json]
//	climate-forecast plot    [-data daily_climate.csv] [-date 2024-07-01] [-out forecast.html]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	forecaster "github.com/aouyang1/go-climate-forecast"
	"github.com/aouyang1/go-climate-forecast/climatedata"
	"github.com/aouyang1/go-climate-forecast/config"
	"github.com/aouyang1/go-climate-forecast/server"
	"github.com/aouyang1/go-climate-forecast/timedataset"
	"github.com/goccy/go-json"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage: climate-forecast <command> [flags]

commands:
  serve    serve GET /forecast on $PORT
  predict  print the forecast of the days after -date as json
  model    print the fit model of every variable
  plot     render the history and forecast as an html page
`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logger.Error("climate-forecast failed", "error", err.Error(), "kind", forecaster.Classify(err))
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "serve":
		return serve(cfg)
	case "predict":
		return predict(cfg, args, stdout, now)
	case "model":
		return model(cfg, args, stdout)
	case "plot":
		return plot(cfg, args, stdout, now)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("%s, %w", cmd, ErrUnknownCommand)
}

func serve(cfg *config.Config) error {
	s, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.ListenAndServe(ctx)
}

// commonFlags registers the flags shared by the offline commands
func commonFlags(name string, cfg *config.Config) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	dataPath := fs.String("data", cfg.DataPath, "path to the daily climate csv")
	allowGaps := fs.Bool("allow-gaps", cfg.AllowGaps, "accept calendar gaps between records")
	return fs, dataPath, allowGaps
}

func parseRunDate(s string, now func() time.Time) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	return time.Parse(time.DateOnly, s)
}

func loadDataset(dataPath string, allowGaps bool) (*timedataset.TimeDataset, error) {
	return climatedata.LoadFile(dataPath, &timedataset.Options{AllowGaps: allowGaps})
}

func predict(cfg *config.Config, args []string, stdout io.Writer, now func() time.Time) error {
	fs, dataPath, allowGaps := commonFlags("predict", cfg)
	date := fs.String("date", "", "run date as YYYY-MM-DD, defaults to today")
	if err := fs.Parse(args); err != nil {
		return err
	}
	runDate, err := parseRunDate(*date, now)
	if err != nil {
		return err
	}

	td, err := loadDataset(*dataPath, *allowGaps)
	if err != nil {
		return err
	}
	records, err := forecaster.Run(td, runDate, nil)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func model(cfg *config.Config, args []string, stdout io.Writer) error {
	fs, dataPath, allowGaps := commonFlags("model", cfg)
	asJSON := fs.Bool("json", false, "print the model as json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	td, err := loadDataset(*dataPath, *allowGaps)
	if err != nil {
		return err
	}
	f, err := forecaster.New(nil)
	if err != nil {
		return err
	}
	if err := f.Fit(td); err != nil {
		return err
	}
	m, err := f.Model()
	if err != nil {
		return err
	}

	if *asJSON {
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(out))
		return err
	}
	return m.TablePrint(stdout, "", "  ")
}

func plot(cfg *config.Config, args []string, stdout io.Writer, now func() time.Time) error {
	fs, dataPath, allowGaps := commonFlags("plot", cfg)
	date := fs.String("date", "", "run date as YYYY-MM-DD, defaults to today")
	outPath := fs.String("out", "forecast.html", "html file to write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	runDate, err := parseRunDate(*date, now)
	if err != nil {
		return err
	}

	td, err := loadDataset(*dataPath, *allowGaps)
	if err != nil {
		return err
	}
	records, err := forecaster.Run(td, runDate, nil)
	if err != nil {
		return err
	}

	file, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := forecaster.PlotForecast(file, td, records); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s\n", *outPath)
	return err
}
