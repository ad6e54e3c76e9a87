package forecaster

import (
	"fmt"
	"os"
	"time"

	"github.com/aouyang1/go-climate-forecast/timedataset"
)

func ExampleRun() {
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	td, err := timedataset.NewDailyDataset(timedataset.Simulate(3*365, end, 42), nil)
	if err != nil {
		panic(err)
	}

	runDate := time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC)
	records, err := Run(td, runDate, nil)
	if err != nil {
		panic(err)
	}
	for _, r := range records {
		fmt.Println(r.Date)
	}
	// Output:
	// 2024-07-05
	// 2024-07-06
	// 2024-07-07
	// 2024-07-08
	// 2024-07-09
	// 2024-07-10
	// 2024-07-11
}

func ExampleModel_TablePrint() {
	y := timedataset.GenerateAR2(60, 4.0, 0.6, 0.2, 20.0, 10.0, nil)

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	t := timedataset.GenerateDailyT(len(y), end)
	obs := make([]timedataset.Observation, len(y))
	for i := range y {
		obs[i].Date = t[i]
		for _, v := range timedataset.Variables {
			obs[i].Values[v] = y[i]
		}
	}
	td, err := timedataset.NewDailyDataset(obs, nil)
	if err != nil {
		panic(err)
	}

	f, err := New(nil)
	if err != nil {
		panic(err)
	}
	if err := f.Fit(td); err != nil {
		panic(err)
	}
	eqs, err := f.ModelEqs()
	if err != nil {
		panic(err)
	}
	for _, eq := range eqs {
		fmt.Println(eq)
	}

	m, err := f.Model()
	if err != nil {
		panic(err)
	}
	if err := m.TablePrint(os.Stdout, "", "  "); err != nil {
		panic(err)
	}
}
