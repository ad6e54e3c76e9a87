package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateDailyT returns n consecutive days with the last day being end.
func GenerateDailyT(n int, end time.Time) []time.Time {
	t := make([]time.Time, 0, n)
	start := Day(end).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		t = append(t, start.AddDate(0, 0, i))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) SetConst(t []time.Time, val float64, start, end time.Time) Series {
	n := len(s)
	for i := 0; i < n; i++ {
		if (t[i].After(start) || t[i].Equal(start)) && t[i].Before(end) {
			s[i] = val
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateWaveY generates a sine wave with a period in days, e.g. 365.25 for a yearly cycle
func GenerateWaveY(t []time.Time, amp, periodDays, dayOffset float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		day := float64(t[i].Unix())/86400.0 + dayOffset
		y = append(y, amp*math.Sin(2.0*math.Pi/periodDays*day))
	}
	return Series(y)
}

// GenerateNoise generates normally distributed noise from a seeded source so that
// simulations are reproducible.
func GenerateNoise(n int, scale float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*scale)
	}
	return Series(y)
}

// GenerateAR2 generates y[i] = intercept + phi1*y[i-1] + phi2*y[i-2] + noise[i] starting
// from the two initial values y0 and y1. noise may be nil.
func GenerateAR2(n int, intercept, phi1, phi2, y0, y1 float64, noise Series) Series {
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		switch i {
		case 0:
			y[i] = y0
		case 1:
			y[i] = y1
		default:
			y[i] = intercept + phi1*y[i-1] + phi2*y[i-2]
			if i < len(noise) {
				y[i] += noise[i]
			}
		}
	}
	return Series(y)
}

// Simulate generates a contiguous daily observation set ending at end where each
// variable has its own independent AR(2) process.
func Simulate(n int, end time.Time, seed uint64) []Observation {
	t := GenerateDailyT(n, end)
	series := [NumVariables]Series{
		GenerateAR2(n, 4.0, 0.6, 0.2, 20.0, 21.0, GenerateNoise(n, 1.5, seed)).
			Add(GenerateWaveY(t, 3.0, 365.25, 0)),
		GenerateAR2(n, 12.0, 0.5, 0.3, 60.0, 62.0, GenerateNoise(n, 4.0, seed+1)),
		GenerateAR2(n, 1.0, 0.3, 0.1, 2.0, 0.5, GenerateNoise(n, 1.0, seed+2)),
		GenerateAR2(n, 3.0, 0.4, 0.2, 7.0, 8.0, GenerateNoise(n, 1.2, seed+3)),
	}

	obs := make([]Observation, n)
	for i := 0; i < n; i++ {
		obs[i].Date = t[i]
		for _, v := range Variables {
			obs[i].Values[v] = series[v][i]
		}
	}
	return obs
}
