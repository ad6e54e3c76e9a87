package timedataset

import (
	"time"
)

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// Gaps returns the indices i where t[i] is not the calendar day after t[i-1]
func (t TimeSlice) Gaps() []int {
	var gaps []int
	for i := 1; i < len(t); i++ {
		if !t[i].Equal(t[i-1].AddDate(0, 0, 1)) {
			gaps = append(gaps, i)
		}
	}
	return gaps
}

// NextDays returns n consecutive calendar days starting the day after t
func NextDays(t time.Time, n int) []time.Time {
	start := Day(t)
	days := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
