package barchart

import (
	"math"
	"time"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickIncrement returns a 1, 2 or 5 times power-of-ten step. Negative results
// encode the inverse of a fractional step (-10 means 0.1) to keep ticks exact.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

func tickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / math.Max(0, float64(count))
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	err := step0 / step1
	switch {
	case err >= e10:
		step1 *= 10
	case err >= e5:
		step1 *= 5
	case err >= e2:
		step1 *= 2
	}
	if stop < start {
		return -step1
	}
	return step1
}

// linearTicks returns roughly count evenly spaced round values inside [start, stop].
func linearTicks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		lo, hi := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		k := -inc
		lo, hi := math.Ceil(start*k), math.Floor(stop*k)
		for i := lo; i <= hi; i++ {
			ticks = append(ticks, i/k)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// tickPrecision is the number of decimals needed to print ticks of the given step.
func tickPrecision(start, stop float64, count int) int {
	step := math.Abs(tickStep(start, stop, count))
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) || step >= 1 {
		return 0
	}
	return int(math.Max(0, -math.Floor(math.Log10(step))))
}

type calendarUnit int

const (
	unitDay calendarUnit = iota
	unitWeek
	unitMonth
	unitYear
)

type calendarInterval struct {
	unit     calendarUnit
	step     int
	duration time.Duration
}

const (
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

var calendarIntervals = []calendarInterval{
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

// chooseInterval picks the calendar interval whose length is closest to span/count.
func chooseInterval(t0, t1 time.Time, count int) calendarInterval {
	target := t1.Sub(t0) / time.Duration(count)

	i := 0
	for i < len(calendarIntervals) && calendarIntervals[i].duration <= target {
		i++
	}
	switch {
	case i == len(calendarIntervals):
		years := tickStep(float64(t0.UnixMilli())/float64(durationYear.Milliseconds()),
			float64(t1.UnixMilli())/float64(durationYear.Milliseconds()), count)
		step := int(math.Max(1, math.Round(years)))
		return calendarInterval{unitYear, step, time.Duration(step) * durationYear}
	case i == 0:
		return calendarIntervals[0]
	}

	prev, next := calendarIntervals[i-1], calendarIntervals[i]
	if float64(target)/float64(prev.duration) < float64(next.duration)/float64(target) {
		return prev
	}
	return next
}

// timeTicks returns calendar-aligned dates inside [t0, t1], in UTC.
func timeTicks(t0, t1 time.Time, count int) []time.Time {
	if count <= 0 || t0.IsZero() && t1.IsZero() {
		return nil
	}
	t0, t1 = t0.UTC(), t1.UTC()
	if t1.Before(t0) {
		t0, t1 = t1, t0
	}
	if t0.Equal(t1) {
		return []time.Time{t0}
	}

	iv := chooseInterval(t0, t1, count)

	var ticks []time.Time
	switch iv.unit {
	case unitDay:
		t := ceilDay(t0)
		for ; !t.After(t1); t = t.AddDate(0, 0, 1) {
			if (t.Day()-1)%iv.step == 0 {
				ticks = append(ticks, t)
			}
		}
	case unitWeek:
		t := ceilDay(t0)
		for t.Weekday() != time.Sunday {
			t = t.AddDate(0, 0, 1)
		}
		for ; !t.After(t1); t = t.AddDate(0, 0, 7) {
			ticks = append(ticks, t)
		}
	case unitMonth:
		t := time.Date(t0.Year(), t0.Month(), 1, 0, 0, 0, 0, time.UTC)
		if t.Before(t0) {
			t = t.AddDate(0, 1, 0)
		}
		for ; !t.After(t1); t = t.AddDate(0, 1, 0) {
			if int(t.Month()-1)%iv.step == 0 {
				ticks = append(ticks, t)
			}
		}
	case unitYear:
		year := t0.Year()
		if time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Before(t0) {
			year++
		}
		if r := year % iv.step; r != 0 {
			year += iv.step - r
		}
		for t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); !t.After(t1); t = t.AddDate(iv.step, 0, 0) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func ceilDay(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(t) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// timeTickLabel labels a tick by its coarsest calendar boundary.
func timeTickLabel(t time.Time) string {
	t = t.UTC()
	switch {
	case t.Month() == time.January && t.Day() == 1:
		return t.Format("2006")
	case t.Day() == 1:
		return t.Format("January")
	case t.Weekday() == time.Sunday:
		return t.Format("Jan 02")
	default:
		return t.Format("Mon 02")
	}
}
