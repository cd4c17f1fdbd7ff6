package barchart

import (
	"math"
	"time"
)

// LinearScale maps [D0, D1] onto [R0, R1], rounding to whole pixels.
// A zero-width domain maps every value to the middle of the range.
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

func (s LinearScale) normalize(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 || math.IsNaN(span) {
		return 0.5
	}
	return (v - s.D0) / span
}

func (s LinearScale) Map(v float64) int {
	return int(math.Round(s.R0 + s.normalize(v)*(s.R1-s.R0)))
}

func (s LinearScale) Ticks(count int) []float64 {
	return linearTicks(s.D0, s.D1, count)
}

// TimeScale maps a date extent onto [R0, R1] in whole pixels.
type TimeScale struct {
	D0, D1 time.Time
	R0, R1 float64
}

func (s TimeScale) linear() LinearScale {
	return LinearScale{D0: unixMillis(s.D0), D1: unixMillis(s.D1), R0: s.R0, R1: s.R1}
}

func (s TimeScale) Map(t time.Time) int {
	return s.linear().Map(unixMillis(t))
}

func (s TimeScale) Ticks(count int) []time.Time {
	return timeTicks(s.D0, s.D1, count)
}

func unixMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}
