package barchart

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// SignificantDigits is the precision of tooltip values.
const SignificantDigits = 7

// FormatValue rounds v to SignificantDigits significant digits and groups
// thousands: 18064.7 -> "18,064.7", 1234567.891 -> "1,234,568".
func FormatValue(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return humanize.Commaf(0)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', SignificantDigits, 64), 64)
	if err != nil {
		rounded = v
	}
	return humanize.Commaf(rounded)
}

// FormatMonthYear renders a date as "January 1947".
func FormatMonthYear(t time.Time) string {
	return t.UTC().Format("January 2006")
}

func formatTick(v float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	v = math.Round(v*scale) / scale
	if v == 0 {
		v = 0 // drops negative zero
	}
	return humanize.Commaf(v)
}
