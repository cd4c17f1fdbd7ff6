package barchart

import (
	"testing"
	"time"

	"gdp-chart/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quarterly(values ...float64) dataset.Series {
	s := dataset.Series{Name: "GDP"}
	start := date(1947, 1, 1)
	for i, v := range values {
		s.Points = append(s.Points, dataset.DataPoint{Date: start.AddDate(0, 3*i, 0), Value: v})
	}
	return s
}

func TestNewLayoutTwoQuarters(t *testing.T) {
	l, err := NewLayout(quarterly(243.1, 246.3), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 740, l.InnerWidth)
	assert.Equal(t, 340, l.InnerHeight)
	assert.Equal(t, "Gross Domestic Product, USA (1947 - 1947)", l.Title)

	require.Len(t, l.Bars, 2)
	first, second := l.Bars[0], l.Bars[1]
	assert.Equal(t, 0, first.X)
	assert.Equal(t, 740, second.X)
	assert.Equal(t, 370, first.Width)
	assert.Equal(t, 0, second.Y)
	assert.Equal(t, 340, second.Height)
	assert.Equal(t, 4, first.Y)
	assert.Equal(t, l.InnerHeight, first.Y+first.Height)
	assert.Equal(t, "gradient-green", first.Fill)
	assert.Zero(t, first.Delay)
}

func TestNewLayoutGeometry(t *testing.T) {
	values := []float64{300, 120.5, 480, 480, 75, 910.25, 640}
	l, err := NewLayout(quarterly(values...), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, l.Bars, len(values))

	for i, b := range l.Bars {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, 106, b.Width, "ceil(740/7)")
		assert.Equal(t, l.InnerHeight, b.Y+b.Height)
		assert.GreaterOrEqual(t, b.Height, 0)
		if i > 0 {
			assert.Greater(t, b.X, l.Bars[i-1].X, "bars follow date order")
		}
	}

	// taller bars for larger values
	for i := range l.Bars {
		for j := range l.Bars {
			if values[i] > values[j] {
				assert.GreaterOrEqual(t, l.Bars[i].Height, l.Bars[j].Height)
			}
		}
	}
	assert.Equal(t, 0, l.Bars[5].Y, "maximum reaches the top")
}

func TestNewLayoutTicks(t *testing.T) {
	series := dataset.Series{Points: []dataset.DataPoint{
		{Date: date(1947, 1, 1), Value: 243.1},
		{Date: date(2015, 7, 1), Value: 18064.7},
	}}
	l, err := NewLayout(series, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, l.YTicks, 10)
	assert.Equal(t, Tick{Offset: 340, Label: "0"}, l.YTicks[0])
	assert.Equal(t, "18,000", l.YTicks[9].Label)

	require.NotEmpty(t, l.XTicks)
	assert.Equal(t, "1950", l.XTicks[0].Label)
	for i := 1; i < len(l.XTicks); i++ {
		assert.Greater(t, l.XTicks[i].Offset, l.XTicks[i-1].Offset)
	}
}

func TestNewLayoutAnimatedDelays(t *testing.T) {
	opts := DefaultOptions()
	opts.Animated = true
	l, err := NewLayout(quarterly(1, 2, 3, 4), opts)
	require.NoError(t, err)

	for i, b := range l.Bars {
		assert.Equal(t, time.Duration(i)*4*time.Millisecond, b.Delay)
	}
}

func TestNewLayoutSingleAndEmpty(t *testing.T) {
	l, err := NewLayout(quarterly(243.1), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, l.Bars, 1)
	assert.Equal(t, 370, l.Bars[0].X, "single date maps to the middle")
	assert.Equal(t, 740, l.Bars[0].Width)

	empty, err := NewLayout(dataset.Series{}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, empty.Bars)
	assert.Equal(t, "Gross Domestic Product, USA", empty.Title)
}

func TestNewLayoutErrors(t *testing.T) {
	opts := DefaultOptions()
	opts.Palette = "purple"
	_, err := NewLayout(quarterly(1), opts)
	assert.ErrorIs(t, err, ErrUnknownPalette)

	opts = DefaultOptions()
	opts.Width = 50
	_, err = NewLayout(quarterly(1), opts)
	assert.Error(t, err)
}

func TestNewLayoutDoesNotModifySeries(t *testing.T) {
	series := quarterly(5, 3, 9)
	before := append([]dataset.DataPoint(nil), series.Points...)
	_, err := NewLayout(series, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, before, series.Points)
}
