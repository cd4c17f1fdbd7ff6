package barchart

import (
	"fmt"
	"math"
	"time"

	"gdp-chart/internal/dataset"
)

// Tick is an axis tick at Offset pixels along its axis.
type Tick struct {
	Offset int
	Label  string
}

// Bar is the geometry and presentation of one data point. Coordinates are
// relative to the plot area (inside the margins).
type Bar struct {
	Index  int
	Point  dataset.DataPoint
	X, Y   int
	Width  int
	Height int
	Fill   string        // gradient id
	Delay  time.Duration // entrance animation delay
}

// Layout is the computed chart: scales, ticks and bars for one series.
type Layout struct {
	Options     Options
	Series      dataset.Series
	Title       string
	InnerWidth  int
	InnerHeight int
	X           TimeScale
	Y           LinearScale
	XTicks      []Tick
	YTicks      []Tick
	Bars        []Bar
}

// NewLayout computes scales and bar geometry. The series is not modified.
func NewLayout(series dataset.Series, opts Options) (*Layout, error) {
	opts = opts.withDefaults()
	fill, err := PaletteByName(opts.Palette)
	if err != nil {
		return nil, err
	}

	innerWidth := opts.Width - opts.Margins.Left - opts.Margins.Right
	innerHeight := opts.Height - opts.Margins.Top - opts.Margins.Bottom
	if innerWidth <= 0 || innerHeight <= 0 {
		return nil, fmt.Errorf("canvas %dx%d leaves no room inside margins", opts.Width, opts.Height)
	}

	lo, hi := series.Extent()
	l := &Layout{
		Options:     opts,
		Series:      series,
		Title:       opts.Title,
		InnerWidth:  innerWidth,
		InnerHeight: innerHeight,
		X:           TimeScale{D0: lo, D1: hi, R0: 0, R1: float64(innerWidth)},
		Y:           LinearScale{D0: 0, D1: series.MaxValue(), R0: float64(innerHeight), R1: 0},
	}
	if l.Title == "" {
		l.Title = defaultTitle(series)
	}

	for _, t := range l.X.Ticks(opts.Ticks) {
		l.XTicks = append(l.XTicks, Tick{Offset: l.X.Map(t), Label: timeTickLabel(t)})
	}
	precision := tickPrecision(l.Y.D0, l.Y.D1, opts.Ticks)
	for _, v := range l.Y.Ticks(opts.Ticks) {
		l.YTicks = append(l.YTicks, Tick{Offset: l.Y.Map(v), Label: formatTick(v, precision)})
	}

	n := series.Len()
	if n == 0 {
		return l, nil
	}
	width := int(math.Ceil(float64(innerWidth) / float64(n)))
	l.Bars = make([]Bar, n)
	for i, p := range series.Points {
		y := l.Y.Map(p.Value)
		l.Bars[i] = Bar{
			Index:  i,
			Point:  p,
			X:      l.X.Map(p.Date),
			Y:      y,
			Width:  width,
			Height: innerHeight - y,
			Fill:   fill.ID(),
		}
		if opts.Animated {
			l.Bars[i].Delay = time.Duration(i) * opts.Stagger
		}
	}
	return l, nil
}

func defaultTitle(series dataset.Series) string {
	if series.Len() == 0 {
		return "Gross Domestic Product, USA"
	}
	lo, hi := series.Extent()
	return fmt.Sprintf("Gross Domestic Product, USA (%d - %d)", lo.Year(), hi.Year())
}

// Fill returns the gradient currently applied to the bars.
func (l *Layout) Fill() Gradient {
	if len(l.Bars) > 0 {
		if g, ok := paletteByID(l.Bars[0].Fill); ok {
			return g
		}
	}
	g, _ := PaletteByName(l.Options.Palette)
	return g
}
