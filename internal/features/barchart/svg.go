package barchart

import (
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	swatchSize = 12
	swatchGap  = 6
)

// WriteSVG writes the chart element for the layout's current state.
func WriteSVG(w io.Writer, l *Layout) {
	opts := l.Options
	canvas := svg.New(w)

	class := "chart"
	if opts.Animated {
		class += " chart--animated"
	}
	canvas.Start(opts.Width, opts.Height,
		fmt.Sprintf(`class="%s"`, class),
		fmt.Sprintf(`viewBox="0 0 %d %d"`, opts.Width, opts.Height),
		fmt.Sprintf(`style="--chart-duration:%dms"`, opts.AnimationDuration.Milliseconds()),
		`role="img"`)
	canvas.Title(l.Title)

	writeGradients(canvas, l)

	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", opts.Margins.Left, opts.Margins.Top))
	writeXAxis(canvas, l)
	writeYAxis(canvas, l)
	writeBars(canvas, l)
	canvas.Gend()

	if opts.ColorSwitcher {
		writeSwatches(canvas, l)
	}
	canvas.End()
}

func writeGradients(canvas *svg.SVG, l *Layout) {
	gradients := []Gradient{l.Fill()}
	if l.Options.ColorSwitcher {
		gradients = Palettes
	}

	canvas.Def()
	for _, g := range gradients {
		canvas.LinearGradient(g.ID(), 0, 0, 0, 100, []svg.Offcolor{
			{Offset: g.Stops[0].Offset, Color: g.Stops[0].Hex(), Opacity: 1},
			{Offset: g.Stops[1].Offset, Color: g.Stops[1].Hex(), Opacity: 1},
		})
	}
	canvas.DefEnd()
}

func writeXAxis(canvas *svg.SVG, l *Layout) {
	canvas.Group(`class="chart__axis chart__axis--x"`, fmt.Sprintf(`transform="translate(0,%d)"`, l.InnerHeight))
	canvas.Path(fmt.Sprintf("M0.5,6V0.5H%d.5V6", l.InnerWidth), `class="domain"`)
	for _, t := range l.XTicks {
		canvas.Group(`class="tick"`, fmt.Sprintf(`transform="translate(%d,0)"`, t.Offset))
		canvas.Line(0, 0, 0, 6)
		canvas.Text(0, 9, t.Label, `dy="0.71em"`, `text-anchor="middle"`)
		canvas.Gend()
	}
	canvas.Text(l.InnerWidth/2, l.Options.Margins.Bottom*2/3, l.Title,
		`class="chart__label"`, `dy="0.875em"`, `text-anchor="middle"`)
	canvas.Gend()
}

func writeYAxis(canvas *svg.SVG, l *Layout) {
	canvas.Group(`class="chart__axis chart__axis--y"`)
	canvas.Path(fmt.Sprintf("M-6,%d.5H0.5V0.5H-6", l.InnerHeight), `class="domain"`)
	for _, t := range l.YTicks {
		canvas.Group(`class="tick"`, fmt.Sprintf(`transform="translate(0,%d)"`, t.Offset))
		canvas.Line(-6, 0, 0, 0)
		canvas.Text(-9, 0, t.Label, `dy="0.32em"`, `text-anchor="end"`)
		canvas.Gend()
	}
	canvas.Text(0, 10, l.Options.YLabel,
		`class="chart__label"`, `transform="rotate(-90)"`, `dy="0.875em"`, `text-anchor="end"`)
	canvas.Gend()
}

func writeBars(canvas *svg.SVG, l *Layout) {
	canvas.Group(`class="chart__bars"`)
	for _, b := range l.Bars {
		attrs := []string{
			`class="chart__bar"`,
			fmt.Sprintf(`fill="url(#%s)"`, b.Fill),
			fmt.Sprintf(`data-index="%d"`, b.Index),
			fmt.Sprintf(`data-tooltip="%s"`, html.EscapeString(Content(b))),
		}
		if l.Options.Animated {
			attrs = append(attrs, fmt.Sprintf("animation-delay:%dms", b.Delay.Milliseconds()))
		}
		canvas.Rect(b.X, b.Y, b.Width, b.Height, attrs...)
	}
	canvas.Gend()
}

func writeSwatches(canvas *svg.SVG, l *Layout) {
	opts := l.Options
	active := l.Fill().ID()
	x := opts.Width - opts.Margins.Right - len(Palettes)*(swatchSize+swatchGap) + swatchGap
	y := (opts.Margins.Top - swatchSize) / 2

	canvas.Group(`class="chart__swatches"`, fmt.Sprintf(`transform="translate(%d,%d)"`, x, y))
	for i, g := range Palettes {
		class := "chart__swatch"
		if g.ID() == active {
			class += " chart__swatch--active"
		}
		canvas.Rect(i*(swatchSize+swatchGap), 0, swatchSize, swatchSize,
			fmt.Sprintf(`class="%s"`, class),
			fmt.Sprintf(`fill="url(#%s)"`, g.ID()),
			fmt.Sprintf(`data-gradient="%s"`, g.ID()),
			`role="button"`,
			fmt.Sprintf(`aria-label="%s"`, g.Name))
	}
	canvas.Gend()
}
