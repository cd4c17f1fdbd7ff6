package barchart

import (
	"fmt"
	"io"
	"math"
	"os"

	"gdp-chart/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const snapshotFontSize = 10.0

// fontPaths are tried in order; gg's built-in face is used when none loads.
var fontPaths = []string{
	"etc/fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

func loadFont(dc *gg.Context, size float64) bool {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := dc.LoadFontFace(path, size); err != nil {
			log.LogWarn("Font file exists but failed to load", zap.String("path", path), zap.Error(err))
			continue
		}
		return true
	}
	return false
}

// EncodePNG rasterizes the layout's current state: bars with the selected
// gradient, axes, tick labels and axis titles. Animation and tooltip are not drawn.
func EncodePNG(l *Layout, w io.Writer) error {
	opts := l.Options
	dc := gg.NewContext(opts.Width, opts.Height)

	dc.SetHexColor("#fafafa")
	dc.Clear()
	if !loadFont(dc, snapshotFontSize) {
		log.LogDebug("No TrueType font found, using built-in face")
	}

	ox, oy := float64(opts.Margins.Left), float64(opts.Margins.Top)
	iw, ih := float64(l.InnerWidth), float64(l.InnerHeight)

	fill := l.Fill()
	for _, b := range l.Bars {
		if b.Height <= 0 {
			continue
		}
		x, y, h := ox+float64(b.X), oy+float64(b.Y), float64(b.Height)
		grad := gg.NewLinearGradient(0, y, 0, y+h)
		for _, s := range fill.Stops {
			grad.AddColorStop(float64(s.Offset)/100, s.Color)
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(x, y, float64(b.Width), h)
		dc.Fill()
	}

	dc.SetHexColor("#424242")
	dc.SetLineWidth(1)
	dc.DrawLine(ox, oy+ih+0.5, ox+iw, oy+ih+0.5)
	dc.DrawLine(ox+0.5, oy, ox+0.5, oy+ih)
	dc.Stroke()

	for _, t := range l.XTicks {
		x := ox + float64(t.Offset) + 0.5
		dc.DrawLine(x, oy+ih, x, oy+ih+6)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, x, oy+ih+9, 0.5, 1)
	}
	for _, t := range l.YTicks {
		y := oy + float64(t.Offset) + 0.5
		dc.DrawLine(ox-6, y, ox, y)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, ox-9, y, 1, 0.35)
	}

	dc.DrawStringAnchored(l.Title, ox+iw/2, oy+ih+float64(opts.Margins.Bottom)*2/3, 0.5, 1)

	dc.Push()
	dc.Translate(ox+12, oy)
	dc.Rotate(-math.Pi / 2)
	dc.DrawStringAnchored(opts.YLabel, 0, 0, 1, 0.5)
	dc.Pop()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode chart png: %w", err)
	}
	return nil
}
