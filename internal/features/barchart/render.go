package barchart

// Chart rendering entry point
// Loads the series once, computes the layout and mounts the chart under #chart
// Nothing is mounted when loading, validation or layout fails

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gdp-chart/internal/dataset"
	"gdp-chart/internal/infra/log"

	"go.uber.org/zap"
)

//go:embed assets/chart.css
var stylesheet string

//go:embed assets/chart.js
var script string

// Source provides the series to chart.
type Source interface {
	Load(ctx context.Context) (dataset.Series, error)
}

// Handle is a mounted chart. Close removes it from the page.
type Handle struct {
	Layout *Layout
	Hover  *HoverHandler
	Colors *ColorSwitch // nil unless Options.ColorSwitcher

	page *Page
	node *chartNode
}

// Render loads src and mounts the chart into page under MountID.
func Render(ctx context.Context, page *Page, src Source, opts Options) (*Handle, error) {
	if page == nil || !page.Has(MountID) {
		return nil, fmt.Errorf("%w: #%s", ErrNoMountPoint, MountID)
	}

	start := time.Now()
	series, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		if err := series.Validate(); err != nil {
			return nil, fmt.Errorf("invalid dataset: %w", err)
		}
	}
	return Mount(page, series, opts, start)
}

// Mount lays out an already loaded series and mounts it.
func Mount(page *Page, series dataset.Series, opts Options, start time.Time) (*Handle, error) {
	layout, err := NewLayout(series, opts)
	if err != nil {
		return nil, err
	}

	node := &chartNode{layout: layout, tooltip: &Tooltip{}}
	if err := page.Mount(MountID, node); err != nil {
		return nil, err
	}

	h := &Handle{
		Layout: layout,
		Hover:  newHoverHandler(node.tooltip, layout.Options),
		page:   page,
		node:   node,
	}
	if layout.Options.ColorSwitcher {
		h.Colors = &ColorSwitch{bars: layout.Bars}
	}

	log.LogInfo("Chart mounted",
		zap.Int("bars", len(layout.Bars)),
		zap.Int("x_ticks", len(layout.XTicks)),
		zap.Int("y_ticks", len(layout.YTicks)),
		zap.Bool("animated", layout.Options.Animated),
		zap.Bool("color_switcher", layout.Options.ColorSwitcher),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return h, nil
}

// Close unmounts the chart. Closing twice is a no-op.
func (h *Handle) Close() error {
	if h.page != nil {
		h.page.Unmount(MountID, h.node)
		h.page = nil
	}
	return nil
}

// SVG renders the standalone chart element.
func (h *Handle) SVG() []byte {
	var buf bytes.Buffer
	WriteSVG(&buf, h.Layout)
	return buf.Bytes()
}

type chartNode struct {
	layout  *Layout
	tooltip *Tooltip
}

func (n *chartNode) Render(w io.Writer) error {
	var buf bytes.Buffer
	WriteSVG(&buf, n.layout)

	// drop the XML prolog, the element is inlined into HTML
	out := buf.Bytes()
	if i := bytes.Index(out, []byte("<svg")); i > 0 {
		out = out[i:]
	}
	if _, err := w.Write(out); err != nil {
		return err
	}

	opts := n.layout.Options
	_, err := fmt.Fprintf(w,
		`<div class="tooltip" data-offset="%d" data-fade-in="%d" data-fade-out="%d" style="left:%dpx;top:%dpx;opacity:%g">%s</div>`,
		opts.TooltipOffset, opts.TooltipFadeIn.Milliseconds(), opts.TooltipFadeOut.Milliseconds(),
		n.tooltip.Left, n.tooltip.Top, n.tooltip.Opacity, n.tooltip.HTML)
	return err
}

func (n *chartNode) Stylesheet() string { return stylesheet }
func (n *chartNode) Script() string     { return script }

// PNG writes a raster snapshot of the chart's current state.
func (h *Handle) PNG(w io.Writer) error {
	return EncodePNG(h.Layout, w)
}
