package barchart

import (
	"fmt"
	"time"
)

// Transition is an opacity fade applied to the tooltip.
type Transition struct {
	Opacity  float64
	Duration time.Duration
}

// Tooltip is the presentational state of the floating tooltip div.
type Tooltip struct {
	HTML    string
	Left    int
	Top     int
	Opacity float64
	Fade    Transition
}

// HoverHandler shows and hides the tooltip for bars. It only touches the tooltip.
type HoverHandler struct {
	tooltip *Tooltip
	offset  int
	fadeIn  time.Duration
	fadeOut time.Duration
}

func newHoverHandler(tooltip *Tooltip, opts Options) *HoverHandler {
	return &HoverHandler{
		tooltip: tooltip,
		offset:  opts.TooltipOffset,
		fadeIn:  opts.TooltipFadeIn,
		fadeOut: opts.TooltipFadeOut,
	}
}

// Content is the tooltip markup for a bar.
func Content(b Bar) string {
	return fmt.Sprintf("<p>%s Billion</p><p>%s</p>", FormatValue(b.Point.Value), FormatMonthYear(b.Point.Date))
}

// Over fills the tooltip for b and moves it to the pointer (plot coordinates).
func (h *HoverHandler) Over(b Bar, pointerX, pointerY int) Transition {
	h.tooltip.HTML = Content(b)
	h.tooltip.Left = pointerX
	h.tooltip.Top = pointerY - h.offset
	h.tooltip.Fade = Transition{Opacity: 1, Duration: h.fadeIn}
	h.tooltip.Opacity = 1
	return h.tooltip.Fade
}

// Out fades the tooltip away. Content and position are kept.
func (h *HoverHandler) Out() Transition {
	h.tooltip.Fade = Transition{Opacity: 0, Duration: h.fadeOut}
	h.tooltip.Opacity = 0
	return h.tooltip.Fade
}

func (h *HoverHandler) Tooltip() Tooltip { return *h.tooltip }

// ColorSwitch restyles every bar with one of the Palettes gradients.
// It never changes bar geometry.
type ColorSwitch struct {
	bars []Bar
}

func (c *ColorSwitch) Swatches() []Gradient { return Palettes }

// Select is the click action of the swatch named name.
func (c *ColorSwitch) Select(name string) error {
	g, err := PaletteByName(name)
	if err != nil {
		return err
	}
	for i := range c.bars {
		c.bars[i].Fill = g.ID()
	}
	return nil
}
