package barchart

import (
	"errors"
	"fmt"
	"image/color"
	"time"
)

var (
	ErrNoMountPoint   = errors.New("mount point not found")
	ErrUnknownPalette = errors.New("unknown palette")
)

// MountID is the anchor the chart is mounted under.
const MountID = "chart"

type Margins struct {
	Top, Right, Bottom, Left int
}

// Options configures a render. Animated and ColorSwitcher toggle the entrance
// animation and the gradient swatch controls.
type Options struct {
	Width   int
	Height  int
	Margins Margins
	Ticks   int

	Animated      bool
	ColorSwitcher bool
	Palette       string

	Title  string // x axis label, derived from the date extent when empty
	YLabel string

	AnimationDuration time.Duration
	Stagger           time.Duration

	TooltipOffset  int
	TooltipFadeIn  time.Duration
	TooltipFadeOut time.Duration

	Validate bool
}

func DefaultOptions() Options {
	return Options{
		Width:             800,
		Height:            400,
		Margins:           Margins{Top: 20, Right: 20, Bottom: 40, Left: 40},
		Ticks:             10,
		Palette:           "green",
		YLabel:            "GDP (USD Billion)",
		AnimationDuration: 800 * time.Millisecond,
		Stagger:           4 * time.Millisecond,
		TooltipOffset:     32,
		TooltipFadeIn:     200 * time.Millisecond,
		TooltipFadeOut:    100 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Margins == (Margins{}) {
		o.Margins = def.Margins
	}
	if o.Ticks <= 0 {
		o.Ticks = def.Ticks
	}
	if o.Palette == "" {
		o.Palette = def.Palette
	}
	if o.YLabel == "" {
		o.YLabel = def.YLabel
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = def.AnimationDuration
	}
	if o.Stagger < 0 {
		o.Stagger = 0
	}
	if o.TooltipOffset == 0 {
		o.TooltipOffset = def.TooltipOffset
	}
	if o.TooltipFadeIn <= 0 {
		o.TooltipFadeIn = def.TooltipFadeIn
	}
	if o.TooltipFadeOut <= 0 {
		o.TooltipFadeOut = def.TooltipFadeOut
	}
	return o
}

// Stop is one gradient color stop; Offset is a percentage of the bar height.
type Stop struct {
	Offset uint8
	Color  color.RGBA
}

func (s Stop) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// Gradient is a vertical two-stop paint referenced by bars as url(#ID).
type Gradient struct {
	Name  string
	Stops [2]Stop
}

func (g Gradient) ID() string { return "gradient-" + g.Name }

// Palettes are the swatches offered by the color switcher, in display order.
var Palettes = []Gradient{
	{Name: "green", Stops: [2]Stop{{15, color.RGBA{0x2e, 0x7d, 0x32, 0xff}}, {90, color.RGBA{0x4c, 0xaf, 0x50, 0xff}}}},
	{Name: "blue", Stops: [2]Stop{{15, color.RGBA{0x15, 0x65, 0xc0, 0xff}}, {90, color.RGBA{0x42, 0xa5, 0xf5, 0xff}}}},
	{Name: "red", Stops: [2]Stop{{15, color.RGBA{0xc6, 0x28, 0x28, 0xff}}, {90, color.RGBA{0xef, 0x53, 0x50, 0xff}}}},
}

// PaletteByName looks a gradient up by name.
func PaletteByName(name string) (Gradient, error) {
	for _, g := range Palettes {
		if g.Name == name {
			return g, nil
		}
	}
	return Gradient{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// paletteByID resolves a fill reference back to its gradient.
func paletteByID(id string) (Gradient, bool) {
	for _, g := range Palettes {
		if g.ID() == id {
			return g, true
		}
	}
	return Gradient{}, false
}
