package barchart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gdp-chart/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	series dataset.Series
	err    error
	calls  int
}

func (s *staticSource) Load(ctx context.Context) (dataset.Series, error) {
	s.calls++
	return s.series, s.err
}

func quarterSource() *staticSource {
	return &staticSource{series: quarterly(243.1, 246.3)}
}

func renderPage(t *testing.T, page *Page) string {
	t.Helper()
	out, err := page.Bytes()
	require.NoError(t, err)
	return string(out)
}

func TestRenderTwoQuarters(t *testing.T) {
	page := NewPage("GDP", MountID)
	src := quarterSource()

	h, err := Render(context.Background(), page, src, DefaultOptions())
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, 1, src.calls)
	require.Len(t, h.Layout.Bars, 2)
	assert.Len(t, page.Nodes(MountID), 1)
	assert.Nil(t, h.Colors)

	doc := renderPage(t, page)
	assert.Equal(t, 2, strings.Count(doc, `class="chart__bar"`))
	assert.Contains(t, doc, `<div id="chart"><svg`)
	assert.Contains(t, doc, "Gross Domestic Product, USA (1947 - 1947)")
	assert.Contains(t, doc, "GDP (USD Billion)")
	assert.Contains(t, doc, `id="gradient-green"`)
	assert.Contains(t, doc, "<style>")
	assert.Contains(t, doc, "<script>")
	assert.Contains(t, doc, `class="tooltip"`)
	assert.NotContains(t, doc, "<?xml")
	assert.NotContains(t, doc, "data-gradient=")
	assert.NotContains(t, doc, "animation-delay")
}

func TestHoverTooltip(t *testing.T) {
	page := NewPage("GDP", MountID)
	h, err := Render(context.Background(), page, quarterSource(), DefaultOptions())
	require.NoError(t, err)

	fade := h.Hover.Over(h.Layout.Bars[0], 120, 200)
	assert.Equal(t, Transition{Opacity: 1, Duration: 200 * time.Millisecond}, fade)

	tip := h.Hover.Tooltip()
	assert.Equal(t, "<p>243.1 Billion</p><p>January 1947</p>", tip.HTML)
	assert.Equal(t, 120, tip.Left)
	assert.Equal(t, 168, tip.Top)
	assert.Equal(t, 1.0, tip.Opacity)

	doc := renderPage(t, page)
	assert.Contains(t, doc, "left:120px;top:168px;opacity:1")
	assert.Contains(t, doc, "<p>243.1 Billion</p><p>January 1947</p></div>")

	fade = h.Hover.Out()
	assert.Equal(t, Transition{Opacity: 0, Duration: 100 * time.Millisecond}, fade)
	tip = h.Hover.Tooltip()
	assert.Equal(t, 0.0, tip.Opacity)
	assert.Equal(t, 168, tip.Top, "position kept while fading out")
}

func TestHoverLeavesBarsAlone(t *testing.T) {
	page := NewPage("GDP", MountID)
	h, err := Render(context.Background(), page, quarterSource(), DefaultOptions())
	require.NoError(t, err)

	before := append([]Bar(nil), h.Layout.Bars...)
	h.Hover.Over(h.Layout.Bars[1], 10, 10)
	h.Hover.Out()
	assert.Equal(t, before, h.Layout.Bars)
}

func TestColorSwitch(t *testing.T) {
	opts := DefaultOptions()
	opts.ColorSwitcher = true
	page := NewPage("GDP", MountID)

	h, err := Render(context.Background(), page, &staticSource{series: quarterly(1, 5, 3, 8)}, opts)
	require.NoError(t, err)
	require.NotNil(t, h.Colors)
	assert.Len(t, h.Colors.Swatches(), len(Palettes))

	doc := renderPage(t, page)
	assert.Equal(t, 3, strings.Count(doc, "data-gradient="))
	assert.Contains(t, doc, `class="chart__swatch chart__swatch--active" fill="url(#gradient-green)"`)
	for _, g := range Palettes {
		assert.Contains(t, doc, `id="`+g.ID()+`"`)
	}

	before := append([]Bar(nil), h.Layout.Bars...)
	require.NoError(t, h.Colors.Select("blue"))
	for i, b := range h.Layout.Bars {
		assert.Equal(t, "gradient-blue", b.Fill)
		b.Fill = before[i].Fill
		assert.Equal(t, before[i], b, "geometry unchanged")
	}
	assert.Equal(t, "blue", h.Layout.Fill().Name)

	doc = renderPage(t, page)
	assert.Equal(t, 4, strings.Count(doc, `fill="url(#gradient-blue)" data-index`))
	assert.Contains(t, doc, `class="chart__swatch chart__swatch--active" fill="url(#gradient-blue)"`)

	err = h.Colors.Select("purple")
	assert.ErrorIs(t, err, ErrUnknownPalette)
	assert.Equal(t, "gradient-blue", h.Layout.Bars[0].Fill)
}

func TestRenderAnimated(t *testing.T) {
	opts := DefaultOptions()
	opts.Animated = true
	page := NewPage("GDP", MountID)

	h, err := Render(context.Background(), page, quarterSource(), opts)
	require.NoError(t, err)

	svg := string(h.SVG())
	assert.Contains(t, svg, `class="chart chart--animated"`)
	assert.Contains(t, svg, "--chart-duration:800ms")
	assert.Contains(t, svg, `style="animation-delay:0ms"`)
	assert.Contains(t, svg, `style="animation-delay:4ms"`)
}

func TestRenderLoadFailureMountsNothing(t *testing.T) {
	page := NewPage("GDP", MountID)
	cause := &dataset.FetchError{Source: "test", Op: "get", Err: errors.New("connection refused")}

	h, err := Render(context.Background(), page, &staticSource{err: cause}, DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, dataset.ErrFetch)
	assert.Empty(t, page.Nodes(MountID))

	doc := renderPage(t, page)
	assert.NotContains(t, doc, "<svg")
	assert.Contains(t, doc, `<div id="chart"></div>`)
}

func TestRenderWithoutMountPoint(t *testing.T) {
	src := quarterSource()
	_, err := Render(context.Background(), NewPage("GDP", "other"), src, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoMountPoint)
	assert.Zero(t, src.calls, "nothing is fetched without a mount point")

	_, err = Render(context.Background(), nil, src, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoMountPoint)
}

func TestRenderValidation(t *testing.T) {
	unordered := dataset.Series{Points: []dataset.DataPoint{
		{Date: date(1947, 4, 1), Value: 246.3},
		{Date: date(1947, 1, 1), Value: 243.1},
	}}

	page := NewPage("GDP", MountID)
	h, err := Render(context.Background(), page, &staticSource{series: unordered}, DefaultOptions())
	require.NoError(t, err, "unvalidated data renders as given")
	require.NoError(t, h.Close())

	opts := DefaultOptions()
	opts.Validate = true
	_, err = Render(context.Background(), page, &staticSource{series: unordered}, opts)
	assert.ErrorIs(t, err, dataset.ErrUnordered)
	assert.Empty(t, page.Nodes(MountID))
}

func TestHandleClose(t *testing.T) {
	page := NewPage("GDP", MountID)
	h, err := Render(context.Background(), page, quarterSource(), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, page.Nodes(MountID), 1)

	require.NoError(t, h.Close())
	assert.Empty(t, page.Nodes(MountID))
	require.NoError(t, h.Close())

	assert.NotContains(t, renderPage(t, page), "<svg")
}

func TestPageAssetsAreDeduplicated(t *testing.T) {
	page := NewPage("GDP", MountID, MountID, "footer")
	_, err := Mount(page, quarterly(1, 2), DefaultOptions(), time.Now())
	require.NoError(t, err)
	_, err = Mount(page, quarterly(3, 4), DefaultOptions(), time.Now())
	require.NoError(t, err)

	doc := renderPage(t, page)
	assert.Equal(t, 1, strings.Count(doc, "<style>"))
	assert.Equal(t, 1, strings.Count(doc, "<script>"))
	assert.Equal(t, 1, strings.Count(doc, `<div id="chart">`))
	assert.Contains(t, doc, `<div id="footer"></div>`)
	assert.Contains(t, doc, "<title>GDP</title>")
}
