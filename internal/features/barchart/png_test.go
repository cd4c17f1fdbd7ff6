package barchart

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePNG(t *testing.T) {
	l, err := NewLayout(quarterly(243.1, 246.3, 250.1, 260.3), DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(l, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	// top-left corner is background, the plot floor under the first bar is painted
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0xfafa, 0xfafa, 0xfafa}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(45, 350).RGBA()
	assert.NotEqual(t, [3]uint32{0xfafa, 0xfafa, 0xfafa}, [3]uint32{r, g, b})
}

func TestHandlePNGFollowsColorSwitch(t *testing.T) {
	opts := DefaultOptions()
	opts.ColorSwitcher = true
	h, err := Mount(NewPage("GDP", MountID), quarterly(100, 100), opts, time.Now())
	require.NoError(t, err)

	var green, blue bytes.Buffer
	require.NoError(t, h.PNG(&green))
	require.NoError(t, h.Colors.Select("blue"))
	require.NoError(t, h.PNG(&blue))
	assert.NotEqual(t, green.Bytes(), blue.Bytes())
}
