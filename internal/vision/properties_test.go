package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// stripedImage alternates black and white columns: mean 127.5 per channel,
// variance 3 * 127.5^2.
func stripedImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if x%2 == 1 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProperties_SolidImageIsMonochrome(t *testing.T) {
	p := Properties(solidImage(300, 400, color.NRGBA{R: 200, G: 10, B: 10, A: 255}))

	assert.Equal(t, 300, p.Width)
	assert.Equal(t, 400, p.Height)
	assert.InDelta(t, 0.75, p.AspectRatio, 1e-9)
	assert.InDelta(t, 0, p.ColorVariance, 1e-9)
	assert.InDelta(t, 200, p.AverageColor.R, 1e-9)
	assert.True(t, p.IsMonochrome)
	assert.False(t, p.IsScreenshotLike)
	assert.False(t, p.IsIconLike)
}

func TestProperties_StripedVariance(t *testing.T) {
	p := Properties(stripedImage(300, 400))

	assert.InDelta(t, 127.5, p.AverageColor.G, 1e-9)
	assert.InDelta(t, 3*127.5*127.5, p.ColorVariance, 1e-6)
	assert.False(t, p.IsMonochrome)
}

func TestProperties_GenericPathMatchesFastPath(t *testing.T) {
	src := stripedImage(64, 32)
	rgba := image.NewRGBA(src.Bounds())
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			rgba.Set(x, y, src.At(x, y))
		}
	}

	assert.InDelta(t, Properties(src).ColorVariance, Properties(rgba).ColorVariance, 1e-6)
}

func TestAnalyzeBytes_DecodesPNG(t *testing.T) {
	p, err := AnalyzeBytes(encodePNG(t, stripedImage(250, 500)))
	require.NoError(t, err)

	assert.Equal(t, 250, p.Width)
	assert.Equal(t, 500, p.Height)
}

func TestAnalyzeBytes_DecodeFailure(t *testing.T) {
	_, err := AnalyzeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestIsScreenshotLike(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want bool
	}{
		{"full hd", 1920, 1080, true},
		{"near 1366x768", 1370, 772, true},
		{"near 1440x900", 1445, 905, true},
		{"tolerance is exclusive", 1450, 900, false},
		{"wide 16:9", 2560, 1440, true},
		{"phone portrait", 1080, 1920, false},
		{"small 16:9", 1024, 576, false},
		{"wide but not 16:9", 2000, 800, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsScreenshotLike(tt.w, tt.h))
		})
	}
}

func TestIsIconLike(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want bool
	}{
		{"tiny", 64, 64, true},
		{"small rectangle", 199, 150, true},
		{"near square under 500", 480, 489, true},
		{"square at 500", 500, 500, false},
		{"portrait photo", 1080, 1920, false},
		{"one side small", 150, 900, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIconLike(tt.w, tt.h))
		})
	}
}
