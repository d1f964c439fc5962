package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/your-org/fitcheck/internal/models"
)

// ErrDecode is returned when an upload cannot be decoded as an image.
var ErrDecode = errors.New("decode image")

// monochromeVariance is the color variance below which an image is treated as a logo or flat graphic.
const monochromeVariance = 1000

// screenResolutions are common display sizes; uploads matching one within
// screenTolerance pixels are likely screenshots.
var screenResolutions = []struct{ w, h int }{
	{1920, 1080},
	{1366, 768},
	{1440, 900},
	{1280, 720},
	{1536, 864},
	{1600, 900},
}

const screenTolerance = 10

// Decode decodes image bytes in any registered format (jpeg, png, gif, webp, bmp, tiff).
func Decode(data []byte) (image.Image, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader decodes an image from r.
func DecodeReader(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// AnalyzeBytes decodes data and returns its properties.
func AnalyzeBytes(data []byte) (models.ImageProperties, error) {
	img, err := Decode(data)
	if err != nil {
		return models.ImageProperties{}, err
	}
	return Properties(img), nil
}

// Properties computes dimensions, color statistics and the coarse
// screenshot/icon/monochrome flags for a decoded image.
func Properties(img image.Image) models.ImageProperties {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	stats := colorStats(img)

	props := models.ImageProperties{
		Width:            w,
		Height:           h,
		ColorVariance:    stats.variance,
		AverageColor:     stats.mean,
		IsMonochrome:     stats.variance < monochromeVariance,
		IsScreenshotLike: IsScreenshotLike(w, h),
		IsIconLike:       IsIconLike(w, h),
	}
	if h > 0 {
		props.AspectRatio = float64(w) / float64(h)
	}
	return props
}

// IsScreenshotLike reports whether the dimensions match a common display
// resolution, or a large 16:9 frame.
func IsScreenshotLike(width, height int) bool {
	for _, res := range screenResolutions {
		if absInt(width-res.w) < screenTolerance && absInt(height-res.h) < screenTolerance {
			return true
		}
	}
	if width > 1200 && height > 600 {
		return math.Abs(float64(width)/float64(height)-16.0/9.0) < 0.1
	}
	return false
}

// IsIconLike reports whether the dimensions look like an icon or logo:
// tiny, or small and nearly square.
func IsIconLike(width, height int) bool {
	if width < 200 && height < 200 {
		return true
	}
	return absInt(width-height) < 10 && width < 500
}

type rgbStats struct {
	mean     models.RGB
	variance float64
}

// colorStats reads every pixel once, accumulating per-channel sums and sums of
// squares. Variance is the mean squared RGB distance from the average color.
func colorStats(img image.Image) rgbStats {
	b := img.Bounds()
	n := uint64(b.Dx()) * uint64(b.Dy())
	if n == 0 {
		return rgbStats{}
	}

	var sum, sq [3]uint64
	add := func(r, g, bl uint8) {
		sum[0] += uint64(r)
		sum[1] += uint64(g)
		sum[2] += uint64(bl)
		sq[0] += uint64(r) * uint64(r)
		sq[1] += uint64(g) * uint64(g)
		sq[2] += uint64(bl) * uint64(bl)
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
			for i := 0; i+2 < len(row); i += 4 {
				add(row[i], row[i+1], row[i+2])
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.YCbCrAt(x, y)
				r, g, bl := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				add(r, g, bl)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				add(c.R, c.G, c.B)
			}
		}
	}

	fn := float64(n)
	var mean [3]float64
	var variance float64
	for c := 0; c < 3; c++ {
		mean[c] = float64(sum[c]) / fn
		variance += float64(sq[c])/fn - mean[c]*mean[c]
	}
	if variance < 0 {
		variance = 0 // float rounding on perfectly flat images
	}

	return rgbStats{
		mean:     models.RGB{R: mean[0], G: mean[1], B: mean[2]},
		variance: variance,
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
