package wallpaper

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// lightToneThreshold is the mean tone above which a wallpaper gets a
	// light scheme.
	lightToneThreshold = 60

	// neutralColourfulness is the colourfulness below which a wallpaper is
	// treated as greyscale and gets the neutral variant.
	neutralColourfulness = 10
)

// Analysis summarises the overall look of an image.
type Analysis struct {
	// MeanTone is the average perceptual lightness (L*) of opaque pixels.
	MeanTone float64
	// Colourfulness is the Hasler-Süsstrunk metric over 0-255 channels:
	// near 0 for greyscale, above 80 for extremely vivid images.
	Colourfulness float64
}

// Analyze computes the Analysis of img, ignoring transparent pixels. An
// image with no opaque pixels yields the zero Analysis.
func Analyze(img image.Image) Analysis {
	var n, toneSum float64
	var rgSum, ybSum, rgSq, ybSq float64

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			r8, g8, b8 := float64(r>>8), float64(g>>8), float64(bl>>8)

			l, _, _ := colorful.Color{R: r8 / 255, G: g8 / 255, B: b8 / 255}.Lab()
			toneSum += l * 100

			rg := r8 - g8
			yb := 0.5*(r8+g8) - b8
			rgSum += rg
			ybSum += yb
			rgSq += rg * rg
			ybSq += yb * yb
			n++
		}
	}
	if n == 0 {
		return Analysis{}
	}

	rgMean, ybMean := rgSum/n, ybSum/n
	rgVar := math.Max(rgSq/n-rgMean*rgMean, 0)
	ybVar := math.Max(ybSq/n-ybMean*ybMean, 0)

	return Analysis{
		MeanTone:      toneSum / n,
		Colourfulness: math.Sqrt(rgVar+ybVar) + 0.3*math.Sqrt(rgMean*rgMean+ybMean*ybMean),
	}
}

// Mode returns "light" for bright wallpapers and "dark" otherwise.
func (a Analysis) Mode() string {
	if a.MeanTone > lightToneThreshold {
		return "light"
	}
	return "dark"
}

// Variant returns "neutral" for greyscale wallpapers and current otherwise.
// An explicit monochrome choice is kept.
func (a Analysis) Variant(current string) string {
	if a.Colourfulness < neutralColourfulness && current != "monochrome" {
		return "neutral"
	}
	return current
}
