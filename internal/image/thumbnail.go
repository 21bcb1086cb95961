package image

import (
	"image"

	"golang.org/x/image/draw"
)

// ThumbnailSize bounds the longest edge of images handed to extraction.
// Seeds are computed from the thumbnail, so changing it changes results.
const ThumbnailSize = 256

// Thumbnail scales img so its longest edge is at most size pixels,
// keeping the aspect ratio. Smaller images are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}

	tw, th := size, size
	if w >= h {
		th = max(1, h*size/w)
	} else {
		tw = max(1, w*size/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
