// Package compose holds the image work of the promo pipeline: backdrop
// normalisation and recolouring, background removal, product placement with
// shadows, and title text.
package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// DefaultTargetHeight is the height every backdrop is normalised to.
const DefaultTargetHeight = 1080

// NormalizeBackground resizes img to the given height with bicubic
// interpolation, keeping the aspect ratio.
func NormalizeBackground(img image.Image, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Empty() || height <= 0 {
		return imaging.Clone(img)
	}
	ratio := float64(height) / float64(b.Dy())
	width := max(1, int(float64(b.Dx())*ratio))
	return imaging.Clone(resize.Resize(uint(width), uint(height), img, resize.Bicubic))
}

// Flatten drops the alpha channel, producing an opaque copy.
func Flatten(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
