package compose

import (
	"image"

	"github.com/disintegration/imaging"
)

// LuminanceThreshold is the grey level above which a pixel counts as studio
// backdrop.
const LuminanceThreshold = 252

// maskKernel is the 3x3 Gaussian used to feather the eroded mask.
var maskKernel = [9]float64{
	1, 2, 1,
	2, 4, 2,
	1, 2, 1,
}

// RemoveBackground returns a copy of img whose alpha channel is a feathered
// luminance mask: near-white pixels become transparent. RGB is not touched.
// An all-white input yields a fully transparent image.
func RemoveBackground(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w == 0 || h == 0 {
		return dst
	}

	gray := imaging.Grayscale(dst)
	mask := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			if row[x*4] <= LuminanceThreshold {
				mask[y*w+x] = 255
			}
		}
	}
	mask = erode(mask, w, h)

	maskImg := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, v := range mask {
		p := maskImg.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = v, v, v, 255
	}
	soft := imaging.Convolve3x3(maskImg, maskKernel, &imaging.ConvolveOptions{Normalize: true})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x*4+3] = soft.Pix[y*soft.Stride+x*4]
		}
	}
	return dst
}

// erode applies one pass of a 3x3 minimum filter. Pixels outside the image
// are ignored, so the border does not erode on its own.
func erode(mask []uint8, w, h int) []uint8 {
	out := make([]uint8, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := uint8(255)
			for dy := -1; dy <= 1 && m > 0; dy++ {
				yy := y + dy
				if yy < 0 || yy >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					xx := x + dx
					if xx < 0 || xx >= w {
						continue
					}
					if v := mask[yy*w+xx]; v < m {
						m = v
					}
				}
			}
			out[y*w+x] = m
		}
	}
	return out
}
