package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// shadowSpec describes one elliptical shadow layer. Ellipse bounds are given
// inside a layer of layerWidth x height pixels.
type shadowSpec struct {
	layerWidth float64
	height     int
	x0, y0     float64
	x1, y1     float64
	alpha      int
	blur       float64
}

// DropShadow is the wide, faint floor shadow: 1.4x the product width, 40px
// tall, heavily blurred.
func DropShadow(productWidth int) *image.NRGBA {
	lw := float64(productWidth) * 1.4
	return renderShadow(shadowSpec{
		layerWidth: lw,
		height:     40,
		x0:         10,
		y0:         10,
		x1:         lw - 10,
		y1:         30,
		alpha:      50,
		blur:       10,
	})
}

// ContactShadow is the tight ambient-occlusion shadow right under the
// product's base.
func ContactShadow(productWidth int) *image.NRGBA {
	pw := float64(productWidth)
	return renderShadow(shadowSpec{
		layerWidth: pw,
		height:     20,
		x0:         pw * 0.05,
		y0:         5,
		x1:         pw * 0.95,
		y1:         15,
		alpha:      150,
		blur:       3,
	})
}

func renderShadow(s shadowSpec) *image.NRGBA {
	w := int(s.layerWidth)
	if w < 1 {
		w = 1
	}
	dc := gg.NewContext(w, s.height)
	rx := (s.x1 - s.x0) / 2
	ry := (s.y1 - s.y0) / 2
	if rx > 0 && ry > 0 {
		dc.DrawEllipse(s.x0+rx, s.y0+ry, rx, ry)
		dc.SetRGBA255(0, 0, 0, s.alpha)
		dc.Fill()
	}
	return imaging.Blur(dc.Image(), s.blur)
}
