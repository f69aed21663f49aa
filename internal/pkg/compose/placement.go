package compose

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
)

// MaxProductWidthRatio caps the product width as a share of the canvas width.
// The cap wins over the height target.
const MaxProductWidthRatio = 0.55

// ProductSize returns the scaled product dimensions for a canvas.
func ProductSize(productW, productH, canvasW, canvasH int, scale float64) (int, int) {
	if productW <= 0 || productH <= 0 {
		return 0, 0
	}
	h := max(1, int(math.Round(float64(canvasH)*scale)))
	w := max(1, int(math.Round(float64(productW)*float64(h)/float64(productH))))

	maxW := max(1, int(float64(canvasW)*MaxProductWidthRatio))
	if w > maxW {
		h = max(1, int(float64(h)*float64(maxW)/float64(w)))
		w = maxW
	}
	return w, h
}

// ScaleProduct resizes the cutout with Lanczos resampling to the size given by
// ProductSize.
func ScaleProduct(product image.Image, canvasW, canvasH int, scale float64) *image.NRGBA {
	b := product.Bounds()
	w, h := ProductSize(b.Dx(), b.Dy(), canvasW, canvasH, scale)
	if w == 0 {
		return imaging.Clone(product)
	}
	return imaging.Resize(product, w, h, imaging.Lanczos)
}

// PlaceProduct returns the top-left corner for a product of pw x ph so that
// its horizontal centre sits on center.X and its bottom edge on center.Y.
func PlaceProduct(canvasW, canvasH, pw, ph int, center entity.Ratio) image.Point {
	return image.Pt(
		int(float64(canvasW)*center.X)-pw/2,
		int(float64(canvasH)*center.Y)-ph,
	)
}

// CompositeProduct scales and places the product on a copy of canvas, under a
// drop shadow and a contact shadow. Layers go down in a fixed order: drop
// shadow, contact shadow, product.
func CompositeProduct(canvas *image.NRGBA, product image.Image, p entity.Placement) *image.NRGBA {
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	if product == nil || product.Bounds().Empty() {
		return imaging.Clone(canvas)
	}

	scaled := ScaleProduct(product, cw, ch, p.Scale)
	pw, ph := scaled.Bounds().Dx(), scaled.Bounds().Dy()
	pos := PlaceProduct(cw, ch, pw, ph, p.Center)

	out := imaging.Overlay(canvas, DropShadow(pw), image.Pt(pos.X-int(float64(pw)*0.2), pos.Y+ph-25), 1.0)
	out = imaging.Overlay(out, ContactShadow(pw), image.Pt(pos.X, pos.Y+ph-12), 1.0)
	return imaging.Overlay(out, scaled, pos, 1.0)
}
