package compose

import (
	"image"
	"math"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"golang.org/x/sync/errgroup"
)

const (
	// gradientStart is the height fraction where the wash starts to fade.
	gradientStart = 0.6
	// gradientFloor is the weakest blend applied to the bottom rows.
	gradientFloor = 0.15
)

// GradientFactors returns the per-row blend weight: 1.0 down to 60% of the
// height, then a linear fade clamped at 0.15.
func GradientFactors(h int) []float64 {
	factors := make([]float64, h)
	start := float64(h) * gradientStart
	span := float64(h) * (1 - gradientStart)
	for y := range factors {
		factors[y] = 1.0
		if fy := float64(y); fy > start {
			factors[y] = math.Max(gradientFloor, 1.0-(fy-start)/span)
		}
	}
	return factors
}

// Recolor washes the backdrop toward each mapping target in turn. Every pixel
// is blended, weighted only by its row factor; later mappings act on the
// already shifted values. Alpha is preserved.
func Recolor(bg image.Image, mappings []entity.ColorMapping) *image.NRGBA {
	dst := imaging.Clone(bg)

	var targets [][3]float64
	for _, m := range mappings {
		if m.Skip {
			continue
		}
		targets = append(targets, [3]float64{float64(m.Target.R), float64(m.Target.G), float64(m.Target.B)})
	}
	h := dst.Bounds().Dy()
	if len(targets) == 0 || h == 0 {
		return dst
	}

	factors := GradientFactors(h)
	w := dst.Bounds().Dx()

	bands := runtime.GOMAXPROCS(0)
	rowsPerBand := (h + bands - 1) / bands
	var g errgroup.Group
	for start := 0; start < h; start += rowsPerBand {
		end := min(start+rowsPerBand, h)
		g.Go(func() error {
			for y := start; y < end; y++ {
				blendRow(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], targets, factors[y])
			}
			return nil
		})
	}
	_ = g.Wait()
	return dst
}

func blendRow(row []uint8, targets [][3]float64, f float64) {
	for i := 0; i+3 < len(row); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(row[i+c])
			for _, t := range targets {
				v += (t[c] - v) * f
			}
			row[i+c] = clampChannel(v)
		}
	}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
