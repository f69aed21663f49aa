package compose

import (
	"image/color"
	"math"
	"testing"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientFactors(t *testing.T) {
	g := GradientFactors(100)
	require.Len(t, g, 100)

	tests := []struct {
		name string
		y    int
		want float64
	}{
		{"top row", 0, 1.0},
		{"fade start", 60, 1.0},
		{"first faded row", 61, 0.975},
		{"three quarters", 80, 0.5},
		{"floor", 95, gradientFloor},
		{"bottom row", 99, gradientFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, g[tt.y], 1e-9)
		})
	}

	for y, f := range g {
		assert.GreaterOrEqual(t, f, gradientFloor, "row %d", y)
		assert.LessOrEqual(t, f, 1.0, "row %d", y)
		if y > 0 {
			assert.LessOrEqual(t, f, g[y-1], "row %d must not exceed the row above", y)
		}
	}
}

func TestRecolorSkipIsIdentity(t *testing.T) {
	src := newFilled(16, 12, color.NRGBA{R: 40, G: 80, B: 120, A: 200})
	src.SetNRGBA(3, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

	tests := []struct {
		name     string
		mappings []entity.ColorMapping
	}{
		{"no mappings", nil},
		{"only skipped", []entity.ColorMapping{
			{Key: "color_map_0", Skip: true},
			{Key: "color_map_1", Skip: true, Target: entity.RGB{R: 255}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Recolor(src, tt.mappings)
			assert.Equal(t, src.Pix, out.Pix)
		})
	}
}

func TestRecolorRowWeights(t *testing.T) {
	const h = 100
	src := newFilled(4, h, color.NRGBA{R: 10, G: 20, B: 30, A: 77})
	mappings := []entity.ColorMapping{{Target: entity.RGB{R: 110, G: 20, B: 30}}}

	out := Recolor(src, mappings)

	top := out.NRGBAAt(0, 0)
	assert.Equal(t, color.NRGBA{R: 110, G: 20, B: 30, A: 77}, top)

	bottom := out.NRGBAAt(0, h-1)
	assert.Equal(t, uint8(25), bottom.R, "bottom row moves by the floor factor only")
	assert.Equal(t, uint8(77), bottom.A)

	mid := out.NRGBAAt(2, 80)
	assert.Equal(t, uint8(60), mid.R)
}

func TestRecolorIsCumulative(t *testing.T) {
	const h = 100
	src := newFilled(3, h, color.NRGBA{R: 200, G: 100, B: 0, A: 255})
	mappings := []entity.ColorMapping{
		{Target: entity.RGB{R: 0, G: 0, B: 0}},
		{Skip: true, Target: entity.RGB{R: 255, G: 255, B: 255}},
		{Target: entity.RGB{R: 100, G: 200, B: 50}},
	}

	out := Recolor(src, mappings)
	g := GradientFactors(h)

	for _, y := range []int{0, 65, 70, 90, 99} {
		f := g[y]
		r := 200.0
		r += (0 - r) * f
		r += (100 - r) * f
		gg := 100.0
		gg += (0 - gg) * f
		gg += (200 - gg) * f
		b := 0.0
		b += (0 - b) * f
		b += (50 - b) * f

		got := out.NRGBAAt(1, y)
		assert.Equal(t, uint8(math.Round(r)), got.R, "row %d", y)
		assert.Equal(t, uint8(math.Round(gg)), got.G, "row %d", y)
		assert.Equal(t, uint8(math.Round(b)), got.B, "row %d", y)
	}
}

func TestRecolorIgnoresSourceColor(t *testing.T) {
	src := newFilled(2, 10, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	mappings := []entity.ColorMapping{{
		Source: entity.RGB{R: 255, G: 255, B: 255},
		Target: entity.RGB{R: 0x11, G: 0x22, B: 0x33},
	}}

	out := Recolor(src, mappings)

	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}, out.NRGBAAt(0, 0))
}

func TestRecolorDoesNotMutateInput(t *testing.T) {
	src := newFilled(5, 5, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	before := append([]uint8(nil), src.Pix...)

	Recolor(src, []entity.ColorMapping{{Target: entity.RGB{R: 255}}})

	assert.Equal(t, before, src.Pix)
}
