package compose

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveBackgroundAllWhite(t *testing.T) {
	src := newFilled(32, 24, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	out := RemoveBackground(src)

	require.Equal(t, src.Bounds(), out.Bounds())
	for i := 0; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(255), out.Pix[i])
		assert.Equal(t, uint8(255), out.Pix[i+1])
		assert.Equal(t, uint8(255), out.Pix[i+2])
		require.Equal(t, uint8(0), out.Pix[i+3], "pixel %d should be transparent", i/4)
	}
}

func TestRemoveBackgroundKeepsProduct(t *testing.T) {
	src := newFilled(40, 40, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	product := color.NRGBA{R: 30, G: 60, B: 90, A: 255}
	fillRect(src, image.Rect(10, 10, 30, 30), product)

	out := RemoveBackground(src)

	tests := []struct {
		name  string
		x, y  int
		check func(t *testing.T, a uint8)
	}{
		{"product centre is opaque", 20, 20, func(t *testing.T, a uint8) { assert.Equal(t, uint8(255), a) }},
		{"backdrop corner is transparent", 0, 0, func(t *testing.T, a uint8) { assert.Equal(t, uint8(0), a) }},
		{"eroded rim is transparent", 10, 20, func(t *testing.T, a uint8) { assert.Less(t, a, uint8(128)) }},
		{"inner edge is feathered", 11, 11, func(t *testing.T, a uint8) {
			assert.Greater(t, a, uint8(0))
			assert.Less(t, a, uint8(255))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, out.NRGBAAt(tt.x, tt.y).A)
		})
	}

	c := out.NRGBAAt(20, 20)
	assert.Equal(t, product.R, c.R)
	assert.Equal(t, product.G, c.G)
	assert.Equal(t, product.B, c.B)
}

func TestRemoveBackgroundDropsSpecks(t *testing.T) {
	src := newFilled(11, 11, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.SetNRGBA(5, 5, color.NRGBA{A: 255})

	out := RemoveBackground(src)

	for i := 3; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(0), out.Pix[i])
	}
}

func TestRemoveBackgroundThreshold(t *testing.T) {
	tests := []struct {
		name   string
		level  uint8
		opaque bool
	}{
		{"at threshold stays", LuminanceThreshold, true},
		{"just above threshold goes", LuminanceThreshold + 1, false},
		{"mid grey stays", 128, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFilled(9, 9, color.NRGBA{R: tt.level, G: tt.level, B: tt.level, A: 255})
			a := RemoveBackground(src).NRGBAAt(4, 4).A
			if tt.opaque {
				assert.Equal(t, uint8(255), a)
			} else {
				assert.Equal(t, uint8(0), a)
			}
		})
	}
}

func TestErode(t *testing.T) {
	mask := []uint8{
		255, 255, 255, 255,
		255, 255, 255, 255,
		255, 255, 0, 255,
		255, 255, 255, 255,
	}

	got := erode(mask, 4, 4)

	want := []uint8{
		255, 255, 255, 255,
		255, 0, 0, 0,
		255, 0, 0, 0,
		255, 0, 0, 0,
	}
	assert.Equal(t, want, got)
}

func TestRemoveBackgroundEmpty(t *testing.T) {
	out := RemoveBackground(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.True(t, out.Bounds().Empty())
}
