package compose

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextRendererFallback(t *testing.T) {
	r := NewTextRenderer([]string{filepath.Join(t.TempDir(), "missing.ttc")})
	assert.Equal(t, "basicfont", r.Source())
}

func TestLoadFontErrors(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "nope.ttf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrFontUnavailable))
}

func TestDrawTextEmptyContent(t *testing.T) {
	r := NewTextRenderer(nil)
	canvas := newFilled(120, 80, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	before := append([]uint8(nil), canvas.Pix...)

	out := r.DrawText(canvas, entity.TextRole{Name: "main_title", SizeRatio: 0.1, Position: entity.Ratio{X: 0.1, Y: 0.1}}, color.White)

	assert.Same(t, canvas, out)
	assert.Equal(t, before, out.Pix)
}

func TestDrawText(t *testing.T) {
	r := NewTextRenderer(nil)
	bg := color.NRGBA{A: 255}
	canvas := newFilled(200, 100, bg)
	role := entity.TextRole{
		Name:      "main_title",
		Content:   "SALE",
		SizeRatio: 0.1,
		Position:  entity.Ratio{X: 0.25, Y: 0.5},
	}

	bounds := r.TextBounds(canvas.Bounds(), role)
	require.False(t, bounds.Empty())
	assert.GreaterOrEqual(t, bounds.Min.X, 50)
	assert.GreaterOrEqual(t, bounds.Min.Y, 50)

	out := r.DrawText(canvas, role, color.White)

	changed := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := out.NRGBAAt(x, y)
			if c == bg {
				continue
			}
			changed++
			assert.True(t, image.Pt(x, y).In(bounds), "pixel %d,%d outside text bounds %v", x, y, bounds)
		}
	}
	assert.Greater(t, changed, 0)
}

func TestDrawTextColor(t *testing.T) {
	r := NewTextRenderer(nil)
	canvas := newFilled(100, 60, color.NRGBA{A: 255})
	red := color.NRGBA{R: 255, A: 255}

	r.DrawText(canvas, entity.TextRole{Content: "III", SizeRatio: 0.2, Position: entity.Ratio{}}, red)

	found := false
	for i := 0; i < len(canvas.Pix); i += 4 {
		if canvas.Pix[i] == 255 && canvas.Pix[i+1] == 0 && canvas.Pix[i+2] == 0 {
			found = true
			break
		}
	}
	assert.True(t, found, "expected fully red glyph pixels")
}
