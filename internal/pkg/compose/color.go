package compose

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// AutoColor asks for black or white text, whichever reads better against the
// dominant colour of the backdrop.
const AutoColor = "auto"

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

// ParseColor accepts CSS/SVG colour names and #rgb / #rrggbb hex strings.
// The leading # may be omitted for hex values.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty value: %w", entity.ErrMalformedColor)
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: 255}, nil
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%q: %w", s, entity.ErrMalformedColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// ResolveTextColor turns a text_color value into a concrete colour. Unknown
// values fall back to white.
func ResolveTextColor(spec string, backdrop image.Image) color.NRGBA {
	if strings.EqualFold(strings.TrimSpace(spec), AutoColor) {
		return contrastColor(backdrop)
	}
	c, err := ParseColor(spec)
	if err != nil {
		return white
	}
	return c
}

func contrastColor(backdrop image.Image) color.NRGBA {
	if backdrop == nil || backdrop.Bounds().Empty() {
		return white
	}
	dominant, ok := colorful.MakeColor(dominantcolor.Find(backdrop))
	if !ok {
		return white
	}
	l, _, _ := dominant.Lab()
	if l > 0.6 {
		return black
	}
	return white
}
