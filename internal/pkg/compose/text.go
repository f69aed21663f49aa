package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws title text with the first loadable font, or with
// basicfont when none could be loaded. It is safe for concurrent use: faces
// are created per call.
type TextRenderer struct {
	font   *opentype.Font
	source string
}

// NewTextRenderer tries fontPaths in order and keeps the first one that
// parses.
func NewTextRenderer(fontPaths []string) *TextRenderer {
	for _, path := range fontPaths {
		f, err := LoadFont(path)
		if err != nil {
			logrus.WithField("path", path).Debugf("font skipped: %v", err)
			continue
		}
		logrus.WithField("path", path).Info("Font loaded")
		return &TextRenderer{font: f, source: path}
	}
	logrus.Warnf("%v: falling back to built-in face", entity.ErrFontUnavailable)
	return &TextRenderer{source: "basicfont"}
}

// LoadFont reads a TrueType/OpenType font or the first font of a collection.
func LoadFont(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, entity.ErrFontUnavailable, err)
	}
	if bytes.HasPrefix(data, []byte("ttcf")) {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", path, entity.ErrFontUnavailable, err)
		}
		f, err := coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", path, entity.ErrFontUnavailable, err)
		}
		return f, nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, entity.ErrFontUnavailable, err)
	}
	return f, nil
}

// Source names the font in use.
func (r *TextRenderer) Source() string {
	return r.source
}

func (r *TextRenderer) face(size int) font.Face {
	if r.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		logrus.Warnf("%v: size %d: %v", entity.ErrFontUnavailable, size, err)
		return basicfont.Face7x13
	}
	return face
}

// DrawText draws role.Content onto canvas with its top-left corner at the
// role position. The font size is the size ratio times canvas height. A role
// with empty content leaves the canvas untouched.
func (r *TextRenderer) DrawText(canvas *image.NRGBA, role entity.TextRole, c color.Color) *image.NRGBA {
	if role.Content == "" {
		return canvas
	}
	w, h := canvas.Bounds().Dx(), canvas.Bounds().Dy()
	size := max(1, int(math.Round(role.SizeRatio*float64(h))))
	x := canvas.Bounds().Min.X + int(float64(w)*role.Position.X)
	y := canvas.Bounds().Min.Y + int(float64(h)*role.Position.Y)

	face := r.face(size)
	defer face.Close()

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(role.Content)
	return canvas
}

// TextBounds returns the pixel rectangle DrawText would touch for role.
func (r *TextRenderer) TextBounds(canvas image.Rectangle, role entity.TextRole) image.Rectangle {
	if role.Content == "" {
		return image.Rectangle{}
	}
	w, h := canvas.Dx(), canvas.Dy()
	size := max(1, int(math.Round(role.SizeRatio*float64(h))))
	x := canvas.Min.X + int(float64(w)*role.Position.X)
	y := canvas.Min.Y + int(float64(h)*role.Position.Y)

	face := r.face(size)
	defer face.Close()

	b, _ := font.BoundString(face, role.Content)
	dot := fixed.P(x, y+face.Metrics().Ascent.Ceil())
	return image.Rect(
		(dot.X + b.Min.X).Floor(), (dot.Y + b.Min.Y).Floor(),
		(dot.X + b.Max.X).Ceil(), (dot.Y + b.Max.Y).Ceil(),
	).Intersect(canvas)
}
