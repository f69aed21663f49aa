package compose

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"hex with hash", "#112233", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}, false},
		{"hex without hash", "FF8000", color.NRGBA{R: 0xff, G: 0x80, A: 255}, false},
		{"short hex", "#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"named", "white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"named mixed case", "Gold", color.NRGBA{R: 255, G: 215, A: 255}, false},
		{"padded", "  #000000 ", color.NRGBA{A: 255}, false},
		{"empty", "", color.NRGBA{}, true},
		{"garbage", "not-a-color", color.NRGBA{}, true},
		{"bad hex", "#12345", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, entity.ErrMalformedColor))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTextColor(t *testing.T) {
	bright := newFilled(64, 64, color.NRGBA{R: 250, G: 220, B: 50, A: 255})
	dark := newFilled(64, 64, color.NRGBA{R: 10, G: 20, B: 60, A: 255})

	tests := []struct {
		name     string
		spec     string
		backdrop *image.NRGBA
		want     color.NRGBA
	}{
		{"explicit", "#123456", bright, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}},
		{"invalid falls back to white", "???", bright, white},
		{"auto on bright backdrop", "auto", bright, black},
		{"auto on dark backdrop", "AUTO", dark, white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTextColor(tt.spec, tt.backdrop))
		})
	}
}
