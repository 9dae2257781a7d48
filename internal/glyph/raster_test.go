package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func inkBounds(m *AlphaMask) (minX, minY, maxX, maxY int) {
	w, h := m.Size()
	minX, minY = w, h
	maxX, maxY = -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Opacity(x, y) == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	return
}

func TestRasterizer_RenderCentred(t *testing.T) {
	r, err := NewRasterizer(nil, 120)
	require.NoError(t, err)

	mask, err := r.Render("A", 200, 200)
	require.NoError(t, err)
	require.Greater(t, mask.Coverage(), 0)

	minX, minY, maxX, maxY := inkBounds(mask)
	assert.InDelta(t, 100, float64(minX+maxX)/2, 4)
	assert.InDelta(t, 100, float64(minY+maxY)/2, 4)

	var peak uint8
	for _, a := range mask.Image().Pix {
		peak = max(peak, a)
	}
	assert.Equal(t, uint8(DefaultOpacity), peak)
}

func TestRasterizer_EmptyText(t *testing.T) {
	r, err := NewRasterizer(nil, 50)
	require.NoError(t, err)

	mask, err := r.Render("", 64, 64)
	require.NoError(t, err)
	assert.Zero(t, mask.Coverage())
}

func TestRasterizer_CustomFont(t *testing.T) {
	r, err := NewRasterizer(goregular.TTF, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultFontSize), r.Size())

	r.SetSize(40)
	r.SetSize(-1)
	assert.Equal(t, 40.0, r.Size())

	mask, err := r.Render("Go", 100, 60)
	require.NoError(t, err)
	assert.Greater(t, mask.Coverage(), 0)
}

func TestRasterizer_BadFont(t *testing.T) {
	_, err := NewRasterizer([]byte{}, 10)
	assert.ErrorIs(t, err, ErrEmptyFontData)

	_, err = NewRasterizer([]byte("not a font"), 10)
	assert.Error(t, err)
}
