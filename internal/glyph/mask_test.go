package glyph

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlphaMask(t *testing.T) {
	m := NewAlphaMask(4, 3)
	w, h := m.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)

	m.Set(1, 2, 200)
	m.Set(9, 9, 255)
	m.Set(-1, 0, 255)

	assert.Equal(t, uint8(200), m.Opacity(1, 2))
	assert.Equal(t, uint8(0), m.Opacity(9, 9))
	assert.Equal(t, 1, m.Coverage())
}

func TestMaskFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	src.SetNRGBA(11, 11, color.NRGBA{R: 255, A: 128})

	m := MaskFromImage(src)
	w, h := m.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, uint8(128), m.Opacity(1, 1))
	assert.Equal(t, 1, m.Coverage())
}

func TestNewAlphaMask_NegativeSize(t *testing.T) {
	w, h := NewAlphaMask(-3, -1).Size()
	assert.Zero(t, w)
	assert.Zero(t, h)
}
