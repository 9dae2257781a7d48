package glyph

import (
	"image"
	"image/draw"
)

// Mask is a rectangular opacity field addressed by pixel coordinate.
type Mask interface {
	// Size returns the mask dimensions in pixels.
	Size() (width, height int)
	// Opacity returns the opacity at (x, y); 0 is fully transparent.
	Opacity(x, y int) uint8
}

// AlphaMask is a Mask backed by row-major 8-bit alpha storage.
type AlphaMask struct {
	img *image.Alpha
}

// NewAlphaMask returns a fully transparent width x height mask.
func NewAlphaMask(width, height int) *AlphaMask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &AlphaMask{img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// MaskFromImage copies the alpha channel of img into a new mask whose origin is
// img's top-left corner.
func MaskFromImage(img image.Image) *AlphaMask {
	b := img.Bounds()
	m := NewAlphaMask(b.Dx(), b.Dy())
	draw.Draw(m.img, m.img.Bounds(), img, b.Min, draw.Src)
	return m
}

func (m *AlphaMask) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

// Opacity returns 0 for coordinates outside the mask.
func (m *AlphaMask) Opacity(x, y int) uint8 {
	return m.img.AlphaAt(x, y).A
}

// Set writes the opacity at (x, y). Out of range writes are ignored.
func (m *AlphaMask) Set(x, y int, opacity uint8) {
	if !(image.Point{X: x, Y: y}.In(m.img.Rect)) {
		return
	}
	m.img.Pix[m.img.PixOffset(x, y)] = opacity
}

// Image exposes the backing alpha image for drawing.
func (m *AlphaMask) Image() *image.Alpha {
	return m.img
}

// Coverage returns the number of non-transparent pixels.
func (m *AlphaMask) Coverage() int {
	n := 0
	for _, a := range m.img.Pix {
		if a != 0 {
			n++
		}
	}
	return n
}
