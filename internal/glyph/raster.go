package glyph

import (
	"image"
	"image/color"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultFontSize is the pixel size the glyph is rendered at.
	DefaultFontSize = 800

	// DefaultOpacity is the fill opacity of rendered text (0.3).
	DefaultOpacity = 0x4d
)

// Rasterizer renders text into alpha masks with a single font face.
type Rasterizer struct {
	font    *opentype.Font
	size    float64
	opacity uint8
	id      uint64
}

// NewRasterizer parses fontData (TTF or OTF). A nil slice selects the embedded
// Go Bold face.
func NewRasterizer(fontData []byte, size float64) (*Rasterizer, error) {
	if fontData == nil {
		fontData = gobold.TTF
	}
	if len(fontData) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = DefaultFontSize
	}

	return &Rasterizer{
		font:    f,
		size:    size,
		opacity: DefaultOpacity,
		id:      xxhash.Sum64(fontData),
	}, nil
}

// Size returns the font size in pixels.
func (r *Rasterizer) Size() float64 {
	return r.size
}

// SetSize changes the font size used by later Render calls.
func (r *Rasterizer) SetSize(size float64) {
	if size > 0 {
		r.size = size
	}
}

// Render draws text centred on its ink bounds in a width x height mask.
// Ink falling outside the region is clipped.
func (r *Rasterizer) Render(text string, width, height int) (*AlphaMask, error) {
	mask := NewAlphaMask(width, height)
	if text == "" || width <= 0 || height <= 0 {
		return mask, nil
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    r.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = face.Close()
	}()

	bounds, _ := font.BoundString(face, text)
	inkWidth := bounds.Max.X - bounds.Min.X
	inkHeight := bounds.Max.Y - bounds.Min.Y

	drawer := &font.Drawer{
		Dst:  mask.img,
		Src:  image.NewUniform(color.Alpha{A: r.opacity}),
		Face: face,
		Dot: fixed.Point26_6{
			X: (fixed.I(width)-inkWidth)/2 - bounds.Min.X,
			Y: (fixed.I(height)-inkHeight)/2 - bounds.Min.Y,
		},
	}
	drawer.DrawString(text)

	return mask, nil
}
