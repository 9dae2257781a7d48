package glyph

import (
	"errors"
	"fmt"
)

// Sentinel errors for the glyph package.
var (
	// ErrDimensionMismatch is returned when a mask's size disagrees with the
	// declared scan region.
	ErrDimensionMismatch = errors.New("glyph: dimension mismatch")

	// ErrInvalidDensity is returned for a non-positive sample stride.
	ErrInvalidDensity = errors.New("glyph: density must be positive")

	// ErrEmptyFontData is returned when a rasterizer is given zero-length font bytes.
	ErrEmptyFontData = errors.New("glyph: empty font data")
)

// DimensionMismatchError carries both sizes of a failed Sample call.
type DimensionMismatchError struct {
	MaskWidth, MaskHeight int
	Width, Height         int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("glyph: mask is %dx%d, scan region is %dx%d",
		e.MaskWidth, e.MaskHeight, e.Width, e.Height)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
