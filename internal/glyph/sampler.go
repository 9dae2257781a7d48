package glyph

// RowStagger is the column every odd scanned row starts from, so adjacent rows
// form a brick lattice instead of a rectangular grid.
const RowStagger = 6

// DefaultDensity is the reference sample spacing in pixels.
const DefaultDensity = 2

// SamplePoint is a pixel coordinate where the glyph mask is opaque.
type SamplePoint struct {
	X, Y int
}

// Sample scans mask in rows of stride density and returns every opaque pixel
// strictly inside (0, width) x (0, height), in row-major scan order.
func Sample(mask Mask, density, width, height int) ([]SamplePoint, error) {
	if density <= 0 {
		return nil, ErrInvalidDensity
	}

	maskWidth, maskHeight := mask.Size()
	if maskWidth != width || maskHeight != height {
		return nil, &DimensionMismatchError{
			MaskWidth:  maskWidth,
			MaskHeight: maskHeight,
			Width:      width,
			Height:     height,
		}
	}

	var points []SamplePoint
	row := 0
	for y := 0; y < height; y += density {
		start := 0
		if row%2 != 0 {
			start = RowStagger
		}
		row++

		if y <= 0 {
			continue
		}

		for x := start; x < width; x += density {
			if x <= 0 {
				continue
			}
			if mask.Opacity(x, y) != 0 {
				points = append(points, SamplePoint{X: x, Y: y})
			}
		}
	}
	return points, nil
}
