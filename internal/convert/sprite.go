package convert

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"math"
	"os"
	"path"
	"strings"

	"glyphfield/internal/utils"
)

// PkgPrefix marks an asset reference that names a bundle entry.
const PkgPrefix = "pkg:"

// ErrNoPkg is returned for pkg: references when no bundle is loaded.
var ErrNoPkg = errors.New("convert: no asset package loaded")

// ReadAsset returns the bytes behind ref: a "pkg:<entry>" bundle entry or a
// file path resolved through the asset search directories.
func ReadAsset(ref string, pkg *Pkg) ([]byte, error) {
	if name, ok := strings.CutPrefix(ref, PkgPrefix); ok {
		if pkg == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoPkg, ref)
		}
		return pkg.ReadFile(name)
	}
	return os.ReadFile(utils.ResolveAssetPath(ref))
}

// LoadImage decodes a png or tex sprite.
func LoadImage(ref string, pkg *Pkg) (image.Image, error) {
	data, err := ReadAsset(ref, pkg)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(path.Ext(ref), ".tex") {
		img, err := DecodeTex(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ref, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return img, nil
}

// MarkerDisc draws the default marker: a white disc filling a size x size
// image with a one pixel anti-aliased rim.
func MarkerDisc(size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			a := math.Max(0, math.Min(1, c-d+0.5))
			if a > 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(a*255 + 0.5)})
			}
		}
	}
	return img
}
