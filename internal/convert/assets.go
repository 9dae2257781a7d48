package convert

import (
	"fmt"
	"image"

	"glyphfield/internal/utils"
)

// OpenBundle opens the asset package at path. An empty path means no bundle
// and returns nil without error.
func OpenBundle(path string) (*Pkg, error) {
	if path == "" {
		return nil, nil
	}
	pkg, err := OpenPkg(utils.ResolveAssetPath(path))
	if err != nil {
		return nil, fmt.Errorf("open asset package: %w", err)
	}
	utils.Info("Loaded asset package %s (%d entries)", path, len(pkg.Entries()))
	return pkg, nil
}

// LoadFont returns the font bytes behind ref, nil for an empty ref so the
// rasterizer falls back to its built-in face.
func LoadFont(ref string, pkg *Pkg) ([]byte, error) {
	if ref == "" {
		return nil, nil
	}
	name := ref
	if found := utils.FindAsset(ref, "ttf", "otf"); found != "" {
		name = found
	}
	data, err := ReadAsset(name, pkg)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", ref, err)
	}
	utils.Debug("Loaded font %s (%d bytes)", name, len(data))
	return data, nil
}

// LoadSprite returns the marker sprite behind ref. An empty ref, or one that
// cannot be read, yields a generated disc of the given size.
func LoadSprite(ref string, size int, pkg *Pkg) image.Image {
	if ref == "" {
		return MarkerDisc(size)
	}
	name := ref
	if found := utils.FindAsset(ref, "png", "tex"); found != "" {
		name = found
	}

	img, err := LoadImage(name, pkg)
	if err != nil {
		utils.Warn("Failed to load marker sprite %s, using disc: %v", ref, err)
		return MarkerDisc(size)
	}
	utils.Debug("Loaded marker sprite %s (%dx%d)", name, img.Bounds().Dx(), img.Bounds().Dy())
	return img
}
