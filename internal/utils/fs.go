package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// AssetsDir is an extra directory searched for fonts, sprites and configs.
var AssetsDir string

// SearchDirs lists asset directories in lookup order.
func SearchDirs() []string {
	dirs := []string{"assets"}
	if AssetsDir != "" {
		dirs = append(dirs, AssetsDir)
	}
	if dataHome, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dataHome, "glyphfield"))
	}
	return dirs
}

// ResolveAssetPath returns relPath itself when it exists, otherwise the first
// search directory containing it. Falls back to relPath so callers get the
// original name in their error messages.
func ResolveAssetPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	if exists(relPath) || filepath.IsAbs(relPath) {
		return relPath
	}

	for _, dir := range SearchDirs() {
		p := filepath.Join(dir, relPath)
		if exists(p) {
			return p
		}
	}

	return relPath
}

// FindAsset looks for name, then name with each extension, in the working
// directory and every search directory. Returns "" when nothing matches.
func FindAsset(name string, extensions ...string) string {
	if name == "" {
		return ""
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		for _, ext := range extensions {
			candidates = append(candidates, name+"."+strings.TrimPrefix(ext, "."))
		}
	}

	dirs := append([]string{""}, SearchDirs()...)
	for _, dir := range dirs {
		for _, c := range candidates {
			p := c
			if dir != "" {
				if filepath.IsAbs(c) {
					continue
				}
				p = filepath.Join(dir, c)
			}
			if exists(p) {
				return p
			}
		}
	}

	return ""
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
