package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"glyphfield/internal/utils"
)

// ErrNotInPkg is returned by Pkg.ReadFile for names the bundle does not hold.
var ErrNotInPkg = errors.New("convert: entry not in package")

type FileEntry struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Pkg is an asset bundle held in memory: a length-prefixed version string,
// an entry table and a data section the entry offsets are relative to.
type Pkg struct {
	Version string
	entries map[string]FileEntry
	data    []byte
}

func readPkgString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 1<<16 {
		return "", fmt.Errorf("pkg string length %d", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func OpenPkg(path string) (*Pkg, error) {
	utils.Debug("Pkg: Opening package %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pkg, err := ParsePkg(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	utils.Debug("Pkg: %s version %s, %d entries", path, pkg.Version, len(pkg.entries))
	return pkg, nil
}

// ParsePkg reads a bundle from memory. Every entry must lie inside the data
// section.
func ParsePkg(data []byte) (*Pkg, error) {
	r := bytes.NewReader(data)

	version, err := readPkgString(r)
	if err != nil {
		return nil, fmt.Errorf("pkg header: %w", err)
	}

	var fileCount uint32
	if err := binary.Read(r, binary.LittleEndian, &fileCount); err != nil {
		return nil, fmt.Errorf("pkg header: %w", err)
	}

	entries := make(map[string]FileEntry, fileCount)
	for i := uint32(0); i < fileCount; i++ {
		name, err := readPkgString(r)
		if err != nil {
			return nil, fmt.Errorf("pkg entry %d: %w", i, err)
		}
		var bounds [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &bounds); err != nil {
			return nil, fmt.Errorf("pkg entry %s: %w", name, err)
		}
		entries[name] = FileEntry{Name: name, Offset: bounds[0], Size: bounds[1]}
	}

	dataStart := len(data) - r.Len()
	section := data[dataStart:]
	for _, e := range entries {
		if uint64(e.Offset)+uint64(e.Size) > uint64(len(section)) {
			return nil, fmt.Errorf("pkg entry %s: %d bytes at %d past end of data", e.Name, e.Size, e.Offset)
		}
	}

	return &Pkg{Version: version, entries: entries, data: section}, nil
}

// ReadFile returns a copy of the named entry.
func (p *Pkg) ReadFile(name string) ([]byte, error) {
	e, ok := p.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInPkg, name)
	}
	out := make([]byte, e.Size)
	copy(out, p.data[e.Offset:e.Offset+e.Size])
	return out, nil
}

// Entries lists the bundle contents sorted by name.
func (p *Pkg) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
