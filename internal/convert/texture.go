package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"glyphfield/internal/utils"
)

// ErrInvalidTexture is returned for containers DecodeTex cannot read.
var ErrInvalidTexture = errors.New("convert: invalid texture")

const (
	texMagic = "TEXV0005"

	FormatRGBA8888 uint32 = 0
	FormatDXT5     uint32 = 4
	FormatDXT3     uint32 = 6
	FormatDXT1     uint32 = 7
	FormatRG88     uint32 = 8
	FormatR8       uint32 = 9
)

// texReader keeps the first read error so header parsing stays linear.
type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) uint32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an 8 byte tag and its terminating NUL.
func (t *texReader) magic() string {
	var b [9]byte
	if t.err == nil {
		_, t.err = io.ReadFull(t.r, b[:])
	}
	return string(bytes.TrimRight(b[:8], "\x00"))
}

func (t *texReader) bytes(n uint32) []byte {
	if t.err != nil {
		return nil
	}
	if n > 1<<28 {
		t.err = fmt.Errorf("%w: block of %d bytes", ErrInvalidTexture, n)
		return nil
	}
	b := make([]byte, n)
	_, t.err = io.ReadFull(t.r, b)
	return b
}

// DecodeTex decodes the first mip level of the first image in a TEXV0005
// container. Payloads may be LZ4 block compressed.
func DecodeTex(r io.Reader) (image.Image, error) {
	t := &texReader{r: r}

	if m := t.magic(); t.err == nil && m != texMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidTexture, m)
	}
	t.magic() // TEXI0001

	format := t.uint32()
	t.uint32() // flags
	t.uint32() // texture width
	t.uint32() // texture height
	imgW := t.uint32()
	imgH := t.uint32()
	t.uint32()

	container := t.magic()
	imageCount := t.uint32()
	if container == "TEXB0003" {
		t.uint32()
	}
	if t.err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidTexture, t.err)
	}
	if imageCount == 0 {
		return nil, fmt.Errorf("%w: no image in container", ErrInvalidTexture)
	}

	if mipCount := t.uint32(); t.err == nil && mipCount == 0 {
		return nil, fmt.Errorf("%w: image without mip levels", ErrInvalidTexture)
	}
	mipW := t.uint32()
	mipH := t.uint32()
	var compressed bool
	var decompressedSize uint32
	if container != "TEXB0001" {
		compressed = t.uint32() == 1
		decompressedSize = t.uint32()
	}
	data := t.bytes(t.uint32())
	if t.err != nil {
		return nil, fmt.Errorf("%w: mip 0: %v", ErrInvalidTexture, t.err)
	}

	utils.Debug("Tex: format %d, image %dx%d, mip %dx%d, lz4 %v", format, imgW, imgH, mipW, mipH, compressed)

	if compressed {
		out := make([]byte, decompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrInvalidTexture, err)
		}
		data = out[:n]
	}

	pix, err := decodePixels(format, data, mipW, mipH)
	if err != nil {
		return nil, err
	}

	img := &image.NRGBA{
		Pix:    pix,
		Stride: int(mipW) * 4,
		Rect:   image.Rect(0, 0, int(mipW), int(mipH)),
	}
	if imgW == 0 || imgH == 0 || imgW > mipW || imgH > mipH {
		return img, nil
	}
	return img.SubImage(image.Rect(0, 0, int(imgW), int(imgH))), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	size := uint32(len(data))
	pixels := w * h
	blocks := ((w + 3) / 4) * ((h + 3) / 4)

	switch {
	case size == pixels*4:
		return data, nil
	case size == blocks*16 && (format == FormatDXT5 || format == FormatDXT3):
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case size == blocks*8:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case format == FormatR8 && size == pixels:
		// Single channel sprites are coverage masks.
		pix := make([]byte, pixels*4)
		for i, v := range data {
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = 0xff, 0xff, 0xff, v
		}
		return pix, nil
	case format == FormatRG88 && size == pixels*2:
		pix := make([]byte, pixels*4)
		for i := uint32(0); i < pixels; i++ {
			lum, alpha := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = lum, lum, lum, alpha
		}
		return pix, nil
	}
	return nil, fmt.Errorf("%w: format %d with %d bytes for %dx%d", ErrInvalidTexture, format, size, w, h)
}
