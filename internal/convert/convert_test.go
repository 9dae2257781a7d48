package convert

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pkgFile struct {
	name string
	data []byte
}

func buildPkg(t *testing.T, files ...pkgFile) []byte {
	t.Helper()
	var buf bytes.Buffer
	writeString := func(s string) {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(s))))
		buf.WriteString(s)
	}

	writeString("PKGV0001")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(files))))
	offset := uint32(0)
	for _, f := range files {
		writeString(f.name)
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, [2]uint32{offset, uint32(len(f.data))}))
		offset += uint32(len(f.data))
	}
	for _, f := range files {
		buf.Write(f.data)
	}
	return buf.Bytes()
}

type texFixture struct {
	format     uint32
	imgW, imgH uint32
	mipW, mipH uint32
	container  string
	lz4        bool
	payload    []byte
}

func buildTex(t *testing.T, f texFixture) []byte {
	t.Helper()
	var buf bytes.Buffer
	u32 := func(v uint32) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }
	tag := func(s string) { buf.WriteString(s); buf.WriteByte(0) }

	tag("TEXV0005")
	tag("TEXI0001")
	u32(f.format)
	u32(0)
	u32(f.mipW)
	u32(f.mipH)
	u32(f.imgW)
	u32(f.imgH)
	u32(0)

	container := f.container
	if container == "" {
		container = "TEXB0003"
	}
	tag(container)
	u32(1)
	if container == "TEXB0003" {
		u32(0)
	}

	u32(1)
	u32(f.mipW)
	u32(f.mipH)
	data := f.payload
	if container != "TEXB0001" {
		if f.lz4 {
			out := make([]byte, lz4.CompressBlockBound(len(f.payload)))
			n, err := lz4.CompressBlock(f.payload, out, nil)
			require.NoError(t, err)
			require.Positive(t, n)
			data = out[:n]
			u32(1)
		} else {
			u32(0)
		}
		u32(uint32(len(f.payload)))
	}
	u32(uint32(len(data)))
	buf.Write(data)
	return buf.Bytes()
}

func TestParsePkg(t *testing.T) {
	raw := buildPkg(t,
		pkgFile{"fonts/bold.ttf", []byte("font-bytes")},
		pkgFile{"marker.png", []byte{1, 2, 3}},
	)

	pkg, err := ParsePkg(raw)
	require.NoError(t, err)
	assert.Equal(t, "PKGV0001", pkg.Version)

	data, err := pkg.ReadFile("fonts/bold.ttf")
	require.NoError(t, err)
	assert.Equal(t, []byte("font-bytes"), data)

	data, err = pkg.ReadFile("marker.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = pkg.ReadFile("missing")
	assert.ErrorIs(t, err, ErrNotInPkg)

	entries := pkg.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "fonts/bold.ttf", entries[0].Name)
	assert.Equal(t, uint32(10), entries[1].Offset)
}

func TestReadFileReturnsCopy(t *testing.T) {
	pkg, err := ParsePkg(buildPkg(t, pkgFile{"a", []byte("abc")}))
	require.NoError(t, err)

	data, err := pkg.ReadFile("a")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := pkg.ReadFile("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestParsePkgRejectsTruncated(t *testing.T) {
	raw := buildPkg(t, pkgFile{"a", []byte("abcdef")})

	_, err := ParsePkg(raw[:len(raw)-2])
	assert.Error(t, err)

	_, err = ParsePkg(raw[:6])
	assert.Error(t, err)
}

func TestOpenPkg(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.pkg")
	require.NoError(t, os.WriteFile(path, buildPkg(t, pkgFile{"x", []byte("y")}), 0o644))

	pkg, err := OpenPkg(path)
	require.NoError(t, err)
	data, err := pkg.ReadFile("x")
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), data)
}

func TestDecodeTexRGBA(t *testing.T) {
	payload := make([]byte, 4*4*4)
	for i := 0; i < len(payload); i += 4 {
		payload[i], payload[i+1], payload[i+2], payload[i+3] = 10, 20, 30, 200
	}

	for _, compressed := range []bool{false, true} {
		raw := buildTex(t, texFixture{
			format: FormatRGBA8888, imgW: 3, imgH: 2, mipW: 4, mipH: 4,
			lz4: compressed, payload: payload,
		})
		img, err := DecodeTex(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
		assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 200}, color.NRGBAModel.Convert(img.At(1, 1)))
	}
}

func TestDecodeTexR8IsCoverage(t *testing.T) {
	raw := buildTex(t, texFixture{
		format: FormatR8, imgW: 2, imgH: 2, mipW: 2, mipH: 2,
		container: "TEXB0001", payload: []byte{0, 64, 128, 255},
	})
	img, err := DecodeTex(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 128}, color.NRGBAModel.Convert(img.At(0, 1)))
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestDecodeTexRG88(t *testing.T) {
	raw := buildTex(t, texFixture{
		format: FormatRG88, imgW: 1, imgH: 1, mipW: 1, mipH: 1,
		payload: []byte{90, 180},
	})
	img, err := DecodeTex(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 90, G: 90, B: 90, A: 180}, color.NRGBAModel.Convert(img.At(0, 0)))
}

func TestDecodeTexDXT1(t *testing.T) {
	block := []byte{0xff, 0xff, 0x00, 0x00, 0, 0, 0, 0}
	raw := buildTex(t, texFixture{
		format: FormatDXT1, imgW: 4, imgH: 4, mipW: 4, mipH: 4,
		payload: block,
	})
	img, err := DecodeTex(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
}

func TestDecodeTexErrors(t *testing.T) {
	_, err := DecodeTex(bytes.NewReader([]byte("TEXV0004\x00TEXI0001\x00")))
	assert.ErrorIs(t, err, ErrInvalidTexture)

	valid := buildTex(t, texFixture{format: FormatR8, imgW: 1, imgH: 1, mipW: 1, mipH: 1, payload: []byte{1}})
	_, err = DecodeTex(bytes.NewReader(valid[:len(valid)-1]))
	assert.ErrorIs(t, err, ErrInvalidTexture)

	odd := buildTex(t, texFixture{format: FormatR8, imgW: 2, imgH: 2, mipW: 2, mipH: 2, payload: []byte{1, 2, 3}})
	_, err = DecodeTex(bytes.NewReader(odd))
	assert.ErrorIs(t, err, ErrInvalidTexture)
}

func TestLoadImageFromPkg(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, MarkerDisc(8)))
	tex := buildTex(t, texFixture{format: FormatR8, imgW: 1, imgH: 1, mipW: 1, mipH: 1, payload: []byte{255}})

	pkg, err := ParsePkg(buildPkg(t,
		pkgFile{"marker.png", pngBuf.Bytes()},
		pkgFile{"marker.tex", tex},
	))
	require.NoError(t, err)

	img, err := LoadImage("pkg:marker.png", pkg)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	img, err = LoadImage("pkg:marker.tex", pkg)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())

	_, err = LoadImage("pkg:marker.png", nil)
	assert.ErrorIs(t, err, ErrNoPkg)
}

func TestLoadImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disc.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, MarkerDisc(5)))
	require.NoError(t, f.Close())

	img, err := LoadImage(path, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())

	_, err = LoadImage(filepath.Join(t.TempDir(), "none.png"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarkerDisc(t *testing.T) {
	disc := MarkerDisc(12)
	assert.Equal(t, image.Rect(0, 0, 12, 12), disc.Bounds())
	assert.Equal(t, uint8(0xff), disc.NRGBAAt(6, 6).A)
	assert.Zero(t, disc.NRGBAAt(0, 0).A)
	assert.Equal(t, disc.NRGBAAt(2, 6), disc.NRGBAAt(9, 6))

	assert.Equal(t, image.Rect(0, 0, 1, 1), MarkerDisc(0).Bounds())
}
