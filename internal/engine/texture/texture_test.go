package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaFile builds a 24-bit TGA with the given image type and pixel payload.
func tgaFile(imageType byte, width, height int, topToBottom bool, payload []byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12] = byte(width)
	hdr[14] = byte(height)
	hdr[16] = 24
	if topToBottom {
		hdr[17] = 0x20
	}
	return append(hdr, payload...)
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x1, bottom-to-top rows; BGR order on disk.
	data := tgaFile(TGATypeUncompressed, 2, 1, false, []byte{
		0, 0, 255, // red
		255, 0, 0, // blue
	})
	img, err := DecodeTGA(data)
	require.NoError(t, err)

	rgba := img.(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, rgba.RGBAAt(1, 0))
}

func TestDecodeTGARLE(t *testing.T) {
	// One run packet of 3 green pixels followed by one raw white pixel.
	data := tgaFile(TGATypeRLE, 2, 2, true, []byte{
		0x82, 0, 255, 0,
		0x00, 255, 255, 255,
	})
	img, err := DecodeTGA(data)
	require.NoError(t, err)

	rgba := img.(*image.RGBA)
	green := color.RGBA{G: 255, A: 255}
	assert.Equal(t, green, rgba.RGBAAt(0, 0))
	assert.Equal(t, green, rgba.RGBAAt(1, 0))
	assert.Equal(t, green, rgba.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(1, 1))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { d := tgaFile(TGATypeUncompressed, 1, 1, false, []byte{1, 2, 3}); d[1] = 1; return d }()},
		{"unsupported type", tgaFile(3, 1, 1, false, []byte{1})},
		{"truncated pixels", tgaFile(TGATypeUncompressed, 2, 2, false, []byte{1, 2, 3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestLoadPNGFlipsToGLOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255}) // top row
	src.Set(0, 1, color.NRGBA{B: 255, A: 255}) // bottom row

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, 2, img.Height)
	assert.Len(t, img.Pix, img.Width*img.Height*RGBChannels)
	// Row 0 is the bottom of the picture.
	assert.Equal(t, []byte{0, 0, 255, 255, 0, 0}, img.Pix)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestReleaseDropsPixels(t *testing.T) {
	img := Gradient(4, 1)
	require.False(t, img.Released())
	img.Release()
	assert.True(t, img.Released())
	assert.Equal(t, 4, img.Width)
}

func TestGradientRamp(t *testing.T) {
	img := Gradient(3, 1)
	assert.Equal(t, []byte{0, 0, 0, 127, 127, 127, 255, 255, 255}, img.Pix)
}
