// Package texture decodes images from disk into tightly packed RGB pixel
// buffers ready for GPU upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// RGBChannels is the channel count of every Image produced by this package.
const RGBChannels = 3

// Image is a decoded RGB8 pixel buffer. It is owned by the caller until the
// pixels have been uploaded, after which Release drops the buffer.
type Image struct {
	Width  int
	Height int
	// SourceChannels is the channel count of the file before conversion.
	SourceChannels int
	Pix            []byte
}

// Released reports whether the pixel buffer has been dropped.
func (img *Image) Released() bool {
	return img.Pix == nil
}

// Release drops the CPU pixel buffer. Dimensions are kept.
func (img *Image) Release() {
	img.Pix = nil
}

// Load reads and decodes an image file. TGA files are routed to DecodeTGA,
// everything else goes through the registered image decoders.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	var src image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		src, err = DecodeTGA(data)
	} else {
		src, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	return FromImage(src), nil
}

// FromImage converts any decoded image to packed RGB8, flipped so that row 0
// is the bottom of the picture (OpenGL texture origin).
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*RGBChannels)
	for y := 0; y < h; y++ {
		srcRow := rgba.Pix[(h-1-y)*rgba.Stride:]
		dstRow := pix[y*w*RGBChannels:]
		for x := 0; x < w; x++ {
			copy(dstRow[x*RGBChannels:x*RGBChannels+RGBChannels], srcRow[x*4:x*4+3])
		}
	}

	return &Image{
		Width:          w,
		Height:         h,
		SourceChannels: sourceChannels(src),
		Pix:            pix,
	}
}

func sourceChannels(src image.Image) int {
	switch src.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		return 4
	default:
		return 3
	}
}

// Gradient builds a width x height ramp from black to white along X. It
// stands in for the x-toon lookup map when none is configured.
func Gradient(width, height int) *Image {
	if width < 2 {
		width = 2
	}
	if height < 1 {
		height = 1
	}
	pix := make([]byte, width*height*RGBChannels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := byte(x * 255 / (width - 1))
			i := (y*width + x) * RGBChannels
			pix[i], pix[i+1], pix[i+2] = v, v, v
		}
	}
	return &Image{Width: width, Height: height, SourceChannels: 1, Pix: pix}
}
