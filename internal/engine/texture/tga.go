package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types supported by DecodeTGA.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// tgaHeader is the subset of the TGA header needed to decode true-color images.
type tgaHeader struct {
	idLength     int
	colorMapType byte
	imageType    byte
	width        int
	height       int
	bpp          int
	topToBottom  bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}
	h := tgaHeader{
		idLength:     int(data[0]),
		colorMapType: data[1],
		imageType:    data[2],
		width:        int(data[12]) | int(data[13])<<8,
		height:       int(data[14]) | int(data[15])<<8,
		bpp:          int(data[16]),
		topToBottom:  data[17]&0x20 != 0,
	}
	if h.colorMapType != 0 {
		return h, fmt.Errorf("tga: color-mapped images not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	}
	if h.bpp != 24 && h.bpp != 32 {
		return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA image.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:    image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		hdr:    h,
		stride: h.bpp / 8,
		src:    data[offset:],
	}
	if h.imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img    *image.RGBA
	hdr    tgaHeader
	stride int
	src    []byte
	pos    int
	pixel  int
}

// next reads one BGR(A) pixel from the source stream.
func (d *tgaDecoder) next() (color.RGBA, bool) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, true
}

// put writes c at the current pixel index, honouring the row order flag.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.pixel % d.hdr.width
	y := d.pixel / d.hdr.width
	if !d.hdr.topToBottom {
		y = d.hdr.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.hdr.width * d.hdr.height
}

func (d *tgaDecoder) decodeRaw() error {
	if len(d.src) < d.total()*d.stride {
		return errTGATruncated
	}
	for d.pixel < d.total() {
		c, _ := d.next()
		d.put(c)
	}
	return nil
}

// decodeRLE stops quietly at the end of the stream, leaving missing
// pixels transparent.
func (d *tgaDecoder) decodeRLE() error {
	for d.pixel < d.total() && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.next()
			if !ok {
				return nil
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, ok := d.next()
			if !ok {
				return nil
			}
			d.put(c)
		}
	}
	return nil
}
