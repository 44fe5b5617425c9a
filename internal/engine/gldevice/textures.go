package gldevice

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/texture"
)

// textureFor returns the GL texture for img, uploading it on first use. The
// CPU pixels are released after the upload.
func (d *Device) textureFor(img *texture.Image) uint32 {
	if id, ok := d.textures[img]; ok {
		return id
	}
	if img.Released() {
		d.log.Warn("texture released before upload", zap.Int("width", img.Width), zap.Int("height", img.Height))
		d.textures[img] = 0
		return 0
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, int32(img.Width), int32(img.Height), 0,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	img.Release()
	d.textures[img] = id

	d.log.Debug("texture uploaded",
		zap.Uint32("id", id),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("source_channels", img.SourceChannels))
	return id
}

func bindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// ReleaseTextures implements renderer.Device.
func (d *Device) ReleaseTextures(keep []*texture.Image) {
	live := make(map[*texture.Image]bool, len(keep)+1)
	live[d.toonRamp] = true
	for _, img := range keep {
		live[img] = true
	}
	released := 0
	for img, id := range d.textures {
		if live[img] {
			continue
		}
		if id != 0 {
			gl.DeleteTextures(1, &id)
			released++
		}
		delete(d.textures, img)
	}
	if released > 0 {
		d.log.Debug("textures released", zap.Int("count", released), zap.Int("kept", len(d.textures)))
	}
}

func (d *Device) releaseTextures() {
	for img, id := range d.textures {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
		delete(d.textures, img)
	}
}
