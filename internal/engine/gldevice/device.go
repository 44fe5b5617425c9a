// Package gldevice implements renderer.Device on OpenGL 4.1 core.
package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/framebuffer"
	"github.com/Faultbox/shadelab/internal/engine/renderer"
	"github.com/Faultbox/shadelab/internal/engine/shader"
	"github.com/Faultbox/shadelab/internal/engine/shaders"
	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/engine/shadow"
	"github.com/Faultbox/shadelab/internal/engine/texture"
	"github.com/Faultbox/shadelab/internal/logger"
)

// toonRampWidth is the width of the generated x-toon lookup texture.
const toonRampWidth = 256

// Config holds device settings.
type Config struct {
	ShadowSize shadow.Size
	ClearColor mgl32.Vec4
	Width      int32
	Height     int32
}

// Device owns every GL object except mesh buffers.
type Device struct {
	cfg Config
	log *zap.Logger

	programs  map[shading.Program]*shader.Program
	shadowMap *ShadowMap
	markerVAO uint32
	textures  map[*texture.Image]uint32
	toonRamp  *texture.Image

	target *framebuffer.Framebuffer
	width  int32
	height int32
}

var _ renderer.Device = (*Device)(nil)

// New initializes GL and creates the programs and the shadow map.
// It must be called with a current GL context.
func New(cfg Config) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	d := &Device{
		cfg:      cfg,
		log:      logger.Named("gl"),
		programs: make(map[shading.Program]*shader.Program),
		textures: make(map[*texture.Image]uint32),
		toonRamp: texture.Gradient(toonRampWidth, 1),
		width:    cfg.Width,
		height:   cfg.Height,
	}

	d.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))))

	for _, p := range shading.Programs() {
		vs, fs, err := shaders.Source(p)
		if err != nil {
			d.Close()
			return nil, err
		}
		prog, err := shader.Compile(p.String(), vs, fs)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.programs[p] = prog
	}

	sm, err := NewShadowMap(cfg.ShadowSize)
	if err != nil {
		d.Close()
		return nil, err
	}
	d.shadowMap = sm

	gl.GenVertexArrays(1, &d.markerVAO)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	d.log.Debug("device ready",
		zap.Int("programs", len(d.programs)),
		zap.Int32("shadow_width", sm.Size().Width),
		zap.Int32("shadow_height", sm.Size().Height))
	return d, nil
}

// Close deletes every GL object owned by the device.
func (d *Device) Close() {
	for p, prog := range d.programs {
		prog.Delete()
		delete(d.programs, p)
	}
	if d.shadowMap != nil {
		d.shadowMap.Destroy()
		d.shadowMap = nil
	}
	if d.markerVAO != 0 {
		gl.DeleteVertexArrays(1, &d.markerVAO)
		d.markerVAO = 0
	}
	d.releaseTextures()
}

// SetTarget renders scene passes into fb, or the default framebuffer when
// fb is nil.
func (d *Device) SetTarget(fb *framebuffer.Framebuffer) {
	d.target = fb
}

// SetViewport sets the size of the default framebuffer.
func (d *Device) SetViewport(width, height int32) {
	d.width, d.height = width, height
}

func (d *Device) bindTarget() {
	if d.target != nil {
		d.target.Bind()
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, d.width, d.height)
}

// Finish rebinds the default framebuffer and restores the state other GL
// users expect, such as the ImGui renderer.
func (d *Device) Finish() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, d.width, d.height)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
	gl.ColorMask(true, true, true, true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// BeginShadowPass implements renderer.Device.
func (d *Device) BeginShadowPass() {
	d.shadowMap.Bind()
}

// EndShadowPass implements renderer.Device.
func (d *Device) EndShadowPass() {
	d.shadowMap.Unbind()
	d.bindTarget()
}

// BeginScenePass implements renderer.Device.
func (d *Device) BeginScenePass() {
	d.bindTarget()
	c := d.cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.DepthMask(true)
	gl.ColorMask(true, true, true, true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

var depthFuncs = map[renderer.DepthFunc]uint32{
	renderer.DepthLess:      gl.LESS,
	renderer.DepthLessEqual: gl.LEQUAL,
	renderer.DepthEqual:     gl.EQUAL,
}

// SetPassState implements renderer.Device.
func (d *Device) SetPassState(s renderer.PassState) {
	c := s.Config()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(c.DepthWrite)
	gl.DepthFunc(depthFuncs[c.Depth])
	gl.ColorMask(c.ColorWrite, c.ColorWrite, c.ColorWrite, c.ColorWrite)
	if c.Blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.Disable(gl.BLEND)
	}
}

// Draw implements renderer.Device.
func (d *Device) Draw(p shading.Program, u *renderer.Uniforms, mesh renderer.MeshBuffers) {
	prog, ok := d.programs[p]
	if !ok {
		d.log.Error("draw with unknown program", zap.Stringer("program", p))
		return
	}
	mb, ok := mesh.(*meshBuffers)
	if !ok {
		d.log.Error("draw with foreign mesh buffers")
		return
	}

	prog.Use()
	if p == shading.ProgramShadow {
		// The depth texture is the render target here; leave it unbound.
		prog.SetMat4("mvp", u.MVP)
	} else {
		d.applyUniforms(prog, u)
	}
	mb.draw()
}

func (d *Device) applyUniforms(prog *shader.Program, u *renderer.Uniforms) {
	prog.SetMat4("mvp", u.MVP)
	prog.SetMat4("lightMVP", u.LightMVP)

	prog.SetBool("shadow", u.Shadows)
	prog.SetBool("pcf", u.PCF)
	prog.SetBool("lightMode", u.Spotlight)

	prog.SetVec3("lightPos", u.LightPos)
	prog.SetVec3("lightColor", u.LightColor)
	prog.SetVec3("lightDir", u.LightDir)
	prog.SetVec3("cameraPos", u.CameraPos)

	m := u.Material
	prog.SetVec3("kd", m.Kd)
	prog.SetVec3("ks", m.Ks)
	prog.SetFloat("shininess", m.Shininess)
	prog.SetInt("toonDiscretize", m.ToonDiscretize)
	prog.SetFloat("toonSpecularThreshold", m.ToonSpecularThreshold)

	// Uploads bind on the active unit, so resolve textures before binding.
	var lightTex uint32
	if u.Textured() {
		lightTex = d.textureFor(u.LightTexture)
	}
	toon := u.ToonTexture
	if toon == nil {
		toon = d.toonRamp
	}
	toonTex := d.textureFor(toon)

	d.shadowMap.BindTexture(renderer.UnitShadow)
	bindTexture(renderer.UnitLight, lightTex)
	bindTexture(renderer.UnitToon, toonTex)

	prog.SetInt("texShadow", renderer.UnitShadow)
	prog.SetInt("texLight", renderer.UnitLight)
	prog.SetInt("texToon", renderer.UnitToon)
	prog.SetBool("lightColorMode", lightTex != 0)
}

// DrawMarker implements renderer.Device.
func (d *Device) DrawMarker(m renderer.Marker) {
	prog := d.programs[shading.ProgramLightMarker]
	prog.Use()
	prog.SetMat4("mvp", m.MVP)
	prog.SetVec3("pos", m.Position)
	prog.SetVec3("color", m.Color)

	gl.PointSize(m.Size)
	gl.BindVertexArray(d.markerVAO)
	gl.DrawArrays(gl.POINTS, 0, 1)
	gl.BindVertexArray(0)
}

// ReadPixels returns the RGBA contents of the current scene target with
// OpenGL's bottom-left origin.
func (d *Device) ReadPixels() (pixels []byte, width, height int) {
	if d.target != nil {
		w, h := d.target.Size()
		return d.target.ReadPixels(), int(w), int(h)
	}
	if d.width <= 0 || d.height <= 0 {
		return nil, 0, 0
	}
	pixels = make([]byte, int(d.width)*int(d.height)*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, d.width, d.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, int(d.width), int(d.height)
}
