package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shadelab/internal/engine/lighting"
	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/engine/texture"
)

// Texture units shared by every lighting program.
const (
	UnitShadow = 0
	UnitLight  = 1
	UnitToon   = 2
)

// Uniforms is everything a program may read for one draw. Programs ignore
// the fields they do not declare.
type Uniforms struct {
	MVP      mgl32.Mat4
	LightMVP mgl32.Mat4

	Shadows bool
	PCF     bool

	Spotlight    bool
	LightPos     mgl32.Vec3
	LightColor   mgl32.Vec3
	LightDir     mgl32.Vec3
	LightTexture *texture.Image // nil for flat-colored lights
	ToonTexture  *texture.Image
	CameraPos    mgl32.Vec3
	Material     shading.Material
}

// Textured reports whether the light color comes from LightTexture.
func (u *Uniforms) Textured() bool {
	return u.LightTexture != nil
}

func (u *Uniforms) setLight(l *lighting.Light) {
	u.Spotlight = l.Spotlight
	u.LightPos = l.Position
	u.LightColor = l.Color
	u.LightDir = l.Direction
	u.LightTexture = l.Texture
}
