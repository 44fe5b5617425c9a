// Package lighting holds the scene's light sources and the selection state
// the renderer and UI share.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shadelab/internal/engine/texture"
)

// Light is a point or spot light, optionally colored by a texture.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Spotlight bool
	Direction mgl32.Vec3
	// Texture is nil for flat-colored lights. Its pixels are released after
	// the GPU upload; the dimensions remain valid.
	Texture *texture.Image
}

// DefaultLight returns the light used by Add and Reset.
func DefaultLight() Light {
	return Light{
		Position:  mgl32.Vec3{0.4, 1.2, 0.2},
		Color:     mgl32.Vec3{1, 1, 1},
		Spotlight: false,
		Direction: mgl32.Vec3{0.707, 0.0, 0.707},
	}
}

// Textured reports whether the light samples a color texture.
func (l *Light) Textured() bool {
	return l.Texture != nil
}
