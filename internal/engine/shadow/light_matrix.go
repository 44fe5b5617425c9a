// Package shadow computes the light-space transform used to render and
// sample the shadow map.
package shadow

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Orthographic volume of the light camera in light view space.
const (
	HalfExtent = 10.0
	Near       = 0.5
	Far        = 30.0
)

// Size is the shadow map resolution in texels.
type Size struct {
	Width  int32
	Height int32
}

// DefaultSize matches the resolution the shading lab was tuned for.
var DefaultSize = Size{Width: 2400, Height: 1600}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Projection returns the light camera's orthographic projection.
func Projection() mgl32.Mat4 {
	return mgl32.Ortho(-HalfExtent, HalfExtent, -HalfExtent, HalfExtent, Near, Far)
}

// View returns a view matrix looking from lightPos at the world origin.
// Lights are assumed to aim at the origin; Light.Direction only affects the
// spotlight cone in shading.
func View(lightPos mgl32.Vec3) mgl32.Mat4 {
	if lightPos.Len() < 1e-6 {
		lightPos = mgl32.Vec3{0, Near, 0}
	}

	up := mgl32.Vec3{0, 1, 0}
	// Nearly vertical light: +Y would be parallel to the view direction.
	if abs32(lightPos.Normalize().Y()) > 0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}

	return mgl32.LookAtV(lightPos, mgl32.Vec3{}, up)
}

// LightMatrix returns projection * view for a light at lightPos. The model
// transform is identity.
func LightMatrix(lightPos mgl32.Vec3) mgl32.Mat4 {
	return Projection().Mul4(View(lightPos))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
