// Package camera provides the orbit camera used to view the mesh.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultNear = 0.1
	defaultFar  = 30.0
	maxPitch    = 89.0
)

// OrbitCamera circles a look-at point. Rotations are Euler angles in
// degrees applied X then Y; the eye sits Distance units in front of the
// rotated target along +Z.
type OrbitCamera struct {
	Target    mgl32.Vec3
	Rotations mgl32.Vec3 // degrees
	Distance  float32
	FovY      float32 // degrees

	Near float32
	Far  float32

	MinDistance float32
	MaxDistance float32

	DragSensitivity float32 // degrees per pixel
	ZoomSensitivity float32
}

// NewOrbitCamera creates a camera from a scene's camera block.
func NewOrbitCamera(target, rotations mgl32.Vec3, fovY, distance float32) *OrbitCamera {
	c := &OrbitCamera{
		Target:          target,
		Rotations:       rotations,
		Distance:        distance,
		FovY:            fovY,
		Near:            defaultNear,
		Far:             defaultFar,
		MinDistance:     0.05,
		MaxDistance:     20,
		DragSensitivity: 0.3,
		ZoomSensitivity: 0.1,
	}
	c.clamp()
	return c
}

// ViewMatrix returns the world-to-eye transform.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -c.Distance).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Rotations.X()))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Rotations.Y()))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.Rotations.Z()))).
		Mul4(mgl32.Translate3D(-c.Target.X(), -c.Target.Y(), -c.Target.Z()))
}

// ProjectionMatrix returns a perspective projection for the given aspect.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	return c.ViewMatrix().Inv().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// HandleDrag rotates the camera by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Rotations[1] += deltaX * c.DragSensitivity
	c.Rotations[0] += deltaY * c.DragSensitivity
	c.clamp()
}

// HandleZoom scales the distance by a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.Rotations[0] > maxPitch {
		c.Rotations[0] = maxPitch
	}
	if c.Rotations[0] < -maxPitch {
		c.Rotations[0] = -maxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
