package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v", i, got)
	}
}

func TestPositionWithoutRotation(t *testing.T) {
	c := NewOrbitCamera(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, 50, 2)
	assertVec(t, mgl32.Vec3{1, 2, 5}, c.Position())
}

func TestPositivePitchLooksDown(t *testing.T) {
	c := NewOrbitCamera(mgl32.Vec3{}, mgl32.Vec3{30, 0, 0}, 50, 1)
	pos := c.Position()
	assert.Greater(t, pos.Y(), float32(0))
	assert.InDelta(t, 1, pos.Len(), 1e-4)
}

func TestTargetAtScreenCenter(t *testing.T) {
	target := mgl32.Vec3{0.2, -0.1, 0.4}
	c := NewOrbitCamera(target, mgl32.Vec3{20, 45, 0}, 50, 1.5)

	clip := c.ProjectionMatrix(16.0 / 9.0).Mul4(c.ViewMatrix()).Mul4x1(target.Vec4(1))
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera(mgl32.Vec3{}, mgl32.Vec3{}, 50, 1)
	c.HandleDrag(0, 10000)
	assert.Equal(t, float32(maxPitch), c.Rotations.X())
	c.HandleDrag(0, -100000)
	assert.Equal(t, float32(-maxPitch), c.Rotations.X())
}

func TestZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera(mgl32.Vec3{}, mgl32.Vec3{}, 50, 1)
	c.HandleZoom(1)
	assert.InDelta(t, 0.9, c.Distance, 1e-6)

	for i := 0; i < 200; i++ {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
}
