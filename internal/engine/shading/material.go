package shading

import "github.com/go-gl/mathgl/mgl32"

// Toon discretization limits, matching the UI slider.
const (
	MinToonDiscretize = 1
	MaxToonDiscretize = 10
)

// Material holds the surface parameters shared by every shading model.
type Material struct {
	Kd                    mgl32.Vec3
	Ks                    mgl32.Vec3
	Shininess             float32
	ToonDiscretize        int32
	ToonSpecularThreshold float32
}

// DefaultMaterial returns the material used when a scene omits one.
func DefaultMaterial() Material {
	return Material{
		Kd:                    mgl32.Vec3{0.5, 0.5, 0.5},
		Ks:                    mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess:             3,
		ToonDiscretize:        4,
		ToonSpecularThreshold: 0.49,
	}
}

// Clamp returns a copy with the toon parameters forced into range.
func (m Material) Clamp() Material {
	if m.ToonDiscretize < MinToonDiscretize {
		m.ToonDiscretize = MinToonDiscretize
	}
	if m.ToonDiscretize > MaxToonDiscretize {
		m.ToonDiscretize = MaxToonDiscretize
	}
	if m.ToonSpecularThreshold < 0 {
		m.ToonSpecularThreshold = 0
	}
	if m.ToonSpecularThreshold > 1 {
		m.ToonSpecularThreshold = 1
	}
	if m.Shininess < 0 {
		m.Shininess = 0
	}
	return m
}
