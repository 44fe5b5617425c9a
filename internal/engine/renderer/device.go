// Package renderer sequences the passes of a frame: shadow map, depth
// pre-pass, additive lighting and light markers. GPU work goes through the
// Device interface.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/engine/texture"
)

// PassState selects the fixed-function state for the draws that follow.
type PassState int

const (
	// PassOpaque is plain depth-tested drawing: LESS, depth and color
	// writes on, no blending.
	PassOpaque PassState = iota
	// PassDepthOnly fills the depth buffer: LEQUAL, color writes off.
	PassDepthOnly
	// PassAccumulate adds lighting on top of the pre-pass depth: EQUAL,
	// depth writes off, blend SRC_ALPHA/ONE.
	PassAccumulate
	// PassRestore ends accumulation: LEQUAL, depth and color writes on, no
	// blending.
	PassRestore
)

func (s PassState) String() string {
	switch s {
	case PassOpaque:
		return "opaque"
	case PassDepthOnly:
		return "depth-only"
	case PassAccumulate:
		return "accumulate"
	case PassRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// DepthFunc is the depth comparison of a pass.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
	DepthEqual
)

// PassConfig is the fixed-function state a PassState stands for. The depth
// test is always enabled and Blend means additive SRC_ALPHA/ONE blending.
type PassConfig struct {
	DepthWrite bool
	Depth      DepthFunc
	ColorWrite bool
	Blend      bool
}

// Config returns the state devices apply for s.
func (s PassState) Config() PassConfig {
	switch s {
	case PassDepthOnly:
		return PassConfig{DepthWrite: true, Depth: DepthLessEqual}
	case PassAccumulate:
		return PassConfig{Depth: DepthEqual, ColorWrite: true, Blend: true}
	case PassRestore:
		return PassConfig{DepthWrite: true, Depth: DepthLessEqual, ColorWrite: true}
	default:
		return PassConfig{DepthWrite: true, Depth: DepthLess, ColorWrite: true}
	}
}

// MeshBuffers is a mesh resident on the GPU.
type MeshBuffers interface {
	IndexCount() int32
	Release()
}

// Marker is one light position drawn as a screen-space point.
type Marker struct {
	MVP      mgl32.Mat4
	Position mgl32.Vec3
	Color    mgl32.Vec3
	Size     float32
}

// Device is the GPU backend the renderer drives.
type Device interface {
	// UploadMesh creates vertex and index buffers for a mesh.
	UploadMesh(m *model.Mesh) (MeshBuffers, error)

	// BeginShadowPass binds and clears the shadow framebuffer.
	BeginShadowPass()
	// EndShadowPass restores the scene framebuffer and viewport.
	EndShadowPass()

	// BeginScenePass binds the scene target and clears color and depth.
	BeginScenePass()
	SetPassState(s PassState)

	// Draw issues one indexed draw of mesh with program p.
	Draw(p shading.Program, u *Uniforms, mesh MeshBuffers)
	DrawMarker(m Marker)

	// ReleaseTextures frees the GPU copy of every uploaded image that is
	// not in keep.
	ReleaseTextures(keep []*texture.Image)
}
