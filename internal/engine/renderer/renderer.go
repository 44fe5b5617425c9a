package renderer

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/shadelab/internal/engine/lighting"
	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/engine/shadow"
	"github.com/Faultbox/shadelab/internal/engine/texture"
)

// ErrNoMesh is returned by Render before any mesh has been uploaded.
var ErrNoMesh = errors.New("no mesh uploaded")

// Marker sizes in pixels.
const (
	SelectedMarkerSize = 40
	MarkerSize         = 10
)

// Frame is the scene state read by one Render call.
type Frame struct {
	Lights   *lighting.Set
	Material shading.Material
	Diffuse  shading.DiffuseMode
	Specular shading.SpecularMode
	Shadows  bool
	PCF      bool

	View        mgl32.Mat4
	Projection  mgl32.Mat4
	CameraPos   mgl32.Vec3
	ToonTexture *texture.Image

	HideMarkers bool
}

// Stats counts the work issued by one Render call.
type Stats struct {
	ShadowDraws   int
	DepthDraws    int
	LightingDraws int
	Markers       int
}

// Renderer draws frames through a Device.
type Renderer struct {
	dev  Device
	mesh MeshSlot
}

// New creates a renderer on top of dev.
func New(dev Device) *Renderer {
	return &Renderer{dev: dev}
}

// Sync rebuilds the mesh buffers if the animation frame changed.
func (r *Renderer) Sync(anim *model.Animator, frames *model.FrameSet) error {
	return r.mesh.Sync(r.dev, anim, frames)
}

// Mesh exposes the mesh slot.
func (r *Renderer) Mesh() *MeshSlot {
	return &r.mesh
}

// ReleaseTextures drops GPU textures for images no longer in use.
func (r *Renderer) ReleaseTextures(keep []*texture.Image) {
	r.dev.ReleaseTextures(keep)
}

// Close releases the mesh buffers.
func (r *Renderer) Close() {
	r.mesh.Release()
}

// Render draws one frame. Only the selected light is shaded and casts
// shadows; every light gets a marker.
func (r *Renderer) Render(f *Frame) (Stats, error) {
	mesh := r.mesh.Buffers()
	if mesh == nil {
		return Stats{}, ErrNoMesh
	}

	var st Stats
	mvp := f.Projection.Mul4(f.View)
	selected := f.Lights.Selected()
	lightMVP := shadow.LightMatrix(selected.Position)

	if f.Shadows {
		r.dev.BeginShadowPass()
		r.dev.Draw(shading.ProgramShadow, &Uniforms{MVP: lightMVP}, mesh)
		r.dev.EndShadowPass()
		st.ShadowDraws++
	}

	base := Uniforms{
		MVP:         mvp,
		LightMVP:    lightMVP,
		Shadows:     f.Shadows,
		PCF:         f.Shadows && f.PCF,
		CameraPos:   f.CameraPos,
		Material:    f.Material,
		ToonTexture: f.ToonTexture,
	}
	base.setLight(selected)

	r.dev.BeginScenePass()

	plan := shading.PlanFor(f.Diffuse, f.Specular)
	if !plan.Lit {
		r.dev.SetPassState(PassOpaque)
		r.dev.Draw(shading.ProgramDebug, &base, mesh)
		st.DepthDraws++
	} else {
		r.dev.SetPassState(PassDepthOnly)
		r.dev.Draw(shading.ProgramDebug, &base, mesh)
		st.DepthDraws++

		r.dev.SetPassState(PassAccumulate)
		st.LightingDraws += r.accumulate(f, plan, &base, mesh)
		r.dev.SetPassState(PassRestore)
	}

	if !f.HideMarkers {
		st.Markers = r.drawMarkers(f.Lights, mvp)
	}

	return st, nil
}

// accumulate runs the plan's programs for each contributing light.
func (r *Renderer) accumulate(f *Frame, plan shading.Plan, base *Uniforms, mesh MeshBuffers) int {
	draws := 0
	lights := f.Lights.All()
	for i := range lights {
		if i != f.Lights.SelectedIndex() {
			continue
		}
		u := *base
		u.setLight(&lights[i])
		for _, p := range plan.Programs() {
			r.dev.Draw(p, &u, mesh)
			draws++
		}
	}
	return draws
}

func (r *Renderer) drawMarkers(lights *lighting.Set, mvp mgl32.Mat4) int {
	sel := lights.Selected()
	r.dev.DrawMarker(Marker{MVP: mvp, Position: sel.Position, Color: sel.Color, Size: SelectedMarkerSize})
	n := 1
	for _, l := range lights.All() {
		r.dev.DrawMarker(Marker{MVP: mvp, Position: l.Position, Color: l.Color, Size: MarkerSize})
		n++
	}
	return n
}
