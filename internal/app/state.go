// Package app holds the viewer state, the events that mutate it and the
// per-frame loop shared by the windowed hosts.
package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/camera"
	"github.com/Faultbox/shadelab/internal/engine/lighting"
	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/engine/renderer"
	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/engine/texture"
	"github.com/Faultbox/shadelab/internal/logger"
	"github.com/Faultbox/shadelab/internal/scenefile"
)

// State is everything the user can change at runtime.
type State struct {
	Lights   *lighting.Set
	Material shading.Material
	Diffuse  shading.DiffuseMode
	Specular shading.SpecularMode
	Shadows  bool
	PCF      bool
	ShowUI   bool

	ToonTexture *texture.Image
	Animator    *model.Animator
	Camera      *camera.OrbitCamera

	screenshot bool
	quit       bool
	log        *zap.Logger
}

// Apply performs one event. It reports whether anything changed.
func (s *State) Apply(ev Event) bool {
	if s.log == nil {
		s.log = logger.Named("app")
	}

	switch ev.Kind {
	case EventToggleUI:
		s.ShowUI = !s.ShowUI
	case EventNextFrame:
		if s.Animator.Count() < 2 {
			return false
		}
		s.Animator.Step()
	case EventToggleAutoplay:
		s.Animator.SetAutoplay(!s.Animator.Autoplay())
	case EventAddLight:
		s.Lights.Add()
	case EventRemoveLight:
		if !s.Lights.Remove() {
			s.log.Debug("refusing to remove the last light")
			return false
		}
	case EventResetLights:
		s.Lights.Reset()
	case EventNextLight:
		s.Lights.SelectNext()
	case EventPrevLight:
		s.Lights.SelectPrevious()
	case EventSelectLight:
		if !s.Lights.Select(ev.Index) {
			return false
		}
	case EventToggleShadows:
		s.Shadows = !s.Shadows
	case EventTogglePCF:
		if !s.Shadows {
			return false
		}
		s.PCF = !s.PCF
	case EventSetDiffuse:
		if s.Diffuse == ev.Diffuse {
			return false
		}
		s.Diffuse = ev.Diffuse
	case EventSetSpecular:
		if s.Specular == ev.Specular {
			return false
		}
		s.Specular = ev.Specular
	case EventCycleDiffuse:
		s.Diffuse = s.Diffuse.Next()
	case EventCycleSpecular:
		s.Specular = s.Specular.Next()
	case EventScreenshot:
		s.screenshot = true
	case EventQuit:
		s.quit = true
	default:
		return false
	}

	s.log.Debug("event applied",
		zap.Stringer("event", ev.Kind),
		zap.Int("lights", s.Lights.Len()),
		zap.Int("selected", s.Lights.SelectedIndex()),
		zap.Stringer("diffuse", s.Diffuse),
		zap.Stringer("specular", s.Specular))
	return true
}

// TakeScreenshot reports whether a screenshot was requested since the last
// call and clears the request.
func (s *State) TakeScreenshot() bool {
	r := s.screenshot
	s.screenshot = false
	return r
}

// QuitRequested reports whether EventQuit was applied.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Frame snapshots the state for one Render call.
func (s *State) Frame(aspect float32) *renderer.Frame {
	return &renderer.Frame{
		Lights:      s.Lights,
		Material:    s.Material,
		Diffuse:     s.Diffuse,
		Specular:    s.Specular,
		Shadows:     s.Shadows,
		PCF:         s.PCF,
		View:        s.Camera.ViewMatrix(),
		Projection:  s.Camera.ProjectionMatrix(aspect),
		CameraPos:   s.Camera.Position(),
		ToonTexture: s.ToonTexture,
	}
}

// Textures returns every image the next frame may sample: the light
// textures and the toon lookup.
func (s *State) Textures() []*texture.Image {
	var out []*texture.Image
	for _, l := range s.Lights.All() {
		if l.Texture != nil {
			out = append(out, l.Texture)
		}
	}
	if s.ToonTexture != nil {
		out = append(out, s.ToonTexture)
	}
	return out
}

// ApplyScene takes the material, lights and render settings of a reloaded
// scene. Camera, mesh and animation state are left alone.
func (s *State) ApplyScene(sc *scenefile.Scene, a *scenefile.Assets) {
	s.Material = sc.Material
	s.Lights.Replace(a.Lights)
	s.ToonTexture = a.ToonTexture
	s.Diffuse = sc.Render.Diffuse
	s.Specular = sc.Render.Specular
	s.Shadows = sc.Render.Shadows
	s.PCF = sc.Render.PCF
}
