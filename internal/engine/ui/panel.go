package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/shadelab/internal/app"
	"github.com/Faultbox/shadelab/internal/engine/renderer"
	"github.com/Faultbox/shadelab/internal/engine/shading"
)

// PanelWidth is the width of the settings window in screen points.
const PanelWidth = 320

// Panel is the settings window. Discrete actions are emitted as app events;
// material and light values are edited in place.
type Panel struct {
	emit func(app.Event)
}

// NewPanel creates a panel that sends actions to emit.
func NewPanel(emit func(app.Event)) *Panel {
	return &Panel{emit: emit}
}

// Draw renders the panel for one frame.
func (p *Panel) Draw(s *app.State, st renderer.Stats) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(PanelWidth, workSize.Y))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Settings", nil, flags) {
		p.drawShading(s)
		imgui.Separator()
		p.drawMaterial(s)
		imgui.Separator()
		p.drawLights(s)
		imgui.Separator()
		p.drawFrames(s, st)
	}
	imgui.End()
}

func (p *Panel) drawShading(s *app.State) {
	imgui.Text("Shading")

	if imgui.BeginCombo("Diffuse", s.Diffuse.String()) {
		for _, m := range shading.DiffuseModes {
			if imgui.SelectableBoolV(m.String(), m == s.Diffuse, 0, imgui.NewVec2(0, 0)) {
				p.emit(app.SetDiffuse(m))
			}
		}
		imgui.EndCombo()
	}
	if imgui.BeginCombo("Specular", s.Specular.String()) {
		for _, m := range shading.SpecularModes {
			if imgui.SelectableBoolV(m.String(), m == s.Specular, 0, imgui.NewVec2(0, 0)) {
				p.emit(app.SetSpecular(m))
			}
		}
		imgui.EndCombo()
	}

	shadows := s.Shadows
	if imgui.Checkbox("Shadows", &shadows) {
		p.emit(app.Event{Kind: app.EventToggleShadows})
	}
	imgui.BeginDisabledV(!s.Shadows)
	pcf := s.PCF
	if imgui.Checkbox("PCF", &pcf) {
		p.emit(app.Event{Kind: app.EventTogglePCF})
	}
	imgui.EndDisabled()
}

func (p *Panel) drawMaterial(s *app.State) {
	imgui.Text("Material")

	m := &s.Material
	imgui.ColorEdit3("Kd", (*[3]float32)(&m.Kd))
	imgui.ColorEdit3("Ks", (*[3]float32)(&m.Ks))
	imgui.SliderFloatV("Shininess", &m.Shininess, 0, 100, "%.1f", imgui.SliderFlagsNone)
	imgui.SliderIntV("Toon levels", &m.ToonDiscretize, shading.MinToonDiscretize, shading.MaxToonDiscretize, "%d", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Toon threshold", &m.ToonSpecularThreshold, 0, 1, "%.2f", imgui.SliderFlagsNone)
}

func (p *Panel) drawLights(s *app.State) {
	imgui.Text("Lights")

	if imgui.BeginListBoxV("##lights", imgui.NewVec2(-1, 100)) {
		for i := 0; i < s.Lights.Len(); i++ {
			label := fmt.Sprintf("Light %d", i)
			if s.Lights.At(i).Spotlight {
				label += " (spot)"
			}
			if imgui.SelectableBoolV(label, i == s.Lights.SelectedIndex(), 0, imgui.NewVec2(0, 0)) {
				p.emit(app.SelectLight(i))
			}
		}
		imgui.EndListBox()
	}

	if imgui.Button("Add") {
		p.emit(app.Event{Kind: app.EventAddLight})
	}
	imgui.SameLine()
	imgui.BeginDisabledV(s.Lights.Len() < 2)
	if imgui.Button("Remove") {
		p.emit(app.Event{Kind: app.EventRemoveLight})
	}
	imgui.EndDisabled()
	imgui.SameLine()
	if imgui.Button("Reset") {
		p.emit(app.Event{Kind: app.EventResetLights})
	}

	l := s.Lights.Selected()
	imgui.DragFloat3("Position", (*[3]float32)(&l.Position))
	imgui.ColorEdit3("Color", (*[3]float32)(&l.Color))
	imgui.Checkbox("Spotlight", &l.Spotlight)
	if l.Spotlight {
		imgui.DragFloat3("Direction", (*[3]float32)(&l.Direction))
	}
	if l.Textured() {
		imgui.TextDisabled(fmt.Sprintf("Texture %dx%d", l.Texture.Width, l.Texture.Height))
	}
}

func (p *Panel) drawFrames(s *app.State, st renderer.Stats) {
	anim := s.Animator
	imgui.Text(fmt.Sprintf("Frame %d / %d", anim.Current()+1, anim.Count()))
	if anim.Count() > 1 {
		if imgui.Button("Next frame") {
			p.emit(app.Event{Kind: app.EventNextFrame})
		}
		imgui.SameLine()
		autoplay := anim.Autoplay()
		if imgui.Checkbox("Play", &autoplay) {
			p.emit(app.Event{Kind: app.EventToggleAutoplay})
		}
	}

	imgui.Spacing()
	imgui.TextDisabled(fmt.Sprintf("%.0f fps", imgui.CurrentIO().Framerate()))
	imgui.TextDisabled(fmt.Sprintf("draws: shadow %d, depth %d, lighting %d", st.ShadowDraws, st.DepthDraws, st.LightingDraws))
	imgui.TextDisabled("\\ hides the panel, F12 saves a screenshot")
}
