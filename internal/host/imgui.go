package host

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/app"
	"github.com/Faultbox/shadelab/internal/engine/debug"
	"github.com/Faultbox/shadelab/internal/engine/framebuffer"
	"github.com/Faultbox/shadelab/internal/engine/gldevice"
	"github.com/Faultbox/shadelab/internal/engine/renderer"
	"github.com/Faultbox/shadelab/internal/engine/ui"
	"github.com/Faultbox/shadelab/internal/logger"
)

// ImGuiHost renders the scene into an offscreen framebuffer shown next to
// the settings panel.
type ImGuiHost struct {
	cfg     Config
	log     *zap.Logger
	backend *ui.Backend
	device  *gldevice.Device
	fb      *framebuffer.Framebuffer
	viewer  *app.Viewer
	panel   *ui.Panel
	shots   *debug.ScreenshotCapture
	clock   frameClock
	stats   renderer.Stats
	err     error
}

// NewImGui creates the ImGui window, the GL device and the scene target.
func NewImGui(cfg Config, state *app.State, content *app.Content) (*ImGuiHost, error) {
	h := &ImGuiHost{
		cfg:   cfg,
		log:   logger.Named("host"),
		shots: debug.NewScreenshotCapture(cfg.ScreenshotDir, screenshotPrefix),
	}

	var err error
	h.backend, err = ui.NewBackend(cfg.Title, cfg.Width, cfg.Height, cfg.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create imgui backend: %w", err)
	}

	h.device, err = gldevice.New(gldevice.Config{
		ShadowSize: cfg.ShadowSize,
		ClearColor: cfg.ClearColor,
		Width:      int32(cfg.Width),
		Height:     int32(cfg.Height),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	h.fb, err = framebuffer.New(int32(cfg.Width), int32(cfg.Height))
	if err != nil {
		h.device.Close()
		return nil, fmt.Errorf("failed to create scene framebuffer: %w", err)
	}
	h.device.SetTarget(h.fb)

	h.viewer = app.NewViewer(state, content, h.device)
	h.panel = ui.NewPanel(func(ev app.Event) {
		state.Apply(ev)
	})

	h.log.Info("imgui host ready", zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	return h, nil
}

// Viewer returns the viewer driven by this host.
func (h *ImGuiHost) Viewer() *app.Viewer {
	return h.viewer
}

// Run runs the ImGui loop until the window closes. It returns the render
// error that stopped the loop, if any.
func (h *ImGuiHost) Run() error {
	h.log.Info("starting render loop")
	h.backend.Run(h.frame)
	return h.err
}

func (h *ImGuiHost) frame() {
	state := h.viewer.State
	dt := h.clock.tick()

	h.handleKeys(state)
	if state.QuitRequested() {
		h.backend.SetShouldClose()
		return
	}

	// Scene area in points, left of which sits the panel.
	io := imgui.CurrentIO()
	display := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	x := float32(0)
	if state.ShowUI {
		x = ui.PanelWidth
	}
	w, ht := display.X-x, display.Y
	if w < 1 || ht < 1 {
		return
	}

	fbW, fbH := int32(w*scale.X), int32(ht*scale.Y)
	if err := h.fb.Resize(fbW, fbH); err != nil {
		h.fail(fmt.Errorf("resizing scene framebuffer: %w", err))
		return
	}
	h.device.SetViewport(ui.FramebufferSize())

	stats, err := h.viewer.Tick(dt, aspect(fbW, fbH))
	h.device.Finish()
	if err != nil {
		h.fail(fmt.Errorf("render error: %w", err))
		return
	}
	h.stats = stats

	if state.TakeScreenshot() {
		saveScreenshot(h.log, h.shots, h.device)
	}

	if ui.DrawScene(x, 0, w, ht, h.fb.ColorTexture()) {
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			d := io.MouseDelta()
			state.Camera.HandleDrag(d.X, d.Y)
		}
		if wheel := io.MouseWheel(); wheel != 0 {
			state.Camera.HandleZoom(wheel)
		}
	}

	if state.ShowUI {
		h.panel.Draw(state, h.stats)
	}
}

// handleKeys maps the shortcuts that stay active while the panel is open.
func (h *ImGuiHost) handleKeys(state *app.State) {
	if imgui.CurrentIO().WantTextInput() {
		return
	}
	switch {
	case ui.IsKeyPressed(imgui.KeyBackslash):
		state.Apply(app.Event{Kind: app.EventToggleUI})
	case ui.IsKeyPressed(imgui.KeyRightArrow):
		state.Apply(app.Event{Kind: app.EventNextFrame})
	case ui.IsKeyPressed(imgui.KeyF12):
		state.Apply(app.Event{Kind: app.EventScreenshot})
	case ui.IsKeyPressed(imgui.KeyEscape):
		state.Apply(app.Event{Kind: app.EventQuit})
	}
}

func (h *ImGuiHost) fail(err error) {
	h.log.Error("stopping render loop", zap.Error(err))
	h.err = err
	h.backend.SetShouldClose()
}

// Close releases GPU resources. The window is owned by the backend.
func (h *ImGuiHost) Close() {
	h.log.Info("closing imgui host")
	if h.viewer != nil {
		h.viewer.Close()
	}
	if h.fb != nil {
		h.fb.Destroy()
	}
	if h.device != nil {
		h.device.Close()
	}
}
