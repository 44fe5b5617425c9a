package host

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/app"
	"github.com/Faultbox/shadelab/internal/engine/debug"
	"github.com/Faultbox/shadelab/internal/engine/gldevice"
	"github.com/Faultbox/shadelab/internal/engine/input"
	"github.com/Faultbox/shadelab/internal/engine/window"
	"github.com/Faultbox/shadelab/internal/logger"
)

// SDLHost is the keyboard-only host: the scene fills the window and state
// changes come from key bindings.
type SDLHost struct {
	cfg    Config
	log    *zap.Logger
	window *window.Window
	device *gldevice.Device
	viewer *app.Viewer
	input  *input.Input
	keys   input.Keymap
	shots  *debug.ScreenshotCapture
	clock  frameClock
	title  string
}

// NewSDL opens the window and creates the GL device.
func NewSDL(cfg Config, state *app.State, content *app.Content) (*SDLHost, error) {
	h := &SDLHost{
		cfg:   cfg,
		log:   logger.Named("host"),
		input: input.New(),
		keys:  input.DefaultKeymap(),
		shots: debug.NewScreenshotCapture(cfg.ScreenshotDir, screenshotPrefix),
	}

	// Create window (this also creates OpenGL context)
	var err error
	h.window, err = window.New(window.Config{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create device (AFTER window, since OpenGL context must exist)
	w, ht := h.window.DrawableSize()
	h.device, err = gldevice.New(gldevice.Config{
		ShadowSize: cfg.ShadowSize,
		ClearColor: cfg.ClearColor,
		Width:      w,
		Height:     ht,
	})
	if err != nil {
		h.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	h.viewer = app.NewViewer(state, content, h.device)
	h.log.Info("sdl host ready", zap.Int32("width", w), zap.Int32("height", ht))
	return h, nil
}

// Viewer returns the viewer driven by this host.
func (h *SDLHost) Viewer() *app.Viewer {
	return h.viewer
}

// Run runs the loop until the window closes or Esc is pressed.
func (h *SDLHost) Run() error {
	state := h.viewer.State
	h.log.Info("starting render loop")

	for {
		dt := h.clock.tick()

		// 1. Process input
		if h.input.Update() {
			return nil
		}
		for _, e := range h.input.Events() {
			switch e.Type {
			case input.EventWindowResize:
				h.device.SetViewport(h.window.DrawableSize())
			case input.EventMouseMove:
				if h.input.Dragging() {
					state.Camera.HandleDrag(e.DeltaX, e.DeltaY)
				}
			case input.EventMouseWheel:
				state.Camera.HandleZoom(e.DeltaY)
			}
		}
		for _, ev := range h.keys.Translate(h.input.Events()) {
			state.Apply(ev)
		}
		if state.QuitRequested() {
			return nil
		}

		// 2. Animate, sync and render
		w, ht := h.window.DrawableSize()
		if _, err := h.viewer.Tick(dt, aspect(w, ht)); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if state.TakeScreenshot() {
			saveScreenshot(h.log, h.shots, h.device)
		}
		h.updateTitle()

		// 3. Present (swap buffers)
		h.window.SwapBuffers()
	}
}

// updateTitle shows the active modes in the title bar while ShowUI is set.
func (h *SDLHost) updateTitle() {
	s := h.viewer.State
	title := h.cfg.Title
	if s.ShowUI {
		shadows := "off"
		if s.Shadows {
			shadows = "on"
			if s.PCF {
				shadows = "pcf"
			}
		}
		title = fmt.Sprintf("%s | %s + %s | light %d/%d | shadows %s | frame %d/%d",
			h.cfg.Title, s.Diffuse, s.Specular,
			s.Lights.SelectedIndex()+1, s.Lights.Len(), shadows,
			s.Animator.Current()+1, s.Animator.Count())
	}
	if title != h.title {
		h.window.SetTitle(title)
		h.title = title
	}
}

// Close releases GPU resources and the window.
func (h *SDLHost) Close() {
	h.log.Info("closing sdl host")
	if h.viewer != nil {
		h.viewer.Close()
	}
	if h.device != nil {
		h.device.Close()
	}
	if h.window != nil {
		h.window.Close()
	}
}
