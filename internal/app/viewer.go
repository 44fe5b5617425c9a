package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/renderer"
	"github.com/Faultbox/shadelab/internal/logger"
	"github.com/Faultbox/shadelab/internal/scenefile"
)

// Viewer runs one iteration of the render loop against a Device. Hosts own
// the window, poll input, call Tick and present.
type Viewer struct {
	State    *State
	content  *Content
	renderer *renderer.Renderer
	reloads  <-chan struct{}
	log      *zap.Logger

	frames   int
	fpsTimer time.Time
}

// NewViewer wires state and content to a device.
func NewViewer(state *State, content *Content, dev renderer.Device) *Viewer {
	return &Viewer{
		State:    state,
		content:  content,
		renderer: renderer.New(dev),
		log:      logger.Named("viewer"),
		fpsTimer: time.Now(),
	}
}

// WatchReloads makes Tick reload the scene whenever ch delivers.
func (v *Viewer) WatchReloads(ch <-chan struct{}) {
	v.reloads = ch
}

// Content returns the loaded content.
func (v *Viewer) Content() *Content {
	return v.content
}

// Renderer returns the frame renderer.
func (v *Viewer) Renderer() *renderer.Renderer {
	return v.renderer
}

// Tick advances animation by dt, syncs the mesh and renders one frame.
func (v *Viewer) Tick(dt time.Duration, aspect float32) (renderer.Stats, error) {
	v.pollReload()

	v.State.Animator.Update(dt)
	if err := v.renderer.Sync(v.State.Animator, v.content.Frames); err != nil {
		return renderer.Stats{}, fmt.Errorf("syncing mesh: %w", err)
	}

	st, err := v.renderer.Render(v.State.Frame(aspect))
	if err != nil {
		return st, fmt.Errorf("rendering: %w", err)
	}

	v.frames++
	if time.Since(v.fpsTimer) >= time.Second {
		v.log.Debug("fps",
			zap.Int("count", v.frames),
			zap.Duration("dt", dt),
			zap.Int("frame", v.State.Animator.Current()),
			zap.Int("lighting_draws", st.LightingDraws))
		v.frames = 0
		v.fpsTimer = time.Now()
	}
	return st, nil
}

// pollReload drains the reload channel without blocking.
func (v *Viewer) pollReload() {
	if v.reloads == nil {
		return
	}
	select {
	case <-v.reloads:
	default:
		return
	}
	if err := v.Reload(context.Background()); err != nil {
		v.log.Error("scene reload failed, keeping current state", zap.Error(err))
	}
}

// Reload rereads the scene file and applies it to the state.
func (v *Viewer) Reload(ctx context.Context) error {
	old := v.content.Scene
	sc, err := scenefile.Load(old.Path)
	if err != nil {
		return err
	}
	a, err := sc.LoadAssets(ctx)
	if err != nil {
		return err
	}
	if sc.Mesh != old.Mesh {
		v.log.Warn("mesh source changed, restart to load it", zap.String("mesh", sc.Mesh.Path))
		sc.Mesh = old.Mesh
	}

	v.State.ApplyScene(sc, a)
	v.renderer.ReleaseTextures(v.State.Textures())
	v.content.Scene = sc
	v.content.Assets = a
	v.log.Info("scene reloaded", zap.String("scene", sc.Path), zap.Int("lights", len(a.Lights)))
	return nil
}

// Close releases the mesh buffers.
func (v *Viewer) Close() {
	v.renderer.Close()
}
