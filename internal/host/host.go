// Package host runs the viewer inside a window: either the ImGui host with
// the settings panel or the keyboard-only SDL host.
package host

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/app"
	"github.com/Faultbox/shadelab/internal/engine/debug"
	"github.com/Faultbox/shadelab/internal/engine/shadow"
)

// Config holds window and device settings.
type Config struct {
	Title         string
	Width         int
	Height        int
	Fullscreen    bool
	VSync         bool
	ShadowSize    shadow.Size
	ClearColor    mgl32.Vec4
	ScreenshotDir string
}

// Host is a window that drives an app.Viewer until closed.
type Host interface {
	Viewer() *app.Viewer
	Run() error
	Close()
}

// Screenshot prefix for saved PNG files.
const screenshotPrefix = "shadelab"

// pixelReader reads back the frame that was just rendered.
type pixelReader interface {
	ReadPixels() (pixels []byte, width, height int)
}

func saveScreenshot(log *zap.Logger, shots *debug.ScreenshotCapture, r pixelReader) {
	pixels, w, h := r.ReadPixels()
	path, err := shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		log.Error("screenshot failed", zap.Error(err))
		return
	}
	log.Info("screenshot saved", zap.String("path", path))
}

// frameClock measures the time between frames.
type frameClock struct {
	last time.Time
}

func (c *frameClock) tick() time.Duration {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt
}

func aspect(w, h int32) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
