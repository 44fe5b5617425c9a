package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/shadelab/internal/engine/camera"
	"github.com/Faultbox/shadelab/internal/engine/lighting"
	"github.com/Faultbox/shadelab/internal/engine/model"
	"github.com/Faultbox/shadelab/internal/logger"
	"github.com/Faultbox/shadelab/internal/scenefile"
)

// Content is everything read from disk before the GL context exists.
type Content struct {
	Scene  *scenefile.Scene
	Assets *scenefile.Assets
	Frames *model.FrameSet
}

// LoadContent parses the scene, then decodes its images and meshes
// concurrently.
func LoadContent(ctx context.Context, scenePath string) (*Content, error) {
	start := time.Now()

	sc, err := scenefile.Load(scenePath)
	if err != nil {
		return nil, err
	}

	c := &Content{Scene: sc}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := sc.LoadAssets(ctx)
		if err != nil {
			return fmt.Errorf("loading scene assets: %w", err)
		}
		c.Assets = a
		return nil
	})
	g.Go(func() error {
		frames, err := model.Load(sc.Mesh.Path, sc.Mesh.Animated)
		if err != nil {
			return fmt.Errorf("loading mesh: %w", err)
		}
		c.Frames = frames
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	first := c.Frames.At(0)
	logger.Info("scene loaded",
		zap.String("scene", sc.Path),
		zap.String("mesh", sc.Mesh.Path),
		zap.Int("frames", c.Frames.Len()),
		zap.Int("triangles", first.TriangleCount()),
		zap.Any("center", first.Bounds.Center()),
		zap.Any("extent", first.Bounds.Size()),
		zap.Int("lights", len(c.Assets.Lights)),
		zap.Duration("elapsed", time.Since(start)))
	return c, nil
}

// Options are the runtime settings that do not come from the scene file.
type Options struct {
	FrameDuration time.Duration
	Autoplay      bool
	ForceShadows  bool
	ShowUI        bool
}

// NewState builds the initial state from loaded content.
func NewState(c *Content, opts Options) *State {
	sc := c.Scene
	cam := sc.Camera
	return &State{
		Lights:      lighting.NewSet(c.Assets.Lights),
		Material:    sc.Material,
		Diffuse:     sc.Render.Diffuse,
		Specular:    sc.Render.Specular,
		Shadows:     sc.Render.Shadows || opts.ForceShadows,
		PCF:         sc.Render.PCF,
		ShowUI:      opts.ShowUI,
		ToonTexture: c.Assets.ToonTexture,
		Animator:    model.NewAnimator(c.Frames.Len(), opts.FrameDuration, opts.Autoplay && c.Frames.Animated()),
		Camera:      camera.NewOrbitCamera(cam.LookAt, cam.Rotations, cam.FovY, cam.Distance),
		log:         logger.Named("app"),
	}
}
