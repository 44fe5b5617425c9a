package scenefile

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/shadelab/internal/engine/lighting"
	"github.com/Faultbox/shadelab/internal/engine/texture"
	"github.com/Faultbox/shadelab/internal/logger"
)

// Assets are the lights and images referenced by a scene, decoded on the CPU
// and ready for upload.
type Assets struct {
	Lights []lighting.Light
	// ToonTexture is nil when the generated ramp should be used.
	ToonTexture *texture.Image
}

// LoadAssets decodes every referenced image concurrently. A texture that
// fails to load is logged and its light falls back to a flat color.
func (s *Scene) LoadAssets(ctx context.Context) (*Assets, error) {
	log := logger.Named("scene")

	paths := make([]string, 0, len(s.Lights)+1)
	index := make(map[string]int)
	want := func(path string) {
		if path == "" {
			return
		}
		if _, ok := index[path]; !ok {
			index[path] = len(paths)
			paths = append(paths, path)
		}
	}
	for _, l := range s.Lights {
		want(l.TexturePath)
	}
	want(s.ToonTexturePath)

	images := make([]*texture.Image, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := texture.Load(path)
			if err != nil {
				log.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
				return nil
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := func(path string) *texture.Image {
		if i, ok := index[path]; ok {
			return images[i]
		}
		return nil
	}

	a := &Assets{
		Lights:      make([]lighting.Light, len(s.Lights)),
		ToonTexture: lookup(s.ToonTexturePath),
	}
	for i, spec := range s.Lights {
		a.Lights[i] = lighting.Light{
			Position:  spec.Position,
			Color:     spec.Color,
			Spotlight: spec.Spotlight,
			Direction: spec.Direction,
			Texture:   lookup(spec.TexturePath),
		}
	}
	log.Debug("scene assets loaded", zap.Int("lights", len(a.Lights)), zap.Int("images", len(paths)))
	return a, nil
}
