// Package main is the entry point for the shadelab viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/app"
	"github.com/Faultbox/shadelab/internal/config"
	"github.com/Faultbox/shadelab/internal/engine/shadow"
	"github.com/Faultbox/shadelab/internal/host"
	"github.com/Faultbox/shadelab/internal/logger"
	"github.com/Faultbox/shadelab/internal/scenefile"
)

const windowTitle = "shadelab"

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		logger.Error("shadelab failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== shadelab ===", zap.String("scene", cfg.ScenePath))
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfigRequested() {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return nil
	}

	content, err := app.LoadContent(context.Background(), cfg.ScenePath)
	if err != nil {
		return err
	}
	state := app.NewState(content, app.Options{
		FrameDuration: cfg.Render.FrameDuration,
		Autoplay:      cfg.Render.Autoplay,
		ForceShadows:  cfg.Render.ForceShadows,
		ShowUI:        cfg.UI.ShowPanel,
	})

	hcfg := host.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		ShadowSize: shadow.Size{
			Width:  int32(cfg.Render.ShadowWidth),
			Height: int32(cfg.Render.ShadowHeight),
		},
		ClearColor:    mgl32.Vec4(cfg.Render.ClearColor),
		ScreenshotDir: cfg.Screenshots.Dir,
	}

	var h host.Host
	if cfg.UI.Enabled {
		h, err = host.NewImGui(hcfg, state, content)
	} else {
		h, err = host.NewSDL(hcfg, state, content)
	}
	if err != nil {
		return err
	}
	defer h.Close()

	if cfg.UI.HotReload {
		w, err := scenefile.Watch(content.Scene.Path, scenefile.DefaultDebounce)
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			h.Viewer().WatchReloads(w.Changes())
		}
	}

	if err := h.Run(); err != nil {
		return err
	}
	logger.Info("viewer closed normally")
	return nil
}
