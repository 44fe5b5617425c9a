// Package config handles viewer configuration loading and management.
package config

import "time"

// DefaultScene is used when no scene path is given on the command line.
const DefaultScene = "resources/scene.toml"

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Render      RenderConfig     `yaml:"render"`
	UI          UIConfig         `yaml:"ui"`
	Logging     LoggingConfig    `yaml:"logging"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`

	// ScenePath comes from the command line only.
	ScenePath string `yaml:"-"`
}

// GraphicsConfig holds window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds renderer settings that the scene file does not carry.
type RenderConfig struct {
	ShadowWidth   int           `yaml:"shadow_width"`
	ShadowHeight  int           `yaml:"shadow_height"`
	FrameDuration time.Duration `yaml:"frame_duration"` // Animation frame period
	Autoplay      bool          `yaml:"autoplay"`       // Advance animated meshes on a timer
	ClearColor    [4]float32    `yaml:"clear_color,flow"`
	// ForceShadows enables shadows regardless of the scene file.
	ForceShadows bool `yaml:"-"`
}

// UIConfig selects the host.
type UIConfig struct {
	Enabled   bool `yaml:"enabled"`    // ImGui host; false runs the keyboard-only SDL host
	ShowPanel bool `yaml:"show_panel"` // Settings panel visible at startup
	HotReload bool `yaml:"hot_reload"` // Reload the scene file when it changes
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotConfig holds screenshot settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     1024,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			ShadowWidth:   2400,
			ShadowHeight:  1600,
			FrameDuration: 100 * time.Millisecond,
			Autoplay:      false,
			ClearColor:    [4]float32{0, 0, 0, 1},
		},
		UI: UIConfig{
			Enabled:   true,
			ShowPanel: true,
			HotReload: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		ScenePath: DefaultScene,
	}
}
