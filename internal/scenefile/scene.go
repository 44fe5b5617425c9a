// Package scenefile reads the TOML scene description: material, lights,
// camera, mesh source and initial render settings.
package scenefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/shadelab/internal/engine/shading"
	"github.com/Faultbox/shadelab/internal/logger"
)

// ErrMissingField is returned when a required key is absent.
var ErrMissingField = errors.New("missing required field")

// Camera defaults.
const (
	DefaultFovY     = 50
	DefaultDistance = 1
)

var (
	defaultColor     = mgl32.Vec3{1, 1, 1}
	defaultDirection = mgl32.Vec3{0.707, 0, 0.707}
)

// LightSpec is one light as written in the scene file.
type LightSpec struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Spotlight bool
	Direction mgl32.Vec3
	// TexturePath is absolute, or empty for a flat-colored light.
	TexturePath string
}

// Camera is the initial orbit camera.
type Camera struct {
	LookAt    mgl32.Vec3
	Rotations mgl32.Vec3
	FovY      float32
	Distance  float32
}

// MeshSource names the OBJ file, or the directory of OBJ frames.
type MeshSource struct {
	Path     string
	Animated bool
}

// RenderSettings are the initial toggles.
type RenderSettings struct {
	Diffuse  shading.DiffuseMode
	Specular shading.SpecularMode
	PCF      bool
	Shadows  bool
}

// Scene is a parsed scene file with every path resolved.
type Scene struct {
	Path string
	Dir  string

	Material shading.Material
	// ToonTexturePath is empty when the generated ramp is used.
	ToonTexturePath string

	Lights []LightSpec
	Camera Camera
	Mesh   MeshSource
	Render RenderSettings
}

// Load reads and parses the scene at path.
func Load(path string) (*Scene, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving scene path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	s, err := Parse(data, filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(abs), err)
	}
	s.Path = abs
	return s, nil
}

// Parse decodes scene TOML. Relative paths are resolved against dir.
func Parse(data []byte, dir string) (*Scene, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("syntax error at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	p := &parser{log: logger.Named("scene"), dir: dir}
	s := &Scene{Dir: dir}

	p.material(table(doc, "material"), s)
	if err := p.lights(table(doc, "lights"), s); err != nil {
		return nil, err
	}
	p.camera(table(doc, "camera"), s)
	if err := p.mesh(table(doc, "mesh"), s); err != nil {
		return nil, err
	}
	if err := p.render(table(doc, "render_settings"), s); err != nil {
		return nil, err
	}
	return s, nil
}

type parser struct {
	log *zap.Logger
	dir string
}

func (p *parser) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.dir, path)
}

func (p *parser) material(t map[string]any, s *Scene) {
	m := shading.DefaultMaterial()
	if v, ok := t["kd"]; ok {
		m.Kd = p.vec3("material.kd", v)
	}
	if v, ok := t["ks"]; ok {
		m.Ks = p.vec3("material.ks", v)
	}
	if v, ok := p.floatValue("material.shininess", t["shininess"]); ok {
		m.Shininess = v
	}
	if v, ok := p.intValue("material.toonDiscretize", t["toonDiscretize"]); ok {
		m.ToonDiscretize = int32(v)
	}
	if v, ok := p.floatValue("material.toonSpecularThreshold", t["toonSpecularThreshold"]); ok {
		m.ToonSpecularThreshold = v
	}
	if v, ok := p.stringValue("material.toonTexture", t["toonTexture"]); ok {
		s.ToonTexturePath = p.resolve(v)
	}
	s.Material = m.Clamp()
}

func (p *parser) lights(t map[string]any, s *Scene) error {
	raw, ok := t["positions"]
	if !ok {
		return fmt.Errorf("lights.positions: %w", ErrMissingField)
	}
	positions := p.vec3ListOr("lights.positions", raw, mgl32.Vec3{})
	if len(positions) == 0 {
		return fmt.Errorf("lights.positions is empty: %w", ErrMissingField)
	}

	colors := p.vec3ListOr("lights.colors", t["colors"], defaultColor)
	spots := p.boolList("lights.is_spotlight", t["is_spotlight"])
	dirs := p.vec3ListOr("lights.direction", t["direction"], defaultDirection)
	textured := p.boolList("lights.has_texture", t["has_texture"])
	paths := p.stringList("lights.texture_paths", t["texture_paths"])

	s.Lights = make([]LightSpec, len(positions))
	for i, pos := range positions {
		l := LightSpec{
			Position:  pos,
			Color:     defaultColor,
			Direction: defaultDirection,
		}
		if i < len(colors) {
			l.Color = colors[i]
		}
		if i < len(spots) {
			l.Spotlight = spots[i]
		}
		if i < len(dirs) {
			l.Direction = dirs[i]
		}
		if i < len(textured) && textured[i] {
			if i < len(paths) && paths[i] != "" {
				l.TexturePath = p.resolve(paths[i])
			} else {
				p.log.Warn("textured light has no texture path", zap.Int("light", i))
			}
		}
		s.Lights[i] = l
	}
	return nil
}

func (p *parser) camera(t map[string]any, s *Scene) {
	c := Camera{FovY: DefaultFovY, Distance: DefaultDistance}
	if v, ok := t["lookAt"]; ok {
		c.LookAt = p.vec3("camera.lookAt", v)
	}
	if v, ok := t["rotations"]; ok {
		c.Rotations = p.vec3("camera.rotations", v)
	}
	if v, ok := p.floatValue("camera.fovy", t["fovy"]); ok {
		c.FovY = v
	}
	if v, ok := p.floatValue("camera.dist", t["dist"]); ok {
		c.Distance = v
	}
	s.Camera = c
}

func (p *parser) mesh(t map[string]any, s *Scene) error {
	path, ok := p.stringValue("mesh.path", t["path"])
	if !ok || path == "" {
		return fmt.Errorf("mesh.path: %w", ErrMissingField)
	}
	s.Mesh.Path = p.resolve(path)
	if v, ok := p.boolValue("mesh.animated", t["animated"]); ok {
		s.Mesh.Animated = v
	}
	return nil
}

func (p *parser) render(t map[string]any, s *Scene) error {
	r := RenderSettings{Diffuse: shading.DiffuseDebug, Specular: shading.SpecularNone}
	if name, ok := p.stringValue("render_settings.diffuse_model", t["diffuse_model"]); ok {
		d, err := shading.ParseDiffuseMode(name)
		if err != nil {
			return fmt.Errorf("render_settings.diffuse_model: %w", err)
		}
		r.Diffuse = d
	}
	if name, ok := p.stringValue("render_settings.specular_model", t["specular_model"]); ok {
		sp, err := shading.ParseSpecularMode(name)
		if err != nil {
			return fmt.Errorf("render_settings.specular_model: %w", err)
		}
		r.Specular = sp
	}
	if v, ok := p.boolValue("render_settings.pcf", t["pcf"]); ok {
		r.PCF = v
	}
	if v, ok := p.boolValue("render_settings.shadows", t["shadows"]); ok {
		r.Shadows = v
	}
	s.Render = r
	return nil
}
