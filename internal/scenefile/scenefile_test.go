package scenefile

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/shadelab/internal/engine/shading"
)

const fullScene = `
[material]
kd = [0.8, 0.2, 0.1]
ks = [1, 1, 1]
shininess = 16
toonDiscretize = 6
toonSpecularThreshold = 0.3
toonTexture = "ramp.png"

[lights]
positions = [[0.4, 1.2, 0.2], [-1, 2, 0]]
colors = [[1, 0, 0], [0, 0, 1]]
is_spotlight = [false, true]
direction = [[0, -1, 0], [0.707, 0, 0.707]]
has_texture = [false, true]
texture_paths = ["", "textures/light.png"]

[camera]
lookAt = [0, 0.5, 0]
rotations = [20, 30, 0]
fovy = 45
dist = 3

[mesh]
path = "meshes/bunny.obj"
animated = false

[render_settings]
diffuse_model = "lambert"
specular_model = "blinn-phong"
pcf = true
shadows = true
`

func TestParseFullScene(t *testing.T) {
	dir := filepath.FromSlash("/scenes/demo")
	s, err := Parse([]byte(fullScene), dir)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0.8, 0.2, 0.1}, s.Material.Kd)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Material.Ks)
	assert.InDelta(t, 16, s.Material.Shininess, 1e-6)
	assert.Equal(t, int32(6), s.Material.ToonDiscretize)
	assert.InDelta(t, 0.3, s.Material.ToonSpecularThreshold, 1e-6)
	assert.Equal(t, filepath.Join(dir, "ramp.png"), s.ToonTexturePath)

	require.Len(t, s.Lights, 2)
	assert.Equal(t, mgl32.Vec3{0.4, 1.2, 0.2}, s.Lights[0].Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.Lights[0].Color)
	assert.False(t, s.Lights[0].Spotlight)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, s.Lights[0].Direction)
	assert.Empty(t, s.Lights[0].TexturePath)
	assert.True(t, s.Lights[1].Spotlight)
	assert.Equal(t, filepath.Join(dir, "textures", "light.png"), s.Lights[1].TexturePath)

	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, s.Camera.LookAt)
	assert.Equal(t, mgl32.Vec3{20, 30, 0}, s.Camera.Rotations)
	assert.InDelta(t, 45, s.Camera.FovY, 1e-6)
	assert.InDelta(t, 3, s.Camera.Distance, 1e-6)

	assert.Equal(t, filepath.Join(dir, "meshes", "bunny.obj"), s.Mesh.Path)
	assert.False(t, s.Mesh.Animated)

	assert.Equal(t, shading.DiffuseLambert, s.Render.Diffuse)
	assert.Equal(t, shading.SpecularBlinnPhong, s.Render.Specular)
	assert.True(t, s.Render.PCF)
	assert.True(t, s.Render.Shadows)
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte(`
[lights]
positions = [[1, 2, 3]]
[mesh]
path = "/abs/frames"
animated = true
`), "/scenes")
	require.NoError(t, err)

	assert.Equal(t, shading.DefaultMaterial(), s.Material)
	assert.Empty(t, s.ToonTexturePath)

	require.Len(t, s.Lights, 1)
	l := s.Lights[0]
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Color)
	assert.False(t, l.Spotlight)
	assert.Equal(t, mgl32.Vec3{0.707, 0, 0.707}, l.Direction)

	assert.Equal(t, Camera{FovY: DefaultFovY, Distance: DefaultDistance}, s.Camera)
	assert.Equal(t, MeshSource{Path: filepath.FromSlash("/abs/frames"), Animated: true}, s.Mesh)
	assert.Equal(t, RenderSettings{Diffuse: shading.DiffuseDebug, Specular: shading.SpecularNone}, s.Render)
}

func TestParseFailFast(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "missing positions",
			input: "[mesh]\npath = \"a.obj\"\n",
			want:  ErrMissingField,
		},
		{
			name:  "empty positions",
			input: "[lights]\npositions = []\n[mesh]\npath = \"a.obj\"\n",
			want:  ErrMissingField,
		},
		{
			name:  "missing mesh path",
			input: "[lights]\npositions = [[0, 1, 0]]\n",
			want:  ErrMissingField,
		},
		{
			name:  "unknown diffuse model",
			input: "[lights]\npositions = [[0, 1, 0]]\n[mesh]\npath = \"a.obj\"\n[render_settings]\ndiffuse_model = \"gooch\"\n",
			want:  shading.ErrUnknownMode,
		},
		{
			name:  "unknown specular model",
			input: "[lights]\npositions = [[0, 1, 0]]\n[mesh]\npath = \"a.obj\"\n[render_settings]\nspecular_model = \"cook\"\n",
			want:  shading.ErrUnknownMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), "/")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[lights\npositions = 1\n"), "/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestParseSkipsMalformedElements(t *testing.T) {
	s, err := Parse([]byte(`
[material]
kd = [0.1, "red", 0.3]
shininess = "shiny"

[lights]
positions = [[0, 1, 0], "bogus", [2, 3]]
colors = ["bogus", [0, 1, 0]]
is_spotlight = [1, true]

[mesh]
path = "a.obj"
`), "/")
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{0.1, 0.3, 0}, s.Material.Kd)
	assert.Equal(t, shading.DefaultMaterial().Shininess, s.Material.Shininess)

	require.Len(t, s.Lights, 3)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, s.Lights[0].Position)
	assert.Equal(t, mgl32.Vec3{}, s.Lights[1].Position, "malformed position keeps its slot at the origin")
	assert.Equal(t, mgl32.Vec3{2, 3, 0}, s.Lights[2].Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Lights[0].Color)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, s.Lights[1].Color)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, s.Lights[2].Color)
	assert.False(t, s.Lights[0].Spotlight)
	assert.True(t, s.Lights[1].Spotlight)
	assert.False(t, s.Lights[2].Spotlight)
}

func TestParseMalformedPositionKeepsArraysAligned(t *testing.T) {
	s, err := Parse([]byte(`
[lights]
positions = [[1, 1, 1], "oops", [3, 3, 3]]
colors = [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
is_spotlight = [false, false, true]

[mesh]
path = "a.obj"
`), "/")
	require.NoError(t, err)

	require.Len(t, s.Lights, 3)
	last := s.Lights[2]
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, last.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, last.Color)
	assert.True(t, last.Spotlight)
}

func TestParseTextureWithoutPath(t *testing.T) {
	s, err := Parse([]byte(`
[lights]
positions = [[0, 1, 0]]
has_texture = [true]
[mesh]
path = "a.obj"
`), "/")
	require.NoError(t, err)
	assert.Empty(t, s.Lights[0].TexturePath)
}

func TestParseClampsToonParameters(t *testing.T) {
	s, err := Parse([]byte(`
[material]
toonDiscretize = 50
toonSpecularThreshold = 2.0
[lights]
positions = [[0, 1, 0]]
[mesh]
path = "a.obj"
`), "/")
	require.NoError(t, err)
	assert.Equal(t, int32(shading.MaxToonDiscretize), s.Material.ToonDiscretize)
	assert.InDelta(t, 1, s.Material.ToonSpecularThreshold, 1e-6)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadAndAssets(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "textures", "light.png"))
	writePNG(t, filepath.Join(dir, "ramp.png"))

	scenePath := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(scenePath, []byte(fullScene), 0o644))

	s, err := Load(scenePath)
	require.NoError(t, err)
	assert.Equal(t, scenePath, s.Path)
	assert.Equal(t, dir, s.Dir)

	a, err := s.LoadAssets(context.Background())
	require.NoError(t, err)
	require.Len(t, a.Lights, 2)
	assert.Nil(t, a.Lights[0].Texture)
	require.NotNil(t, a.Lights[1].Texture)
	assert.Equal(t, 2, a.Lights[1].Texture.Width)
	assert.True(t, a.Lights[1].Spotlight)
	require.NotNil(t, a.ToonTexture)
}

func TestLoadAssetsMissingTexture(t *testing.T) {
	s := &Scene{
		Lights: []LightSpec{{Position: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{1, 1, 1}, TexturePath: "/does/not/exist.png"}},
	}
	a, err := s.LoadAssets(context.Background())
	require.NoError(t, err)
	assert.Nil(t, a.Lights[0].Texture)
	assert.False(t, a.Lights[0].Textured())
}

func TestLoadAssetsSharesImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "light.png")
	writePNG(t, path)

	s := &Scene{Lights: []LightSpec{{TexturePath: path}, {TexturePath: path}}}
	a, err := s.LoadAssets(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a.Lights[0].Texture)
	assert.Same(t, a.Lights[0].Texture, a.Lights[1].Texture)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullScene), 0o644))

	w, err := Watch(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("change reported for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fullScene), 0o644))
	}
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(fullScene), 0o644))

	w, err := Watch(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
