package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad in the XZ plane
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vn 0 1 0
f 1//1 4//1 3//1 2//1
`

func TestParseOBJQuadFanTriangulated(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	assert.Equal(t, 2, m.TriangleCount())
	for _, v := range m.Vertices {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, m.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, m.Bounds.Max)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0.5}, m.Bounds.Center())
}

func TestParseOBJComputesNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Vertices, 3)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal[2], 1e-6)
	}
}

func TestParseOBJSmoothNormalsAreAreaWeighted(t *testing.T) {
	// Two triangles share the edge (0,0,0)-(1,0,0). The larger one faces +Z,
	// the smaller one faces +Y, so the shared vertices lean towards +Z.
	src := `v 0 0 0
v 1 0 0
v 0 4 0
v 0 0 1
f 1 2 3
f 1 4 2
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)

	shared := m.Vertices[0].Normal
	assert.Greater(t, shared[2], shared[1])
	assert.InDelta(t, 1.0, mgl32.Vec3(shared).Len(), 1e-5)
}

func TestParseOBJNegativeAndTexturedIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f -3/1/-1 -2/1/-1 -1/1/-1
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Equal(t, [3]float32{1, 0, 0}, m.Vertices[1].Position)
}

func TestParseOBJMergesGroups(t *testing.T) {
	src := `o a
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
g b
v 0 0 1
f 1 2 4
`
	m, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Len(t, m.Vertices, 4)
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"bad float", "v 0 x 0\n"},
		{"short vertex", "v 0 0\n"},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"missing normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
	_, err := ParseOBJ(strings.NewReader("# empty\n"))
	assert.True(t, errors.Is(err, ErrEmptyMesh))
}

// writeFrame writes a single triangle whose second vertex sits at x = width.
func writeFrame(t *testing.T, dir, name string, width int) {
	t.Helper()
	body := fmt.Sprintf("v 0 0 0\nv %d 0 0\nv 0 1 0\nf 1 2 3\n", width)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadFramesSortedByName(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, "frame_002.obj", 2)
	writeFrame(t, dir, "frame_001.obj", 1)
	writeFrame(t, dir, "frame_010.obj", 3)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.obj"), 0o755))

	fs, err := LoadFrames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"frame_001.obj", "frame_002.obj", "frame_010.obj"}, fs.Names)
	require.Equal(t, 3, fs.Len())
	assert.True(t, fs.Animated())
	assert.Equal(t, float32(2), fs.At(1).Bounds.Max.X())
	assert.Equal(t, float32(1), fs.At(0).Bounds.Max.X())
}

func TestLoadFramesEmptyDir(t *testing.T) {
	_, err := LoadFrames(t.TempDir())
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestLoadFramesPropagatesParseError(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, "a.obj", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.obj"), []byte("v 1 2\n"), 0o644))

	_, err := LoadFrames(dir)
	assert.Error(t, err)
}

func TestLoadStatic(t *testing.T) {
	dir := t.TempDir()
	writeFrame(t, dir, "bunny.obj", 1)

	fs, err := Load(filepath.Join(dir, "bunny.obj"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, fs.Len())
	assert.False(t, fs.Animated())
}

func TestAnimatorStartsDirty(t *testing.T) {
	a := NewAnimator(3, DefaultFrameDuration, true)
	assert.True(t, a.TakeDirty())
	assert.False(t, a.TakeDirty())
}

func TestAnimatorStepWraps(t *testing.T) {
	for count := 1; count <= 4; count++ {
		a := NewAnimator(count, DefaultFrameDuration, false)
		a.TakeDirty()
		for i := 0; i < count*2; i++ {
			prev := a.Current()
			a.Step()
			assert.Equal(t, (prev+1)%count, a.Current())
			assert.Equal(t, count > 1, a.TakeDirty(), "count %d", count)
		}
	}
}

func TestAnimatorAccumulatesTime(t *testing.T) {
	a := NewAnimator(3, 100*time.Millisecond, true)
	a.TakeDirty()

	assert.Equal(t, 0, a.Update(50*time.Millisecond))
	assert.False(t, a.TakeDirty())

	assert.Equal(t, 1, a.Update(60*time.Millisecond))
	assert.Equal(t, 1, a.Current())
	assert.True(t, a.TakeDirty())

	// 10ms carried over plus 90ms completes the next frame.
	assert.Equal(t, 1, a.Update(90*time.Millisecond))
	assert.Equal(t, 2, a.Current())
}

func TestAnimatorMultipleAdvancesInOneStep(t *testing.T) {
	a := NewAnimator(3, 100*time.Millisecond, true)
	a.TakeDirty()

	n := a.Update(350 * time.Millisecond)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, a.Current())
	// Wrapped back onto the same frame: nothing to rebuild.
	assert.False(t, a.TakeDirty())

	assert.Equal(t, 1, a.Update(50*time.Millisecond))
	assert.Equal(t, 1, a.Current())
}

func TestAnimatorStaticAndPaused(t *testing.T) {
	static := NewAnimator(1, DefaultFrameDuration, true)
	assert.Equal(t, 0, static.Update(time.Second))

	paused := NewAnimator(5, DefaultFrameDuration, false)
	assert.Equal(t, 0, paused.Update(time.Second))
	assert.Equal(t, 0, paused.Current())

	paused.SetAutoplay(true)
	assert.Equal(t, 2, paused.Update(250*time.Millisecond))
}
