package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/shadelab/internal/logger"
)

// ErrNoFrames is returned when an animation directory holds no OBJ files.
var ErrNoFrames = errors.New("no .obj frames found")

// FrameSet is the ordered list of meshes making up a static model (one
// frame) or an animation (one mesh per file).
type FrameSet struct {
	Meshes []*Mesh
	Names  []string
}

// Len returns the number of frames.
func (fs *FrameSet) Len() int {
	return len(fs.Meshes)
}

// At returns frame i.
func (fs *FrameSet) At(i int) *Mesh {
	return fs.Meshes[i]
}

// Animated reports whether the set has more than one frame.
func (fs *FrameSet) Animated() bool {
	return len(fs.Meshes) > 1
}

// LoadStatic loads a single mesh as a one-frame set.
func LoadStatic(path string) (*FrameSet, error) {
	mesh, err := LoadOBJ(path)
	if err != nil {
		return nil, err
	}
	return &FrameSet{Meshes: []*Mesh{mesh}, Names: []string{filepath.Base(path)}}, nil
}

// LoadFrames loads every .obj file in dir, ordered by file name. Files are
// parsed concurrently; the returned set is complete once LoadFrames returns.
func LoadFrames(dir string) (*FrameSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoFrames)
	}
	sort.Strings(names)

	meshes := make([]*Mesh, len(names))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		g.Go(func() error {
			m, err := LoadOBJ(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			meshes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading frames: %w", err)
	}

	logger.Debug("animation frames loaded",
		zap.String("dir", dir),
		zap.Int("frames", len(meshes)))

	return &FrameSet{Meshes: meshes, Names: names}, nil
}

// Load picks LoadFrames or LoadStatic depending on animated.
func Load(path string, animated bool) (*FrameSet, error) {
	if animated {
		return LoadFrames(path)
	}
	return LoadStatic(path)
}
