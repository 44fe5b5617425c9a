package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyMesh is returned when an OBJ file contains no faces.
var ErrEmptyMesh = errors.New("mesh has no faces")

// noNormal marks a face corner that did not reference a vertex normal.
const noNormal = -1

type cornerKey struct {
	pos    int
	normal int
}

// objParser accumulates OBJ state while scanning. All groups and objects
// share one index space, so they end up merged into a single mesh.
type objParser struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3

	corners  map[cornerKey]uint32
	keys     []cornerKey
	indices  []uint32
	computed bool
}

// LoadOBJ reads a Wavefront OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseOBJ parses the v, vn and f statements of an OBJ stream. Polygons are
// fan-triangulated. Corners without a normal get an area-weighted smooth
// normal computed from the faces sharing their position.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	p := &objParser{corners: make(map[cornerKey]uint32)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		var err error
		switch fields[0] {
		case "v":
			var v mgl32.Vec3
			v, err = parseVec3(fields[1:])
			p.positions = append(p.positions, v)
		case "vn":
			var n mgl32.Vec3
			n, err = parseVec3(fields[1:])
			p.normals = append(p.normals, n)
		case "f":
			err = p.face(fields[1:])
		default:
			// vt, o, g, s, usemtl, mtllib: not needed for shading
		}
		if err != nil {
			return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	if len(p.indices) == 0 {
		return nil, ErrEmptyMesh
	}

	return p.build(), nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(fields) < 3 {
		return v, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return v, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func (p *objParser) face(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(fields))
	}

	ids := make([]uint32, len(fields))
	for i, field := range fields {
		key, err := p.corner(field)
		if err != nil {
			return err
		}
		id, ok := p.corners[key]
		if !ok {
			id = uint32(len(p.keys))
			p.corners[key] = id
			p.keys = append(p.keys, key)
		}
		ids[i] = id
	}

	for i := 1; i+1 < len(ids); i++ {
		p.indices = append(p.indices, ids[0], ids[i], ids[i+1])
	}
	return nil
}

// corner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) corner(field string) (cornerKey, error) {
	parts := strings.Split(field, "/")

	pos, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return cornerKey{}, fmt.Errorf("vertex %q: %w", field, err)
	}

	key := cornerKey{pos: pos, normal: noNormal}
	if len(parts) == 3 && parts[2] != "" {
		n, err := resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return cornerKey{}, fmt.Errorf("normal %q: %w", field, err)
		}
		key.normal = n
	} else {
		p.computed = true
	}
	return key, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to a
// 0-based slice index.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, errors.New("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index out of range (have %d)", count)
	}
	return i, nil
}

func (p *objParser) build() *Mesh {
	var smooth []mgl32.Vec3
	if p.computed {
		smooth = smoothNormals(p.positions, p.keys, p.indices)
	}

	mesh := &Mesh{
		Vertices: make([]Vertex, len(p.keys)),
		Indices:  p.indices,
		Bounds:   emptyBounds(),
	}
	for i, key := range p.keys {
		pos := p.positions[key.pos]
		var n mgl32.Vec3
		if key.normal == noNormal {
			n = smooth[key.pos]
		} else {
			n = p.normals[key.normal]
		}
		mesh.Vertices[i] = Vertex{Position: pos, Normal: n}
		mesh.Bounds.extend(pos)
	}
	return mesh
}

// smoothNormals sums unnormalized face normals (whose length is twice the
// triangle area) per position and normalizes the result.
func smoothNormals(positions []mgl32.Vec3, keys []cornerKey, indices []uint32) []mgl32.Vec3 {
	acc := make([]mgl32.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		a := keys[indices[t]].pos
		b := keys[indices[t+1]].pos
		c := keys[indices[t+2]].pos
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() < 1e-8 {
			acc[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		acc[i] = n.Normalize()
	}
	return acc
}
