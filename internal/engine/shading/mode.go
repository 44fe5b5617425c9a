// Package shading defines the lighting models a frame can be shaded with and
// the material parameters they consume.
package shading

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when a mode name does not match any model.
var ErrUnknownMode = errors.New("unknown shading mode")

// DiffuseMode selects the view-independent lighting model.
type DiffuseMode int

const (
	DiffuseDebug DiffuseMode = iota
	DiffuseLambert
	DiffuseToon
	DiffuseXToon
)

// DiffuseModes lists every diffuse mode in UI order.
var DiffuseModes = []DiffuseMode{DiffuseDebug, DiffuseLambert, DiffuseToon, DiffuseXToon}

// String returns the name used in scene files and the UI.
func (m DiffuseMode) String() string {
	switch m {
	case DiffuseDebug:
		return "debug"
	case DiffuseLambert:
		return "lambert"
	case DiffuseToon:
		return "toon"
	case DiffuseXToon:
		return "x-toon"
	default:
		return fmt.Sprintf("DiffuseMode(%d)", int(m))
	}
}

// Next returns the following mode, wrapping after the last one.
func (m DiffuseMode) Next() DiffuseMode {
	return DiffuseModes[(int(m)+1)%len(DiffuseModes)]
}

// Lit reports whether the mode runs the shadow/depth lighting machinery.
func (m DiffuseMode) Lit() bool {
	return m != DiffuseDebug
}

// ParseDiffuseMode parses a diffuse model name.
func ParseDiffuseMode(name string) (DiffuseMode, error) {
	for _, m := range DiffuseModes {
		if m.String() == name {
			return m, nil
		}
	}
	return DiffuseDebug, fmt.Errorf("%w: diffuse %q", ErrUnknownMode, name)
}

// SpecularMode selects the view-dependent lighting model.
type SpecularMode int

const (
	SpecularNone SpecularMode = iota
	SpecularPhong
	SpecularBlinnPhong
	SpecularToon
)

// SpecularModes lists every specular mode in UI order.
var SpecularModes = []SpecularMode{SpecularNone, SpecularPhong, SpecularBlinnPhong, SpecularToon}

// String returns the name used in scene files and the UI.
func (m SpecularMode) String() string {
	switch m {
	case SpecularNone:
		return "none"
	case SpecularPhong:
		return "phong"
	case SpecularBlinnPhong:
		return "blinn-phong"
	case SpecularToon:
		return "toon"
	default:
		return fmt.Sprintf("SpecularMode(%d)", int(m))
	}
}

// Next returns the following mode, wrapping after the last one.
func (m SpecularMode) Next() SpecularMode {
	return SpecularModes[(int(m)+1)%len(SpecularModes)]
}

// ParseSpecularMode parses a specular model name.
func ParseSpecularMode(name string) (SpecularMode, error) {
	for _, m := range SpecularModes {
		if m.String() == name {
			return m, nil
		}
	}
	return SpecularNone, fmt.Errorf("%w: specular %q", ErrUnknownMode, name)
}
