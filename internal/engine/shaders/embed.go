// Package shaders provides the embedded GLSL sources for every pipeline.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/Faultbox/shadelab/internal/engine/shading"
)

//go:embed glsl/shading.vert
var shadingVertex string

// commonFragment declares the inputs, uniforms and helpers shared by the
// surface fragment shaders. It carries the #version line.
//
//go:embed glsl/common.frag
var commonFragment string

//go:embed glsl/debug.frag
var debugFragment string

//go:embed glsl/lambert.frag
var lambertFragment string

//go:embed glsl/toon_diffuse.frag
var toonDiffuseFragment string

//go:embed glsl/xtoon.frag
var xToonFragment string

//go:embed glsl/phong.frag
var phongFragment string

//go:embed glsl/blinn_phong.frag
var blinnPhongFragment string

//go:embed glsl/toon_specular.frag
var toonSpecularFragment string

//go:embed glsl/shadow.vert
var shadowVertex string

//go:embed glsl/shadow.frag
var shadowFragment string

//go:embed glsl/light.vert
var lightVertex string

//go:embed glsl/light.frag
var lightFragment string

// Source returns the vertex and fragment source for program p.
func Source(p shading.Program) (vertex, fragment string, err error) {
	switch p {
	case shading.ProgramDebug:
		return shadingVertex, surface(debugFragment), nil
	case shading.ProgramLambert:
		return shadingVertex, surface(lambertFragment), nil
	case shading.ProgramToonDiffuse:
		return shadingVertex, surface(toonDiffuseFragment), nil
	case shading.ProgramXToon:
		return shadingVertex, surface(xToonFragment), nil
	case shading.ProgramPhong:
		return shadingVertex, surface(phongFragment), nil
	case shading.ProgramBlinnPhong:
		return shadingVertex, surface(blinnPhongFragment), nil
	case shading.ProgramToonSpecular:
		return shadingVertex, surface(toonSpecularFragment), nil
	case shading.ProgramShadow:
		return shadowVertex, shadowFragment, nil
	case shading.ProgramLightMarker:
		return lightVertex, lightFragment, nil
	default:
		return "", "", fmt.Errorf("no shader source for %s", p)
	}
}

func surface(body string) string {
	return commonFragment + "\n" + body
}
